package notify

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Op string

const (
	OpAdd    Op = "add"
	OpRemove Op = "delete"
)

// Update describes a single store mutation. Store and Seq are stamped by the
// Notifier that publishes the update; the remaining fields are set at
// construction time.
type Update struct {
	ID    string    `json:"id"`
	Op    Op        `json:"operation"`
	Key   string    `json:"key"`
	Value any       `json:"value"`
	Store string    `json:"store,omitempty"`
	Seq   uint64    `json:"seq"`
	Time  time.Time `json:"time"`
}

func NewUpdate(op Op, key string, value any) Update {
	return Update{
		ID:    generateID(),
		Op:    op,
		Key:   key,
		Value: value,
		Time:  time.Now(),
	}
}

func (u Update) IsAdd() bool {
	return u.Op == OpAdd
}

func (u Update) IsRemove() bool {
	return u.Op == OpRemove
}

func (u Update) String() string {
	return fmt.Sprintf(
		"Update{Op: %s, Key: %s, Store: %s, Seq: %d}",
		u.Op,
		u.Key,
		u.Store,
		u.Seq,
	)
}

func generateID() string {
	return uuid.Must(uuid.NewV7()).String()
}
