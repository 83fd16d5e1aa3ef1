package journal

import (
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/facet-ui/facet/notify"
)

type memoryJournal struct {
	id       string
	capacity int
	updates  []notify.Update
	mu       sync.RWMutex
}

// NewMemoryJournal creates a Journal backed by an in-memory slice. A positive
// capacity bounds retention: recording past it discards the oldest updates.
// The journal is assigned a unique UUIDv7 identifier.
func NewMemoryJournal(capacity int) Journal {
	return &memoryJournal{
		id:       uuid.Must(uuid.NewV7()).String(),
		capacity: capacity,
	}
}

func (j *memoryJournal) ID() string {
	return j.id
}

func (j *memoryJournal) Record(u notify.Update) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.updates = append(j.updates, u)
	if j.capacity > 0 && len(j.updates) > j.capacity {
		overflow := len(j.updates) - j.capacity
		j.updates = append(j.updates[:0], j.updates[overflow:]...)
	}
}

func (j *memoryJournal) Updates() []notify.Update {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return slices.Clone(j.updates)
}

func (j *memoryJournal) Tail(n int) []notify.Update {
	if n <= 0 {
		return nil
	}

	j.mu.RLock()
	defer j.mu.RUnlock()

	if n > len(j.updates) {
		n = len(j.updates)
	}
	return slices.Clone(j.updates[len(j.updates)-n:])
}

func (j *memoryJournal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.updates)
}

func (j *memoryJournal) Clear() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.updates = nil
}
