package notify

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Send on a channel that was already closed.
var ErrClosed = errors.New("channel closed")

// Channel is a context-aware buffered channel for typed values.
type Channel[T any] struct {
	ch     chan T
	ctx    context.Context
	buffer int

	mu     sync.RWMutex
	closed bool
}

func NewChannel[T any](ctx context.Context, buffer int) *Channel[T] {
	return &Channel[T]{
		ch:     make(chan T, buffer),
		ctx:    ctx,
		buffer: buffer,
	}
}

// Send blocks until the value is accepted or either context is cancelled.
// Returns ErrClosed when the channel was closed before the call.
func (c *Channel[T]) Send(ctx context.Context, value T) error {
	c.mu.RLock()
	closed := c.closed
	c.mu.RUnlock()
	if closed {
		return ErrClosed
	}

	select {
	case c.ch <- value:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-c.ctx.Done():
		return c.ctx.Err()
	}
}

// TrySend delivers the value without blocking. Returns false when the buffer
// is full or the channel is closed. Safe to call concurrently with Close.
func (c *Channel[T]) TrySend(value T) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return false
	}

	select {
	case c.ch <- value:
		return true
	default:
		return false
	}
}

func (c *Channel[T]) Receive(ctx context.Context) (T, error) {
	select {
	case value := <-c.ch:
		return value, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case <-c.ctx.Done():
		var zero T
		return zero, c.ctx.Err()
	}
}

func (c *Channel[T]) TryReceive() (T, bool) {
	select {
	case value := <-c.ch:
		return value, true
	default:
		var zero T
		return zero, false
	}
}

// Close marks the channel closed and closes the underlying Go channel. Safe
// to call more than once and to race with TrySend; cancel or finish blocking
// Sends before closing.
func (c *Channel[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.ch)
}

func (c *Channel[T]) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

func (c *Channel[T]) Len() int {
	return len(c.ch)
}

func (c *Channel[T]) Cap() int {
	return c.buffer
}
