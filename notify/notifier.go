package notify

import (
	"context"
	"sync"
	"sync/atomic"
)

// Handler receives a published Update. Handlers run synchronously on the
// publishing goroutine, after the originating store has applied the change.
type Handler func(Update)

// Subscription is an opaque handle identifying one registered handler.
type Subscription struct {
	id      string
	handler Handler
}

func (s *Subscription) ID() string {
	return s.id
}

// Notifier fans a store's mutation updates out to subscribers in
// subscription order. Thread-safe for concurrent access.
type Notifier struct {
	name string

	mu     sync.RWMutex
	subs   []*Subscription
	closed bool

	seq     atomic.Uint64
	metrics *Metrics
}

func New(name string) *Notifier {
	return &Notifier{
		name:    name,
		metrics: NewMetrics(),
	}
}

func (n *Notifier) Name() string {
	return n.name
}

// Subscribe registers a handler for every subsequent Update. The returned
// Subscription is the handle for Unsubscribe. A nil handler returns nil and
// registers nothing.
func (n *Notifier) Subscribe(handler Handler) *Subscription {
	if handler == nil {
		return nil
	}

	sub := &Subscription{
		id:      generateID(),
		handler: handler,
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return nil
	}
	n.subs = append(n.subs, sub)
	n.metrics.RecordSubscriber(1)

	return sub
}

// Unsubscribe removes a previously registered subscription. Unknown or nil
// subscriptions are ignored. Once Unsubscribe returns, the handler will not
// be invoked by later Publish calls.
func (n *Notifier) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	for i, s := range n.subs {
		if s == sub {
			n.subs = append(n.subs[:i], n.subs[i+1:]...)
			n.metrics.RecordSubscriber(-1)
			return
		}
	}
}

// Publish stamps the update with the notifier's name and next sequence
// number, then delivers it synchronously to every subscriber in subscription
// order. Handlers run outside the notifier's lock. Returns the number of
// subscribers the update was delivered to; a closed notifier delivers to
// none.
func (n *Notifier) Publish(update Update) int {
	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()
		return 0
	}
	subs := make([]*Subscription, len(n.subs))
	copy(subs, n.subs)
	n.mu.RUnlock()

	update.Store = n.name
	update.Seq = n.seq.Add(1)
	n.metrics.RecordPublished(1)

	for _, sub := range subs {
		sub.handler(update)
		n.metrics.RecordDelivered(1)
	}

	return len(subs)
}

// Close drops all subscriptions and rejects further Publish and Subscribe
// calls. Safe to call more than once.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	n.closed = true
	n.metrics.RecordSubscriber(-len(n.subs))
	n.subs = nil
}

func (n *Notifier) SubscriberCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subs)
}

func (n *Notifier) Metrics() MetricsSnapshot {
	return n.metrics.Snapshot()
}

// Stream subscribes a channel-backed consumer. Updates are delivered with a
// non-blocking send: when the buffer is full the update is dropped rather
// than stalling the publisher. Unsubscribe the returned Subscription before
// closing the channel.
func (n *Notifier) Stream(ctx context.Context, buffer int) (*Channel[Update], *Subscription) {
	ch := NewChannel[Update](ctx, buffer)
	sub := n.Subscribe(func(u Update) {
		ch.TrySend(u)
	})
	return ch, sub
}
