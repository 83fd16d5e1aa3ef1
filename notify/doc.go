// Package notify provides change notification primitives for registry stores.
//
// Stores compose a Notifier rather than inheriting from an event bus: the
// store owns a Notifier, publishes an Update on every mutation, and
// subscribers react to the change after it has been applied.
//
// # Updates
//
// Every mutation produces a single Update describing the operation:
//
//	update := notify.NewUpdate(notify.OpAdd, "clock", widget)
//
// Updates carry a UUIDv7 identifier, a per-notifier sequence number, and the
// name of the store that emitted them, so consumers can order and attribute
// changes without inspecting store internals.
//
// # Subscription
//
// Delivery is synchronous and in subscription order. By the time a handler
// runs, the originating store already reflects the change:
//
//	sub := notifier.Subscribe(func(u notify.Update) {
//	    log.Printf("%s %s", u.Op, u.Key)
//	})
//	defer notifier.Unsubscribe(sub)
//
// Handlers run outside the store's internal lock, so they may freely read
// from the store that notified them.
//
// # Streaming
//
// For consumers that prefer channels over callbacks, Stream bridges a
// subscription onto a buffered Channel. Sends never block the publisher;
// updates are dropped when the buffer is full:
//
//	updates, sub := notifier.Stream(ctx, 64)
//	defer notifier.Unsubscribe(sub)
//
//	for {
//	    u, err := updates.Receive(ctx)
//	    if err != nil {
//	        return
//	    }
//	    handle(u)
//	}
package notify
