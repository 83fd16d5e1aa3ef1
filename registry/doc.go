// Package registry implements the keyed, priority-ordered store at the core
// of the component framework.
//
// A Store maps string keys to arbitrary values. Every value carries a
// priority; the store's ordered view sorts ascending by priority, with ties
// broken by insertion order. Mutations publish a change notification after
// the store reflects the change, so subscribers always observe post-mutation
// state.
//
// # Registration
//
// Add rejects duplicate keys unless forced. A forced replacement keeps the
// prior entry's priority and position unless a new priority is given:
//
//	store := registry.New("widgets")
//
//	err := store.Add("clock", clockWidget)
//	err = store.Add("clock", otherWidget)                      // ErrDuplicateKey
//	err = store.Add("clock", otherWidget, registry.WithForce()) // replaces
//	err = store.Add("banner", banner, registry.WithPriority(10))
//
// # Ordered views
//
// Values, Entries, and Keys return fresh copies of the sorted view. The view
// is computed lazily and cached; any mutation invalidates the cache before
// its notification fires, so a subscriber reading the store from its handler
// never sees a stale view.
//
// # Categories
//
// Category returns a named sub-store, created lazily on first access. Each
// category is an independent Store with its own subscribers, schema, and
// ordering:
//
//	widgets := store.Category("widgets")
//	widgets.Add("clock", clockWidget)
//
// # Validation
//
// SetSchema installs a JSON Schema exactly once per store. Installation
// validates all current entries and fails without installing if any entry
// violates the schema. Once installed, every subsequent Add is validated.
//
// # Notification
//
// Stores compose a notify.Notifier. Subscribe registers a handler invoked
// synchronously, in subscription order, after each mutation:
//
//	sub := store.Subscribe(func(u notify.Update) {
//	    // store already reflects the change here
//	})
//	defer store.Unsubscribe(sub)
package registry
