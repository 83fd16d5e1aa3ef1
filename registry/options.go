package registry

import "github.com/facet-ui/facet/observability"

// Option configures a Store at construction time.
type Option func(*Store)

// WithObserver sets the observer receiving store events. Categories created
// by the store inherit it.
func WithObserver(observer observability.Observer) Option {
	return func(s *Store) {
		if observer != nil {
			s.observer = observer
		}
	}
}

// WithDefaultPriority overrides the priority assigned when Add is called
// without WithPriority. Categories created by the store inherit it.
func WithDefaultPriority(priority int) Option {
	return func(s *Store) { s.defaultPriority = priority }
}

// AddOption configures a single Add call.
type AddOption func(*addOptions)

type addOptions struct {
	force       bool
	priority    int
	hasPriority bool
}

// WithForce allows Add to replace an existing entry instead of failing with
// ErrDuplicateKey.
func WithForce() AddOption {
	return func(o *addOptions) { o.force = true }
}

// WithPriority sets the entry's explicit priority. On a forced replacement
// it also overrides the prior entry's priority, which is otherwise kept.
func WithPriority(priority int) AddOption {
	return func(o *addOptions) {
		o.priority = priority
		o.hasPriority = true
	}
}

func applyAddOptions(opts []AddOption) addOptions {
	options := addOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
