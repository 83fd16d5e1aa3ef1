package registry

// defaultStore is the process-wide root store, for callers that do not need
// their own instance. Applications composing multiple stores should create
// them with New instead.
var defaultStore = New("root")

// Default returns the process-wide root store.
func Default() *Store {
	return defaultStore
}
