package observability

import (
	"errors"
	"fmt"
	"sync"
)

// Names of the built-in observers, resolvable from config.
const (
	ObserverNoop = "noop"
	ObserverSlog = "slog"
)

// ErrUnknownObserver is returned by GetObserver for a name nothing has
// registered.
var ErrUnknownObserver = errors.New("unknown observer")

var (
	observersMu sync.RWMutex
	observers   = map[string]Observer{
		ObserverNoop: NoOpObserver{},
		ObserverSlog: &SlogObserver{},
	}
)

// GetObserver resolves a configured observer name. ObserverNoop discards
// events; ObserverSlog logs them through the process default logger.
func GetObserver(name string) (Observer, error) {
	observersMu.RLock()
	defer observersMu.RUnlock()

	obs, ok := observers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownObserver, name)
	}
	return obs, nil
}

// RegisterObserver adds or replaces a named observer. Register before
// building the app so configs can refer to the name.
func RegisterObserver(name string, observer Observer) {
	observersMu.Lock()
	defer observersMu.Unlock()

	observers[name] = observer
}
