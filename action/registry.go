// Package action maintains the process-wide registry of invocable commands.
// Actions are registered once at startup and dispatched by name from the
// terminal host's key bindings or programmatically.
package action

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/facet-ui/facet/component"
)

// Handler is the function signature for action implementations. Handlers
// receive the invocation context and JSON-encoded arguments matching the
// action's declared parameter schema.
type Handler func(ctx context.Context, args json.RawMessage) (Result, error)

// Result is the action invocation output, surfaced in the journal and the
// host's status line. IsError marks a completed invocation whose outcome was
// a failure the user should see.
type Result struct {
	Output  string
	IsError bool
}

type entry struct {
	action  component.Action
	handler Handler
}

type registry struct {
	entries map[string]entry
	mu      sync.RWMutex
}

var register = &registry{
	entries: make(map[string]entry),
}

// Register adds a new action to the global registry.
// Returns ErrAlreadyExists if an action with the same name is already
// registered. Use Replace to update an existing action's handler.
// Thread-safe for concurrent registration.
func Register(act component.Action, handler Handler) error {
	if act.Name == "" {
		return ErrEmptyName
	}

	register.mu.Lock()
	defer register.mu.Unlock()

	if _, exists := register.entries[act.Name]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, act.Name)
	}

	register.entries[act.Name] = entry{action: act, handler: handler}
	return nil
}

// Replace updates an existing action's definition and handler.
// Returns ErrNotFound if no action with the given name is registered.
// Thread-safe for concurrent access.
func Replace(act component.Action, handler Handler) error {
	if act.Name == "" {
		return ErrEmptyName
	}

	register.mu.Lock()
	defer register.mu.Unlock()

	if _, exists := register.entries[act.Name]; !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, act.Name)
	}

	register.entries[act.Name] = entry{action: act, handler: handler}
	return nil
}

// Get retrieves a handler by action name.
// Returns the handler and true if found, nil and false otherwise.
// Thread-safe for concurrent access.
func Get(name string) (Handler, bool) {
	register.mu.RLock()
	defer register.mu.RUnlock()

	e, exists := register.entries[name]
	if !exists {
		return nil, false
	}
	return e.handler, true
}

// List returns the definitions of all registered actions, sorted by name.
// Thread-safe for concurrent access.
func List() []component.Action {
	register.mu.RLock()
	defer register.mu.RUnlock()

	actions := make([]component.Action, 0, len(register.entries))
	for _, e := range register.entries {
		actions = append(actions, e.action)
	}

	sort.Slice(actions, func(i, j int) bool {
		return actions[i].Name < actions[j].Name
	})

	return actions
}

// Execute dispatches an invocation to the registered handler by name.
// Returns ErrNotFound if the action is not registered.
// Handler errors are wrapped with the action name for context.
// Thread-safe for concurrent execution.
func Execute(ctx context.Context, name string, args json.RawMessage) (Result, error) {
	register.mu.RLock()
	e, exists := register.entries[name]
	register.mu.RUnlock()

	if !exists {
		return Result{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	result, err := e.handler(ctx, args)
	if err != nil {
		return Result{}, fmt.Errorf("action %s execution failed: %w", name, err)
	}

	return result, nil
}
