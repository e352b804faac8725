package enumset

import (
	"fmt"
	"sync"
)

// registry is the process-wide table of named sets. Values are stored as
// any because sets of different element types share one namespace.
var registry = struct {
	mu   sync.RWMutex
	sets map[string]any
}{sets: make(map[string]any)}

// Register publishes a set under a name for later Lookup. Registering the
// same name twice is an error.
func Register[T comparable](name string, set *Set[T]) error {
	if name == "" {
		return fmt.Errorf("enumset: register: empty name")
	}
	if set == nil {
		return fmt.Errorf("enumset: register %q: nil set", name)
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()

	if _, ok := registry.sets[name]; ok {
		return fmt.Errorf("enumset: register %q: already registered", name)
	}
	registry.sets[name] = set
	return nil
}

// MustRegister is like Register but panics on error. Intended for use from
// package init functions.
func MustRegister[T comparable](name string, set *Set[T]) {
	if err := Register(name, set); err != nil {
		panic(err)
	}
}

// Lookup retrieves a previously registered set. It returns false when the
// name is unknown or was registered with a different element type.
func Lookup[T comparable](name string) (*Set[T], bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	s, ok := registry.sets[name].(*Set[T])
	return s, ok
}

// RegisteredNames returns the names of all registered sets, in no
// particular order.
func RegisteredNames() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	out := make([]string, 0, len(registry.sets))
	for name := range registry.sets {
		out = append(out, name)
	}
	return out
}
