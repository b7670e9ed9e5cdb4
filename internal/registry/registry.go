// Package registry provides a global registry for ruleset factories.
// Rulesets register themselves in init() functions, allowing the CLI and
// servers to discover and instantiate them by ID without hardcoded lists.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/swg/internal/rules"
)

// Info contains metadata about a registered ruleset.
type Info struct {
	ID      string
	Title   string
	Choices []rules.Choice
}

// Factory is a function that creates a ruleset instance.
type Factory func() *rules.Ruleset

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]Info)
	mu        sync.RWMutex
)

// Register adds a ruleset factory to the registry.
// Typically called from an init() function.
// Panics if a ruleset with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: ruleset %q already registered", id))
	}

	factories[id] = f

	// Capture metadata from a temporary instance
	rs := f()
	infos[id] = Info{
		ID:      id,
		Title:   rs.Name(),
		Choices: rs.Choices(),
	}
}

// List returns information about all registered rulesets, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a ruleset by its ID.
// Returns an error if the ID is not registered.
func Create(id string) (*rules.Ruleset, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown ruleset %q", id)
	}

	return f(), nil
}

// Exists checks if a ruleset with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
