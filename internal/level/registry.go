package level

import (
	"fmt"
	"sort"
	"sync"
)

// Info contains metadata about a registered level.
type Info struct {
	Name  string
	Title string
}

// Factory returns a fresh copy of a level.
type Factory func() Level

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a level factory to the registry.
// Typically called from an init() function.
// Panics if a level with the same name is already registered.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("level: %q already registered", name))
	}

	factories[name] = f
	titles[name] = f().Title
}

// List returns information about all registered levels, sorted by name.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(factories))
	for name := range factories {
		result = append(result, Info{Name: name, Title: titles[name]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Get returns a copy of the named level.
func Get(name string) (Level, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[name]
	if !ok {
		return Level{}, fmt.Errorf("level: unknown level %q", name)
	}
	return f(), nil
}

// Exists checks if a level with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}
