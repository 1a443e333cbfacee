package api

import (
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/briandipalma/codediff.nvim/internal/version"
)

// Module represents part of the codediff API surface exposed to Lua callers.
type Module interface {
	// Name returns the module name (e.g., "version").
	Name() string

	// Register adds the module's functions to the codediff table.
	Register(L *lua.LState, codediff *lua.LTable) error
}

// Registry manages API modules and their installation into Lua states.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]Module
	order   []string
}

// NewRegistry creates an empty API registry.
func NewRegistry() *Registry {
	return &Registry{
		modules: make(map[string]Module),
	}
}

// Register adds a module to the registry.
func (r *Registry) Register(mod Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.modules[mod.Name()]; exists {
		return fmt.Errorf("module %q already registered", mod.Name())
	}

	r.modules[mod.Name()] = mod
	r.order = append(r.order, mod.Name())
	return nil
}

// Get returns a module by name.
func (r *Registry) Get(name string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mod, ok := r.modules[name]
	return mod, ok
}

// List returns all registered module names in registration order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// InjectAll builds the codediff module table from all registered modules and
// preloads it so that require("codediff") works in the given state.
func (r *Registry) InjectAll(L *lua.LState) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codediff := L.NewTable()
	for _, name := range r.order {
		if err := r.modules[name].Register(L, codediff); err != nil {
			return fmt.Errorf("failed to register module %q: %w", name, err)
		}
	}

	// Lua module convention
	L.SetField(codediff, "_VERSION", lua.LString(version.Version))

	L.PreloadModule("codediff", func(L *lua.LState) int {
		L.Push(codediff)
		return 1
	})

	return nil
}

// DefaultRegistry creates a registry with all standard modules registered.
// Returns an error only on a programming error such as a duplicate module.
func DefaultRegistry() (*Registry, error) {
	r := NewRegistry()

	modules := []Module{
		NewVersionModule(),
	}
	for _, mod := range modules {
		if err := r.Register(mod); err != nil {
			return nil, err
		}
	}

	return r, nil
}
