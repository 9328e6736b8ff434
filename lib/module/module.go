// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package module

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/bureau-foundation/shellfn/lib/coerce"
	"github.com/bureau-foundation/shellfn/lib/funcspec"
	"github.com/bureau-foundation/shellfn/lib/invoke"
)

// Module is a compiled-in set of target functions. A manifest selects
// its module by name; the manifest describes the signatures and the
// module supplies the implementations.
type Module struct {
	// Name matches the manifest's "name" field.
	Name string

	// Targets maps function names to implementations.
	Targets map[string]invoke.Target

	// Constructors are extra named-type constructors the module's
	// signatures refer to, added on top of the built-in set.
	Constructors map[string]coerce.Constructor
}

// Target returns the implementation of the named function.
func (m *Module) Target(name string) (invoke.Target, bool) {
	target, ok := m.Targets[name]
	return target, ok
}

// Coercer returns a coercer with the built-in constructors plus the
// module's own.
func (m *Module) Coercer() *coerce.Coercer {
	coercer := coerce.New()
	for name, constructor := range m.Constructors {
		coercer.Register(name, constructor)
	}
	return coercer
}

// Check reports exported manifest functions the module does not
// implement. Functions the module implements but the manifest does not
// declare are allowed: a manifest may expose a subset.
func (m *Module) Check(manifest *funcspec.Manifest) error {
	var missing []string
	for _, function := range manifest.ExportedFunctions() {
		if _, ok := m.Targets[function.Name]; !ok {
			missing = append(missing, function.Name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("module %s does not implement %v", m.Name, missing)
	}
	return nil
}

// Registry maps module names to modules. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]*Module
}

// NewRegistry returns a registry holding modules.
func NewRegistry(modules ...*Module) (*Registry, error) {
	registry := &Registry{modules: make(map[string]*Module, len(modules))}
	for _, module := range modules {
		if err := registry.Register(module); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// Register adds a module. Names must be non-empty and unique.
func (r *Registry) Register(module *Module) error {
	if module.Name == "" {
		return fmt.Errorf("registering module: name is empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.modules == nil {
		r.modules = make(map[string]*Module)
	}
	if _, exists := r.modules[module.Name]; exists {
		return fmt.Errorf("module %q is already registered", module.Name)
	}
	r.modules[module.Name] = module
	return nil
}

// Lookup returns the module with the given name.
func (r *Registry) Lookup(name string) (*Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	module, ok := r.modules[name]
	return module, ok
}

// Names returns the registered module names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.modules))
}
