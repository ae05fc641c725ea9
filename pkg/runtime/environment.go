package runtime

import (
	"sort"

	"tagl/interpreter-go/pkg/diag"
)

// Environment is one scope in the runtime scope chain.
type Environment struct {
	values map[string]Value
	parent *Environment
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]Value),
		parent: parent,
	}
}

// Snapshot returns a copy of the current scope's bindings.
func (e *Environment) Snapshot() map[string]Value {
	out := make(map[string]Value, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

// Restore replaces the current scope's bindings with a copy of snapshot.
func (e *Environment) Restore(snapshot map[string]Value) {
	e.values = make(map[string]Value, len(snapshot))
	for k, v := range snapshot {
		e.values[k] = v
	}
}

// Define inserts or overwrites a binding in the current scope only.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Assign updates an existing binding in the first scope where it appears.
func (e *Environment) Assign(name string, value Value) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name]; ok {
			env.values[name] = value
			return nil
		}
	}
	return diag.Runtime(diag.CodeUndefinedVariable, "Undefined variable '%s'", name)
}

// Lookup searches outward through the scope chain.
func (e *Environment) Lookup(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Get is Lookup reporting a missing name as a runtime error.
func (e *Environment) Get(name string) (Value, error) {
	if v, ok := e.Lookup(name); ok {
		return v, nil
	}
	return nil, diag.Runtime(diag.CodeUndefinedVariable, "Undefined variable '%s'", name)
}

// Keys returns the bindings of the current scope in sorted order.
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Extend returns a new child scope.
func (e *Environment) Extend() *Environment {
	return NewEnvironment(e)
}
