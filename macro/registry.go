// Copyright © 2025 The Whisker authors

// Package macro implements the macro execution machinery for Whisker
// stories: a name-keyed registry of macro definitions, an execution
// context holding the call stack, variable scopes, hooks, and flags, and
// composable content changers.
package macro

import "sort"

// Handler executes a macro against the live context with a positional
// argument list.  A returned error is a recoverable result for the
// caller, never a fault.
type Handler func(ctx *Context, args []interface{}) (interface{}, error)

// Definition describes a registered macro.
type Definition struct {
	// Handler runs the macro.
	Handler Handler

	// Category is a free-form grouping such as "text", "audio", "data",
	// or "link".
	Category string

	// Pure marks a macro with no side effects, safe to re-evaluate.
	Pure bool

	// Async marks a macro whose true result depends on a host-completed
	// operation rather than being immediately available.
	Async bool
}

// Registry is a flat name-keyed table of macro definitions.  Registration
// is last-write-wins; re-registering a name replaces the prior definition
// without error.
//
// A Registry is not safe for concurrent mutation.
type Registry struct {
	defs map[string]Definition
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Register stores def under name, replacing any prior definition.
func (r *Registry) Register(name string, def Definition) {
	r.defs[name] = def
}

// Get returns the definition registered under name.
func (r *Registry) Get(name string) (Definition, bool) {
	def, ok := r.defs[name]
	return def, ok
}

// Len returns the number of registered macros.
func (r *Registry) Len() int {
	return len(r.defs)
}

// Names returns all registered macro names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InCategory returns the sorted names of macros in the given category.
func (r *Registry) InCategory(category string) []string {
	var names []string
	for name, def := range r.defs {
		if def.Category == category {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
