package jsheap

import "github.com/alimjanqadir/jsdump/internal/dump"

// Scope is a minimal JS-semantics scope: an ordered set of variable
// bindings plus an optional enclosing scope. Adapted from the teacher's
// Environment (internal/evaluator/environment.go) — same outer-chain
// shape, generalized from a single string->Object map to also track
// declaration order, which the dump engine needs for ordered variable
// iteration (spec.md §3 "Scope").
type Scope struct {
	outer *Scope
	names []string
	store map[string]dump.Value
}

// NewGlobalScope returns a fresh scope with no enclosing scope — the
// distinguished global scope (spec.md §3).
func NewGlobalScope() *Scope {
	return &Scope{store: map[string]dump.Value{}}
}

// NewEnclosedScope returns a scope nested inside outer, the way a
// function body's local scope is enclosed by its defining scope.
func NewEnclosedScope(outer *Scope) *Scope {
	return &Scope{outer: outer, store: map[string]dump.Value{}}
}

// Define creates or overwrites a binding, appending to the declaration
// order the first time name is seen.
func (s *Scope) Define(name string, v dump.Value) {
	if _, exists := s.store[name]; !exists {
		s.names = append(s.names, name)
	}
	s.store[name] = v
}

func (s *Scope) Get(name string) (dump.Value, bool) {
	v, ok := s.store[name]
	return v, ok
}

func (s *Scope) HasBinding(name string) bool {
	_, ok := s.store[name]
	return ok
}

func (s *Scope) Outer() dump.Scope {
	if s.outer == nil {
		return nil
	}
	return s.outer
}

func (s *Scope) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

var _ dump.Scope = (*Scope)(nil)
