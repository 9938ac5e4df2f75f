package jsheap

import "github.com/alimjanqadir/jsdump/internal/dump"

// RootOwner is the privileged owner the dumper reads the heap as: it
// must be able to observe every own-property regardless of Readable
// (dump.Owner doc, dump.Interpreter.Root).
const RootOwner dump.Owner = "root"

// Heap is a minimal, from-scratch interpreter fixture: a global scope,
// an Object.prototype, and a builtins registry. It exists to give the
// dump engine something real to walk in tests and in the CLI's smoke
// path, standing in for a production JS-semantics interpreter the same
// way the teacher's own test fixtures stand in for a full evaluator run
// (internal/evaluator/evaluator_test.go's newTestEnvironment pattern).
type Heap struct {
	global      *Scope
	objectProto *Object
	builtins    *Builtins
}

// New builds a fresh heap: an empty global scope, a bare
// Object.prototype registered under the key "Object.prototype", and a
// globalThis binding registered under "globalThis" pointing at a plain
// object owned by RootOwner.
func New() *Heap {
	objectProto := NewPlainObject(RootOwner, nil)
	builtins := NewBuiltins()
	builtins.Register("Object.prototype", objectProto)

	h := &Heap{
		global:      NewGlobalScope(),
		objectProto: objectProto,
		builtins:    builtins,
	}

	globalThis := NewPlainObject(RootOwner, objectProto)
	builtins.Register("globalThis", globalThis)
	h.global.Define("globalThis", dump.Object(globalThis))

	return h
}

func (h *Heap) Global() dump.Scope               { return h.global }
func (h *Heap) Root() dump.Owner                 { return RootOwner }
func (h *Heap) ObjectProto() dump.InterpreterObject { return h.objectProto }
func (h *Heap) Builtins() dump.Builtins          { return h.builtins }

// GlobalScope returns the concrete *Scope, for callers (tests, the CLI)
// that need to Define bindings before a dump run.
func (h *Heap) GlobalScope() *Scope { return h.global }

// NewObject is a convenience constructor for a plain object whose
// prototype is this heap's Object.prototype, owned by RootOwner.
func (h *Heap) NewObject() *Object {
	return NewPlainObject(RootOwner, h.objectProto)
}

// RegisterBuiltin exposes the builtins registry to callers assembling a
// fixture heap with more built-ins than the bare default (e.g.
// Array.prototype, Function.prototype) before running a dump.
func (h *Heap) RegisterBuiltin(key string, obj dump.InterpreterObject) {
	h.builtins.Register(key, obj)
}

var _ dump.Interpreter = (*Heap)(nil)
