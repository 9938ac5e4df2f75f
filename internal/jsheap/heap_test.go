package jsheap

import (
	"testing"

	"github.com/alimjanqadir/jsdump/internal/dump"
)

func TestNewWiresObjectPrototypeAndGlobalThis(t *testing.T) {
	h := New()

	if h.ObjectProto() == nil {
		t.Fatal("expected a non-nil Object.prototype")
	}
	key, ok := h.Builtins().GetKey(h.ObjectProto())
	if !ok || key != "Object.prototype" {
		t.Errorf("Object.prototype builtin key = (%q, %v)", key, ok)
	}

	v, ok := h.Global().Get("globalThis")
	if !ok {
		t.Fatal("expected globalThis to be bound in the global scope")
	}
	if !v.IsObject() {
		t.Fatal("expected globalThis to hold an object")
	}
	globalThisObj := v.AsObject()
	gtKey, ok := h.Builtins().GetKey(globalThisObj)
	if !ok || gtKey != "globalThis" {
		t.Errorf("globalThis builtin key = (%q, %v)", gtKey, ok)
	}
	if globalThisObj.Proto() != h.ObjectProto() {
		t.Error("expected globalThis's prototype to be Object.prototype")
	}
}

func TestNewObjectUsesHeapObjectPrototype(t *testing.T) {
	h := New()
	o := h.NewObject()
	if o.Proto() != h.ObjectProto() {
		t.Error("NewObject must chain to the heap's Object.prototype")
	}
}

func TestRootOwnerDoesNotBypassReadability(t *testing.T) {
	h := New()
	o := h.NewObject()
	o.DefineOwn("secret", dump.PropertyDescriptor{Value: dump.Number(1), Owner: RootOwner, Readable: false})

	// Only the empty owner (the dumper's own internal reads) bypasses
	// Readable; RootOwner is just the owner identity heap-owned objects
	// are tagged with, not a readability override.
	if _, err := o.Get("secret", h.Root()); err == nil {
		t.Error("expected reading an unreadable property as RootOwner to still fail")
	}
	if _, err := o.Get("secret", ""); err != nil {
		t.Errorf("empty owner should bypass readability, got error: %v", err)
	}
}

func TestRegisterBuiltinAddsToRegistry(t *testing.T) {
	h := New()
	arrayProto := h.NewObject()
	h.RegisterBuiltin("Array.prototype", arrayProto)

	key, ok := h.Builtins().GetKey(arrayProto)
	if !ok || key != "Array.prototype" {
		t.Errorf("GetKey = (%q, %v)", key, ok)
	}
}

func TestGlobalScopeReturnsConcreteScope(t *testing.T) {
	h := New()
	h.GlobalScope().Define("x", dump.Number(1))
	v, ok := h.Global().Get("x")
	if !ok || v.AsNumber() != 1 {
		t.Error("expected Global() and GlobalScope() to share the same underlying scope")
	}
}

var _ dump.Interpreter = (*Heap)(nil)
