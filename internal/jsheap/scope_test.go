package jsheap

import (
	"reflect"
	"testing"

	"github.com/alimjanqadir/jsdump/internal/dump"
)

func TestScopeDefineAndGet(t *testing.T) {
	s := NewGlobalScope()
	s.Define("x", dump.Number(1))
	v, ok := s.Get("x")
	if !ok {
		t.Fatal("expected x to be bound")
	}
	if v.AsNumber() != 1 {
		t.Errorf("x = %v, want 1", v.AsNumber())
	}
	if _, ok := s.Get("y"); ok {
		t.Error("expected y to be unbound")
	}
}

func TestScopeDefinePreservesOrderAndOverwrite(t *testing.T) {
	s := NewGlobalScope()
	s.Define("a", dump.Number(1))
	s.Define("b", dump.Number(2))
	s.Define("a", dump.Number(99)) // overwrite, should not duplicate in Names()

	if got := s.Names(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Names() = %v, want [a b]", got)
	}
	v, _ := s.Get("a")
	if v.AsNumber() != 99 {
		t.Errorf("a = %v, want 99 after overwrite", v.AsNumber())
	}
}

func TestScopeOuterChain(t *testing.T) {
	global := NewGlobalScope()
	local := NewEnclosedScope(global)

	if global.Outer() != nil {
		t.Error("global scope must have a nil Outer()")
	}
	if local.Outer() == nil {
		t.Error("enclosed scope must report its outer scope")
	}

	global.Define("shared", dump.Number(5))
	if local.HasBinding("shared") {
		t.Error("HasBinding must not walk the outer chain on its own")
	}
}

func TestNamesReturnsIndependentCopy(t *testing.T) {
	s := NewGlobalScope()
	s.Define("a", dump.Number(1))
	names := s.Names()
	names[0] = "mutated"
	if s.Names()[0] != "a" {
		t.Error("Names() leaked its internal slice")
	}
}
