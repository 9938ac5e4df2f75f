package dump_test

import (
	"bytes"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/alimjanqadir/jsdump/internal/dump"
	"github.com/alimjanqadir/jsdump/internal/jsheap"
)

// memFile is an in-memory io.WriteCloser capturing one dumped file's
// contents for assertion.
type memFile struct {
	buf bytes.Buffer
}

func (f *memFile) Write(p []byte) (int, error) { return f.buf.Write(p) }
func (f *memFile) Close() error                { return nil }

type memOpener struct {
	files map[string]*memFile
}

func newMemOpener() *memOpener { return &memOpener{files: map[string]*memFile{}} }

func (o *memOpener) Open(filename string) (io.WriteCloser, error) {
	f := &memFile{}
	o.files[filename] = f
	return f, nil
}

func contents(o *memOpener, filename string) string {
	f, ok := o.files[filename]
	if !ok {
		return ""
	}
	return f.buf.String()
}

func buildConfig(t *testing.T, entries []dump.SpecEntry) *dump.Config {
	t.Helper()
	cfg, err := dump.BuildConfig(entries)
	if err != nil {
		t.Fatalf("BuildConfig: %v", err)
	}
	return cfg
}

// TestDumpEmptySpecProducesNoFiles covers the universal invariant that
// an empty config spec dumps nothing.
func TestDumpEmptySpecProducesNoFiles(t *testing.T) {
	heap := jsheap.New()
	cfg := buildConfig(t, nil)
	d := dump.NewDumper(heap, cfg, nil)
	opener := newMemOpener()
	if err := d.Run(opener); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(opener.files) != 0 {
		t.Errorf("expected no files written, got %d", len(opener.files))
	}
}

// TestDumpPrimitivesIncludingNegativeZeroAndUndefined covers scenario 2:
// a variable bound to a plain object whose own properties are a string,
// -0 and undefined.
func TestDumpPrimitivesIncludingNegativeZeroAndUndefined(t *testing.T) {
	heap := jsheap.New()
	obj := heap.NewObject()
	obj.SetOwn("str", dump.String("hi"))
	obj.SetOwn("neg", dump.Number(math.Copysign(0, -1)))
	obj.SetOwn("undef", dump.Undefined())
	heap.GlobalScope().Define("box", dump.Object(obj))

	cfg := buildConfig(t, []dump.SpecEntry{
		{Filename: "out.js", Contents: []dump.ContentEntry{
			{Parts: dump.Parts{"box"}, Do: dump.RECURSE},
		}},
	})
	d := dump.NewDumper(heap, cfg, nil)
	opener := newMemOpener()
	if err := d.Run(opener); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := contents(opener, "out.js")
	for _, want := range []string{"var box = {};", "box.str = 'hi';", "box.neg = -0;", "box.undef = undefined;"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q; got:\n%s", want, got)
		}
	}
}

// TestDumpSharedReferenceEmitsOneConstructionAndOneAlias covers scenario
// 4: two variables holding the same object construct it once and alias
// it thereafter.
func TestDumpSharedReferenceEmitsOneConstructionAndOneAlias(t *testing.T) {
	heap := jsheap.New()
	shared := heap.NewObject()
	shared.SetOwn("value", dump.Number(42))
	heap.GlobalScope().Define("a", dump.Object(shared))
	heap.GlobalScope().Define("b", dump.Object(shared))

	cfg := buildConfig(t, []dump.SpecEntry{
		{Filename: "out.js", Contents: []dump.ContentEntry{
			{Parts: dump.Parts{"a"}, Do: dump.RECURSE},
			{Parts: dump.Parts{"b"}, Do: dump.RECURSE},
		}},
	})
	d := dump.NewDumper(heap, cfg, nil)
	opener := newMemOpener()
	if err := d.Run(opener); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := contents(opener, "out.js")
	if !strings.Contains(got, "var a = {};") {
		t.Errorf("expected a to construct the shared object; got:\n%s", got)
	}
	if !strings.Contains(got, "var b = a;") {
		t.Errorf("expected b to alias a; got:\n%s", got)
	}
}

// TestDumpSelfReferentialCycle covers scenario 5: an object whose own
// property points back at itself must not infinitely recurse, and the
// self-reference must be emitted as a property assignment after
// construction.
func TestDumpSelfReferentialCycle(t *testing.T) {
	heap := jsheap.New()
	obj := heap.NewObject()
	heap.GlobalScope().Define("node", dump.Object(obj))
	obj.SetOwn("self", dump.Object(obj))

	cfg := buildConfig(t, []dump.SpecEntry{
		{Filename: "out.js", Contents: []dump.ContentEntry{
			{Parts: dump.Parts{"node"}, Do: dump.RECURSE},
		}},
	})
	d := dump.NewDumper(heap, cfg, nil)
	opener := newMemOpener()
	if err := d.Run(opener); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := contents(opener, "out.js")
	if !strings.Contains(got, "var node = {};") {
		t.Errorf("expected node construction; got:\n%s", got)
	}
	if !strings.Contains(got, "node.self = node;") {
		t.Errorf("expected self-reference assignment; got:\n%s", got)
	}
}

// TestDumpShadowedNaNUsesExpression covers scenario 3: when a user
// program rebinds NaN as an ordinary global variable, a NaN-valued
// property must be emitted as (0/0) rather than the bare identifier.
func TestDumpShadowedNaNUsesExpression(t *testing.T) {
	heap := jsheap.New()
	heap.GlobalScope().Define("NaN", dump.String("not a number anymore"))
	obj := heap.NewObject()
	obj.SetOwn("n", dump.Number(nanValue()))
	heap.GlobalScope().Define("box", dump.Object(obj))

	cfg := buildConfig(t, []dump.SpecEntry{
		{Filename: "out.js", Contents: []dump.ContentEntry{
			{Parts: dump.Parts{"box"}, Do: dump.RECURSE},
		}},
	})
	d := dump.NewDumper(heap, cfg, nil)
	opener := newMemOpener()
	if err := d.Run(opener); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := contents(opener, "out.js")
	if !strings.Contains(got, "box.n = (0/0);") {
		t.Errorf("expected shadowed NaN rendered as (0/0); got:\n%s", got)
	}
}

func nanValue() float64 {
	var zero float64
	return zero / zero
}

// TestDumpOrderingErrorOnUndeclaredForwardReference covers scenario 6:
// referencing an object inline (as a prototype) whose only configured
// claim lives in a file that has not produced it yet must fail with an
// ordering error rather than silently reconstructing it.
func TestDumpOrderingErrorOnUndeclaredForwardReference(t *testing.T) {
	heap := jsheap.New()
	proto := heap.NewObject()
	child := jsheap.NewPlainObject(heap.Root(), proto)
	heap.GlobalScope().Define("proto", dump.Object(proto))
	heap.GlobalScope().Define("child", dump.Object(child))

	cfg := buildConfig(t, []dump.SpecEntry{
		{Filename: "file1.js", Contents: []dump.ContentEntry{
			{Parts: dump.Parts{"child"}, Do: dump.RECURSE},
		}},
		{Filename: "file2.js", Contents: []dump.ContentEntry{
			{Parts: dump.Parts{"proto"}, Do: dump.RECURSE},
		}},
	})
	d := dump.NewDumper(heap, cfg, nil)
	opener := newMemOpener()
	err := d.Run(opener)
	if err == nil {
		t.Fatal("expected an ordering error, got nil")
	}
	if _, ok := err.(*dump.OrderingError); !ok {
		t.Errorf("expected *dump.OrderingError, got %T: %v", err, err)
	}
}
