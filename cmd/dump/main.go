package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/alimjanqadir/jsdump/internal/dump"
	"github.com/alimjanqadir/jsdump/internal/jsheap"
)

// colorEnabled reports whether stderr is a color-capable terminal, the
// same NO_COLOR/isatty check the teacher runs before touching ANSI
// escapes (internal/evaluator/builtins_term.go, detectColorLevel).
func colorEnabled() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func errorf(runID string, format string, args ...interface{}) {
	prefix := fmt.Sprintf("[%s] ", runID)
	if colorEnabled() {
		prefix = "\033[31m" + prefix + "\033[39m"
	}
	fmt.Fprintf(os.Stderr, prefix+format+"\n", args...)
}

// osFileOpener is the production dump.FileOpener: it creates filename
// under outDir, truncating any existing file there.
type osFileOpener struct {
	outDir string
}

func (o osFileOpener) Open(filename string) (io.WriteCloser, error) {
	path := filepath.Join(o.outDir, filename)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating directory for %s: %w", filename, err)
	}
	return os.Create(path)
}

// buildSmokeHeap assembles a small heap fixture of plain objects, one of
// them shared by two holders, so a dump run has something
// real to walk when no production interpreter is wired in (spec.md §1
// explicitly treats the interpreter as an external collaborator; this
// is the CLI's own stand-in, the same role internal/evaluator's test
// environments play for the teacher's evaluator tests).
func buildSmokeHeap() *jsheap.Heap {
	h := jsheap.New()
	global := h.GlobalScope()

	config := h.NewObject()
	config.SetOwn("name", dump.String("jsdump"))
	config.SetOwn("version", dump.Number(1))
	global.Define("config", dump.Object(config))

	shared := h.NewObject()
	shared.SetOwn("value", dump.Number(42))
	holderA := h.NewObject()
	holderA.SetOwn("ref", dump.Object(shared))
	holderB := h.NewObject()
	holderB.SetOwn("ref", dump.Object(shared))
	global.Define("holderA", dump.Object(holderA))
	global.Define("holderB", dump.Object(holderB))

	return h
}

func main() {
	runID := uuid.NewString()

	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			errorf(runID, "internal error: %v", r)
			os.Exit(1)
		}
	}()

	configPath := flag.String("config", "", "path to the dump config spec (YAML)")
	outDir := flag.String("out", ".", "directory to write the dumped source files into")
	flag.Parse()

	if *configPath == "" {
		errorf(runID, "usage: dump -config <spec.yaml> [-out <dir>]")
		os.Exit(2)
	}

	data, err := os.ReadFile(*configPath)
	if err != nil {
		errorf(runID, "reading config: %s", err)
		os.Exit(1)
	}

	cfg, err := dump.ParseConfigYAML(data)
	if err != nil {
		errorf(runID, "parsing config: %s", err)
		os.Exit(1)
	}

	heap := buildSmokeHeap()
	dumper := dump.NewDumper(heap, cfg, nil)

	if err := dumper.Run(osFileOpener{outDir: *outDir}); err != nil {
		errorf(runID, "%s", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "[%s] dumped %d file(s) to %s\n", runID, len(cfg.Entries), *outDir)
}
