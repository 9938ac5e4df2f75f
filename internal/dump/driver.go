package dump

import (
	"bufio"
	"fmt"
	"io"
)

// lineWriter is a thin append-only wrapper (spec §5: "within a file,
// output is append-only") that writes one statement per line.
type lineWriter struct {
	w *bufio.Writer
}

func newLineWriter(w io.Writer) *lineWriter {
	return &lineWriter{w: bufio.NewWriter(w)}
}

func (lw *lineWriter) writeStmt(stmt string) {
	fmt.Fprintln(lw.w, stmt)
}

func (lw *lineWriter) flush() error {
	return lw.w.Flush()
}

// FileOpener externalizes filesystem writing (spec §1: "filesystem
// writing" is a collaborator). Open must return a writer for filename,
// ready to receive append-only statement text. Run calls Open once per
// SpecEntry and closes the returned writer itself, after flushing it or
// when writing that file fails.
type FileOpener interface {
	Open(filename string) (io.WriteCloser, error)
}

// driveObject brings obj (just constructed or referenced at parts) up to
// todo. SET needs nothing further — toExpr's construction already set
// any class-specific intrinsic data (Date epoch, RegExp pattern, a
// built-in's key) that SET requires. Only RECURSE additionally walks the
// object's own properties and finalizes their attributes (spec §4.6
// step 2).
func (d *Dumper) driveObject(obj InterpreterObject, parts Parts, todo Do) error {
	if todo != RECURSE {
		return nil
	}
	reorder := d.currentReorder(parts)
	keys := obj.OwnPropertyKeys()
	if !reorder {
		for _, key := range keys {
			if err := d.recursePropertyOf(obj, parts, key); err != nil {
				return err
			}
		}
		return nil
	}
	// reorder: true permits deferring a property whose value is an
	// object with no ref yet (and thus no established construction
	// site) past the rest of this object's properties instead of
	// forcing it to construct right here in insertion-order position.
	var deferred []string
	for _, key := range keys {
		if d.isUnconstructedObjectProperty(obj, key) {
			deferred = append(deferred, key)
			continue
		}
		if err := d.recursePropertyOf(obj, parts, key); err != nil {
			return err
		}
	}
	for _, key := range deferred {
		if err := d.recursePropertyOf(obj, parts, key); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dumper) isUnconstructedObjectProperty(obj InterpreterObject, key string) bool {
	v, err := obj.Get(key, d.interp.Root())
	if err != nil || !v.IsObject() {
		return false
	}
	return !d.reg.getObjectInfo(v.AsObject()).hasRef()
}

func (d *Dumper) recursePropertyOf(obj InterpreterObject, parts Parts, key string) error {
	childParts := append(parts.clone(), key)
	if err := d.dumpBinding(childParts, RECURSE); err != nil {
		return err
	}
	return nil
}

// currentReorder looks up the reorder flag configured for parts, if any
// explicit content entry named it exactly; defaults to false (insertion
// order).
func (d *Dumper) currentReorder(parts Parts) bool {
	for _, se := range d.cfg.Entries {
		for _, ce := range se.Contents {
			if ce.Parts.equal(parts) {
				return ce.Reorder
			}
		}
	}
	return false
}

// finalizeAttrs emits the extended Object.defineProperty form whenever
// desc differs from the implicit default attribute set, resolving the
// owner-serialization open question from spec §9. configurable: false
// is always finalized in a trailing call of its own, since a
// non-configurable property can no longer have its other attributes
// adjusted afterwards.
func (d *Dumper) finalizeAttrs(ownerExpr, key string, desc PropertyDescriptor) {
	def := defaultAttrs(d.interp.Root())
	nonDefault := desc.Writable != def.Writable ||
		desc.Enumerable != def.Enumerable ||
		desc.Readable != def.Readable ||
		desc.InheritedOwnership != def.InheritedOwnership ||
		desc.Owner != def.Owner

	if nonDefault {
		d.out.writeStmt(fmt.Sprintf(
			"Object.defineProperty(%s, %s, {writable: %t, enumerable: %t, configurable: true, owner: %s, readable: %t, inheritedOwnership: %t});",
			ownerExpr, d.ser.quote.Quote(key), desc.Writable, desc.Enumerable,
			d.ser.quote.Quote(string(desc.Owner)), desc.Readable, desc.InheritedOwnership,
		))
	}
	if !desc.Configurable {
		d.out.writeStmt(fmt.Sprintf(
			"Object.defineProperty(%s, %s, {configurable: false});",
			ownerExpr, d.ser.quote.Quote(key),
		))
	}
}

// Run executes the whole dump: one file per SpecEntry, in declared
// order, each walking its own Contents list (spec §4.6). The rest file
// is written the same way: bindings that no content entry names are not
// dumped to it or to any other file.
func (d *Dumper) Run(opener FileOpener) error {
	for fileNo, se := range d.cfg.Entries {
		w, err := opener.Open(se.Filename)
		if err != nil {
			return fmt.Errorf("opening %s: %w", se.Filename, err)
		}
		d.curFileIdx = fileNo
		d.out = newLineWriter(w)

		if err := d.runFile(se); err != nil {
			w.Close()
			return err
		}
		if err := d.out.flush(); err != nil {
			w.Close()
			return fmt.Errorf("flushing %s: %w", se.Filename, err)
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("closing %s: %w", se.Filename, err)
		}
	}
	return nil
}

func (d *Dumper) runFile(se SpecEntry) error {
	for _, ce := range se.Contents {
		switch ce.Do {
		case PRUNE:
			d.markPruned(ce.Parts)
		case SKIP:
			// No-op in this file; the path is dumped only if a later
			// file's contents name it.
		default: // DECL, SET, RECURSE
			if err := d.dumpBinding(ce.Parts, ce.Do); err != nil {
				return err
			}
		}
	}
	return nil
}

// markPruned records the PRUNE directive in the BindingInfo registry so
// later attempts to touch this exact binding are recognized as
// forbidden rather than silently re-processed. Tree-level pruning
// (reachability through the path) is already recorded by Config at
// build time; this only marks the terminal entry itself.
func (d *Dumper) markPruned(parts Parts) {
	if len(parts) == 1 {
		d.reg.getScopeInfo(d.interp.Global()).advance(parts[0], PRUNE)
		return
	}
	ownerVal, err := d.getValueForParts(parts[:len(parts)-1])
	if err != nil || !ownerVal.IsObject() {
		return
	}
	d.reg.getObjectInfo(ownerVal.AsObject()).advance(parts[len(parts)-1], PRUNE)
}

// finalizePropertyAttrs finalizes a property's own attribute set. Called
// from dumpProperty once the property has reached at least SET, so the
// descriptor reflects the value just emitted.
func (d *Dumper) finalizePropertyAttrs(owner InterpreterObject, ownerExpr, key string) {
	desc, ok := owner.GetOwnPropertyDescriptor(key)
	if !ok {
		return
	}
	d.finalizeAttrs(ownerExpr, key, desc)
}
