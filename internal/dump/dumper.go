package dump

import (
	"fmt"
	"regexp"
)

// Dumper is the engine driving a single dump run. It owns the
// BindingInfo registry (spec §5: "the only shared resource ... owned by
// the Dumper instance and not exposed") and the collaborators needed to
// turn a traversal decision into text.
type Dumper struct {
	interp Interpreter
	reg    *Registry
	ser    *serializer
	cfg    *Config
	claims []claimEntry

	curFileIdx int
	out        *lineWriter
}

// claimEntry flattens every ContentEntry across every SpecEntry, in
// declared order, so the driver can answer "does some other configured
// path already evaluate to this exact object" without a reverse index
// into the live heap (spec §4.6 step 3 — locating an object's claimed
// location).
type claimEntry struct {
	parts  Parts
	fileNo int
}

// NewDumper constructs a Dumper for a single run against interp,
// configured by cfg. quoter defaults to DefaultQuoter when nil.
func NewDumper(interp Interpreter, cfg *Config, quoter Quoter) *Dumper {
	if quoter == nil {
		quoter = DefaultQuoter
	}
	reg := newRegistry()
	d := &Dumper{
		interp: interp,
		reg:    reg,
		cfg:    cfg,
	}
	d.ser = &serializer{interp: interp, reg: reg, quote: quoter, resolver: d}
	for fileNo, se := range cfg.Entries {
		for _, ce := range se.Contents {
			if ce.Do == PRUNE {
				continue
			}
			d.claims = append(d.claims, claimEntry{parts: ce.Parts.clone(), fileNo: fileNo})
		}
	}
	return d
}

// getValueForParts traverses from the global scope (spec §4.5); each
// non-leaf step must land on an object, else fatal.
func (d *Dumper) getValueForParts(parts Parts) (Value, error) {
	if len(parts) == 0 {
		return Value{}, &ConfigError{Reason: "empty parts"}
	}
	val, ok := d.interp.Global().Get(parts[0])
	if !ok {
		return Value{}, &StructureError{Parts: parts[:1], Reason: "no such global binding"}
	}
	for i := 1; i < len(parts); i++ {
		if !val.IsObject() {
			return Value{}, &StructureError{Parts: parts[:i], Reason: "not an object"}
		}
		next, err := val.AsObject().Get(parts[i], d.interp.Root())
		if err != nil {
			return Value{}, fmt.Errorf("reading %q: %w", fromParts(parts[:i+1]), err)
		}
		val = next
	}
	return val, nil
}

// findClaim answers spec §4.6 step 3: does some configured path already
// name this exact object, and if so which file claims it. Pruned claims
// are treated as absent — reachability through them is forbidden.
func (d *Dumper) findClaim(obj InterpreterObject) (Parts, int, bool) {
	for _, c := range d.claims {
		if d.cfg.IsPruned(c.parts) {
			continue
		}
		v, err := d.getValueForParts(c.parts)
		if err != nil {
			continue
		}
		if v.IsObject() && v.AsObject() == obj {
			return c.parts, c.fileNo, true
		}
	}
	return nil, 0, false
}

// currentFileIndex reports the file currently being written, for the
// serializer's claimResolver use (spec §4.6 step 3).
func (d *Dumper) currentFileIndex() int { return d.curFileIdx }

var identifierRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// propertyAccessor renders owner.key using dot syntax when key is a
// valid identifier and bracket syntax (with a quoted key) otherwise, so
// array indices and non-identifier property names still round-trip.
func (d *Dumper) propertyAccessor(owner string, key string) string {
	if identifierRe.MatchString(key) {
		return owner + "." + key
	}
	return fmt.Sprintf("%s[%s]", owner, d.ser.quote.Quote(key))
}

// dumpBinding emits the statement finalizing one variable or property
// binding at level >= DECL (spec §4.5), followed for RECURSE by the
// statements for the value's own properties. It emits nothing when the
// binding has already reached todo.
func (d *Dumper) dumpBinding(parts Parts, todo Do) error {
	if len(parts) == 0 {
		return &ConfigError{Reason: "empty parts"}
	}
	if len(parts) == 1 {
		return d.dumpVariable(parts, todo)
	}
	return d.dumpProperty(parts, todo)
}

// dumpVariable handles spec §4.5 step 1: a one-element Parts names a
// variable in the global scope. Variable bindings are always the
// canonical home for the objects they hold once touched, so DECL and SET
// both construct immediately (only RECURSE additionally walks contents):
// a variable can't be left holding a bare "undefined" placeholder and
// still serve as a forward-declaration target for other bindings, which
// is exactly the role DECL plays for variables in spec §8 scenario 6.
func (d *Dumper) dumpVariable(parts Parts, todo Do) error {
	name := parts[0]
	si := d.reg.getScopeInfo(d.interp.Global())
	cur := si.current(name)
	if todo <= cur {
		return nil
	}
	val, ok := d.interp.Global().Get(name)
	if !ok {
		return &StructureError{Parts: parts, Reason: "no such global binding"}
	}
	rhs, err := d.ser.toExpr(val, parts, d.interp.Global())
	if err != nil {
		return err
	}
	needsVarKeyword := cur < DECL
	si.advance(name, todo)
	if needsVarKeyword {
		d.out.writeStmt(fmt.Sprintf("var %s = %s;", name, rhs))
	} else {
		d.out.writeStmt(fmt.Sprintf("%s = %s;", name, rhs))
	}
	if val.IsObject() {
		return d.driveObject(val.AsObject(), parts, todo)
	}
	return nil
}

// dumpProperty handles spec §4.5 step 2: a multi-element Parts names an
// own-property of the object reached by its prefix.
func (d *Dumper) dumpProperty(parts Parts, todo Do) error {
	ownerParts := parts[:len(parts)-1]
	key := parts[len(parts)-1]

	ownerVal, err := d.getValueForParts(ownerParts)
	if err != nil {
		return err
	}
	if !ownerVal.IsObject() {
		return &StructureError{Parts: ownerParts, Reason: "not an object"}
	}
	owner := ownerVal.AsObject()
	oinfo := d.reg.getObjectInfo(owner)
	cur := oinfo.current(key)
	if todo <= cur {
		return nil
	}
	oinfo.advance(key, todo)

	ownerExpr := fromParts(ownerParts)
	var val Value
	var rhs string
	if todo == DECL {
		rhs = "undefined"
	} else {
		val, err = d.getValueForParts(parts)
		if err != nil {
			return err
		}
		rhs, err = d.ser.toExpr(val, parts, d.interp.Global())
		if err != nil {
			return err
		}
	}
	d.out.writeStmt(fmt.Sprintf("%s = %s;", d.propertyAccessor(ownerExpr, key), rhs))

	if todo == DECL {
		return nil
	}
	d.finalizePropertyAttrs(owner, ownerExpr, key)
	if val.IsObject() {
		return d.driveObject(val.AsObject(), parts, todo)
	}
	return nil
}
