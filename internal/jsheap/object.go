package jsheap

import (
	"fmt"

	"github.com/alimjanqadir/jsdump/internal/dump"
)

// Object is the fixture's live heap object: a prototype link and an
// insertion-ordered own-property table. Adapted from
// _examples/original_source/server/interpreter/data/object.go (type
// object / type Property) — same owner-tagged descriptor shape — fixed
// to preserve insertion order, which that original left as a bug
// (OwnPropertyKeys there returns Go map iteration order; spec.md §8
// requires true insertion order, so this version keeps an explicit key
// slice alongside the map, the same ordered-map-via-slice idiom the
// teacher uses for witness/import ordering).
type Object struct {
	class    dump.Class
	proto    *Object
	keys     []string
	props    map[string]dump.PropertyDescriptor
	owner    dump.Owner

	// Class-specific intrinsic data.
	funcSource  string
	funcClosure *Scope
	dateEpochMS float64
	rePattern   string
	reFlags     string
}

// NewPlainObject creates a plain object owned by owner with the given
// prototype (nil for Object.create(null)).
func NewPlainObject(owner dump.Owner, proto *Object) *Object {
	return &Object{class: dump.ClassPlainObject, proto: proto, owner: owner, props: map[string]dump.PropertyDescriptor{}}
}

func NewArray(owner dump.Owner, proto *Object) *Object {
	return &Object{class: dump.ClassArray, proto: proto, owner: owner, props: map[string]dump.PropertyDescriptor{}}
}

func NewUserFunction(owner dump.Owner, proto *Object, source string, closure *Scope) *Object {
	return &Object{
		class: dump.ClassUserFunction, proto: proto, owner: owner,
		props: map[string]dump.PropertyDescriptor{}, funcSource: source, funcClosure: closure,
	}
}

func NewNativeFunction(owner dump.Owner, proto *Object, source string) *Object {
	return &Object{class: dump.ClassFunction, proto: proto, owner: owner, props: map[string]dump.PropertyDescriptor{}, funcSource: source}
}

func NewDate(owner dump.Owner, proto *Object, epochMillis float64) *Object {
	return &Object{class: dump.ClassDate, proto: proto, owner: owner, props: map[string]dump.PropertyDescriptor{}, dateEpochMS: epochMillis}
}

func NewRegExp(owner dump.Owner, proto *Object, pattern, flags string) *Object {
	return &Object{class: dump.ClassRegExp, proto: proto, owner: owner, props: map[string]dump.PropertyDescriptor{}, rePattern: pattern, reFlags: flags}
}

func (o *Object) Class() dump.Class { return o.class }

func (o *Object) Proto() dump.InterpreterObject {
	if o.proto == nil {
		return nil
	}
	return o.proto
}

// SetOwn sets an own-property, creating it with the default attribute
// set if it doesn't already exist (mirrors object.Set in the original
// source: new properties are writable/enumerable/configurable/readable
// by default, owned by the object's own owner).
func (o *Object) SetOwn(key string, v dump.Value) {
	if desc, exists := o.props[key]; exists {
		desc.Value = v
		o.props[key] = desc
		return
	}
	o.keys = append(o.keys, key)
	o.props[key] = dump.PropertyDescriptor{
		Value: v, Owner: o.owner,
		Writable: true, Enumerable: true, Configurable: true, Readable: true,
	}
}

// DefineOwn installs a fully custom descriptor, for fixtures/tests that
// need non-default attributes (hidden, read-only, reassigned owner,
// inherited ownership).
func (o *Object) DefineOwn(key string, desc dump.PropertyDescriptor) {
	if _, exists := o.props[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.props[key] = desc
}

func (o *Object) Get(key string, owner dump.Owner) (dump.Value, error) {
	if desc, ok := o.props[key]; ok {
		if !desc.Readable && owner != "" {
			return dump.Value{}, fmt.Errorf("property %q is not readable by %q", key, owner)
		}
		return desc.Value, nil
	}
	if o.proto != nil {
		return o.proto.Get(key, owner)
	}
	return dump.Undefined(), nil
}

func (o *Object) OwnPropertyKeys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

func (o *Object) GetOwnPropertyDescriptor(key string) (dump.PropertyDescriptor, bool) {
	d, ok := o.props[key]
	return d, ok
}

func (o *Object) ArrayLength() int {
	n := 0
	for _, k := range o.keys {
		if isArrayIndex(k) {
			n++
		}
	}
	return n
}

func isArrayIndex(k string) bool {
	if k == "" {
		return false
	}
	for _, r := range k {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (o *Object) FunctionSource() string { return o.funcSource }

func (o *Object) FunctionClosure() dump.Scope {
	if o.funcClosure == nil {
		return nil
	}
	return o.funcClosure
}

func (o *Object) DateEpochMillis() float64 { return o.dateEpochMS }

func (o *Object) RegExpPattern() (string, string) { return o.rePattern, o.reFlags }

var _ dump.InterpreterObject = (*Object)(nil)
