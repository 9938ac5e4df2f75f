package dump

// Package dump implements the heap-to-source dump engine: it walks a
// live interpreter heap and scope chain and emits source text that,
// re-evaluated in a fresh interpreter, reconstructs the original state.
//
// The interpreter itself is an external collaborator. This file is the
// narrow contract the engine depends on; production callers provide a
// real interpreter-backed implementation, tests and the CLI's smoke path
// use the fixture in internal/jsheap.

// Owner identifies who may write a property. ROOT is the privileged
// owner used by the dumper when reading heap state; it must always be
// able to observe every own-property regardless of readability.
type Owner string

// Class discriminates the closed set of object shapes the serializer
// knows how to construct. Any object reporting a class outside this set
// is a fatal SerializerError.
type Class int

const (
	ClassPlainObject Class = iota
	ClassArray
	ClassFunction     // native/built-in function, never constructible inline
	ClassUserFunction // user-defined function; has source text and closure
	ClassDate
	ClassRegExp
)

func (c Class) String() string {
	switch c {
	case ClassPlainObject:
		return "object"
	case ClassArray:
		return "array"
	case ClassFunction:
		return "function"
	case ClassUserFunction:
		return "user-function"
	case ClassDate:
		return "date"
	case ClassRegExp:
		return "regexp"
	default:
		return "unknown"
	}
}

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	KindUndefined ValueKind = iota
	KindNull
	KindBoolean
	KindNumber
	KindString
	KindObject
)

// Value is a tagged-variant handle to anything a scope or property can
// hold: one of the five primitive kinds, or a reference to a live
// InterpreterObject. Object identity is carried by the InterpreterObject
// handle itself (pointer/handle equality in the live heap), which is
// exactly the identity the serializer keys its ref map on.
type Value struct {
	Kind ValueKind
	bool bool
	num  float64
	str  string
	obj  InterpreterObject
}

func Undefined() Value                { return Value{Kind: KindUndefined} }
func Null() Value                     { return Value{Kind: KindNull} }
func Bool(b bool) Value               { return Value{Kind: KindBoolean, bool: b} }
func Number(n float64) Value          { return Value{Kind: KindNumber, num: n} }
func String(s string) Value           { return Value{Kind: KindString, str: s} }
func Object(o InterpreterObject) Value {
	if o == nil {
		return Null()
	}
	return Value{Kind: KindObject, obj: o}
}

func (v Value) IsObject() bool       { return v.Kind == KindObject }
func (v Value) AsBool() bool         { return v.bool }
func (v Value) AsNumber() float64    { return v.num }
func (v Value) AsString() string     { return v.str }
func (v Value) AsObject() InterpreterObject { return v.obj }

// PropertyDescriptor mirrors ES5.1 §8.10 plus the owner/readable/
// inherited-ownership attributes the host interpreter layers on top
// (see _examples/original_source/server/interpreter/data/object.go,
// type Property). All five booleans and Owner are preserved across a
// dump/reload round trip.
type PropertyDescriptor struct {
	Value              Value
	Owner              Owner
	Writable           bool
	Enumerable         bool
	Configurable       bool
	Readable           bool
	InheritedOwnership bool
}

// defaultAttrs is the attribute set a freshly-created own-property has
// (new Object literal property, array element, etc). The driver only
// emits an Object.defineProperty call when a descriptor differs from
// this baseline.
func defaultAttrs(owner Owner) PropertyDescriptor {
	return PropertyDescriptor{
		Owner:        owner,
		Writable:     true,
		Enumerable:   true,
		Configurable: true,
		Readable:     true,
	}
}

// Scope is the interpreter's binding-chain contract: a scope has an
// ordered set of variable names, the current value bound to each, and an
// optional enclosing scope. The global scope has Outer() == nil.
type Scope interface {
	Get(name string) (Value, bool)
	HasBinding(name string) bool
	Outer() Scope
	// Names returns the scope's own variable names in declaration order.
	Names() []string
}

// InterpreterObject is a live heap object: a prototype link, an
// insertion-ordered own-property table, a class discriminant, and
// class-specific intrinsic data. Implementations must be stable handles
// usable as map keys (pointer identity).
type InterpreterObject interface {
	Class() Class
	// Proto returns the prototype object, or nil for a null-prototype
	// object (Object.create(null)).
	Proto() InterpreterObject
	// Get reads a property by key, resolving through the prototype
	// chain, observed as the given owner.
	Get(key string, owner Owner) (Value, error)
	// OwnPropertyKeys returns this object's own property keys in
	// insertion order.
	OwnPropertyKeys() []string
	GetOwnPropertyDescriptor(key string) (PropertyDescriptor, bool)

	// ArrayLength is valid when Class() == ClassArray.
	ArrayLength() int
	// FunctionSource is valid when Class() is ClassFunction or
	// ClassUserFunction; it is the function's verbatim source text.
	FunctionSource() string
	// FunctionClosure is valid when Class() == ClassUserFunction; it is
	// the scope the function closed over at creation time.
	FunctionClosure() Scope
	// DateEpochMillis is valid when Class() == ClassDate.
	DateEpochMillis() float64
	// RegExpPattern is valid when Class() == ClassRegExp.
	RegExpPattern() (pattern, flags string)
}

// Builtins resolves a stable, interpreter-assigned key for objects that
// exist unconditionally in any fresh interpreter (global object,
// Object.prototype, Array.prototype, ...). GetKey returns ok == false for
// ordinary heap objects.
type Builtins interface {
	GetKey(obj InterpreterObject) (key string, ok bool)
}

// Interpreter is the full external collaborator the dump engine is
// driven against.
type Interpreter interface {
	Global() Scope
	Root() Owner
	// ObjectProto is the identity of the default Object prototype: the
	// serializer emits a bare "{}" only when a plain object's Proto()
	// equals this object.
	ObjectProto() InterpreterObject
	Builtins() Builtins
}
