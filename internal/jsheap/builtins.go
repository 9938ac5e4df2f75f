package jsheap

import "github.com/alimjanqadir/jsdump/internal/dump"

// Builtins is a small fixed registry mapping a handful of objects that
// exist unconditionally in any fresh interpreter to the key the
// serializer recovers them by (dump.Interpreter.Builtins, spec.md §4.4
// case 3). Grounded on the teacher's own built-in registration pattern
// in internal/evaluator/builtins.go, where a fixed set of well-known
// names map to pre-existing values rather than being constructed by
// evaluating source.
type Builtins struct {
	byObject map[dump.InterpreterObject]string
}

func NewBuiltins() *Builtins {
	return &Builtins{byObject: map[dump.InterpreterObject]string{}}
}

// Register associates obj with key, the literal one of these built-ins
// would be recovered by (e.g. "Object.prototype", "globalThis").
func (b *Builtins) Register(key string, obj dump.InterpreterObject) {
	b.byObject[obj] = key
}

func (b *Builtins) GetKey(obj dump.InterpreterObject) (string, bool) {
	key, ok := b.byObject[obj]
	return key, ok
}

var _ dump.Builtins = (*Builtins)(nil)
