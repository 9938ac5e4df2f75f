package dump

import (
	"fmt"
	"strconv"
	"time"
)

// Quoter is the string-quoting collaborator (spec §1: "string quoting
// ... are collaborators"). It must produce a literal that round-trips
// through the target parser. The default implementation below follows
// the teacher's own convention in its AST pretty-printer
// (internal/prettyprinter/code_printer.go, VisitInterpolatedString) of
// building on strconv.Quote rather than hand-rolling escape rules.
type Quoter interface {
	Quote(s string) string
}

// stdQuoter quotes with Go's strconv.Quote and then rewrites the
// surrounding double quotes to single quotes, since the emitted source
// targets a JS-family parser where both are valid string delimiters and
// single quotes read more idiomatically for generated code. There is no
// ecosystem JS-string-literal quoter in the example corpus; strconv
// already produces a control-character-safe, UTF-8-safe escape and the
// teacher leans on it for exactly this job, so reusing it here (instead
// of hand-rolling escaping) is the documented standard-library
// exception (see DESIGN.md).
type stdQuoter struct{}

func (stdQuoter) Quote(s string) string {
	goQuoted := strconv.Quote(s)
	inner := goQuoted[1 : len(goQuoted)-1]
	// strconv.Quote only escapes " where needed; we want ' escaped and "
	// left bare instead, since the outer delimiter is now '.
	out := make([]byte, 0, len(inner)+2)
	out = append(out, '\'')
	for i := 0; i < len(inner); i++ {
		switch {
		case inner[i] == '"':
			out = append(out, '"')
		case inner[i] == '\\' && i+1 < len(inner) && inner[i+1] == '\\':
			// Copy an escaped backslash whole so the character after it
			// is not read as the start of another escape.
			out = append(out, '\\', '\\')
			i++
		case inner[i] == '\\' && i+1 < len(inner) && inner[i+1] == 'a':
			// JS has no \a escape; spell the bell character in hex.
			out = append(out, `\x07`...)
			i++
		case inner[i] == '\\' && i+1 < len(inner) && inner[i+1] == '"':
			out = append(out, '"')
			i++
		default:
			out = append(out, inner[i])
		}
	}
	out = append(out, '\'')
	return escapeSingleQuotes(string(out))
}

func escapeSingleQuotes(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\'' && i != 0 && i != len(s)-1 {
			out = append(out, '\\', '\'')
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}

// DefaultQuoter is the stock string-quoting collaborator.
var DefaultQuoter Quoter = stdQuoter{}

// claimResolver lets the serializer answer "is this object claimed
// somewhere else in the config, and has that file run yet" without
// holding the Dumper's full state itself (spec §4.6 step 3). Dumper is
// the only implementation; tests construct a serializer directly
// without one when inline construction never arises.
type claimResolver interface {
	findClaim(obj InterpreterObject) (Parts, int, bool)
	currentFileIndex() int
}

// serializer converts live values into source text. It is stateless
// beyond the collaborators it holds; all durable state (refs, done
// levels) lives in the Registry.
type serializer struct {
	interp   Interpreter
	reg      *Registry
	quote    Quoter
	resolver claimResolver
}

// toExpr implements spec §4.4. scope is the current dump scope cursor,
// consulted only for the shadowing oracle on undefined/NaN/Infinity.
// parts is the path this value is about to be stored at, or nil if the
// value is being embedded inline (e.g. as a prototype expression) rather
// than bound anywhere — required whenever construction of a genuinely
// new, non-builtin object is needed.
func (s *serializer) toExpr(v Value, parts Parts, scope Scope) (string, error) {
	switch v.Kind {
	case KindUndefined:
		if isShadowed(scope, "undefined", s.interp.Global()) {
			return "(void 0)", nil
		}
		return "undefined", nil
	case KindNull:
		return "null", nil
	case KindBoolean:
		if v.AsBool() {
			return "true", nil
		}
		return "false", nil
	case KindNumber:
		return s.numberLiteral(v.AsNumber(), scope), nil
	case KindString:
		return s.quote.Quote(v.AsString()), nil
	case KindObject:
		return s.objectExpr(v.AsObject(), parts, scope)
	default:
		return "", &SerializerError{Parts: parts, Reason: "unknown primitive kind"}
	}
}

func (s *serializer) numberLiteral(n float64, scope Scope) string {
	switch {
	case n != n: // NaN
		if isShadowed(scope, "NaN", s.interp.Global()) {
			return "(0/0)"
		}
		return "NaN"
	case n > 0 && n*2 == n && n > 1: // +Inf (cheap check avoiding math.IsInf import)
		if isShadowed(scope, "Infinity", s.interp.Global()) {
			return "(1/0)"
		}
		return "Infinity"
	case n < 0 && n*2 == n && n < -1: // -Inf
		if isShadowed(scope, "Infinity", s.interp.Global()) {
			return "(-1/0)"
		}
		return "-Infinity"
	case n == 0 && isNegativeZero(n):
		return "-0"
	default:
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
}

func isNegativeZero(n float64) bool {
	return n == 0 && (1/n) < 0
}

// objectExpr handles toExpr cases 2-4.
func (s *serializer) objectExpr(obj InterpreterObject, parts Parts, scope Scope) (string, error) {
	info := s.reg.getObjectInfo(obj)

	// Case 2: already emitted.
	if info.hasRef() {
		return fromParts(info.ref), nil
	}

	// Case 3: built-in, recovered by key rather than reconstructed.
	if key, ok := s.interp.Builtins().GetKey(obj); ok {
		if parts != nil {
			info.ref = parts.clone()
		}
		return fmt.Sprintf("new %s", s.quote.Quote(key)), nil
	}

	// Case 4: otherwise new object - requires a Parts to reference it by.
	// An inline context (parts == nil, e.g. a prototype expression) has
	// none of its own. If some other configured path already claims this
	// object, that path is its only legitimate construction site and it
	// simply hasn't been reached yet (hasRef would be true already if it
	// had) — that's a forward reference, reported as an ordering error
	// naming the claim so the caller knows which file to reorder ahead of
	// this one. Only when no claim exists anywhere is this truly
	// unreferenceable.
	if parts == nil {
		if s.resolver != nil {
			if claimed, fileNo, found := s.resolver.findClaim(obj); found {
				return "", &OrderingError{Parts: claimed, ClaimedFile: fileNo, CurrentFile: s.resolver.currentFileIndex()}
			}
		}
		return "", &SerializerError{Reason: "constructing a new object inline with no parts to reference it by"}
	}
	info.ref = parts.clone()

	switch obj.Class() {
	case ClassPlainObject:
		return s.plainObjectExpr(obj, scope)
	case ClassUserFunction:
		return obj.FunctionSource(), nil
	case ClassFunction:
		return "", &SerializerError{Parts: parts, Reason: "non-user function cannot be serialized"}
	case ClassArray:
		return "[]", nil
	case ClassDate:
		return s.dateExpr(obj), nil
	case ClassRegExp:
		return s.regexpExpr(obj, parts)
	default:
		return "", &SerializerError{Parts: parts, Reason: "unknown object class"}
	}
}

func (s *serializer) plainObjectExpr(obj InterpreterObject, scope Scope) (string, error) {
	proto := obj.Proto()
	switch {
	case proto == nil:
		return "Object.create(null)", nil
	case proto == s.interp.ObjectProto():
		return "{}", nil
	default:
		protoExpr, err := s.toExpr(Object(proto), nil, scope)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Object.create(%s)", protoExpr), nil
	}
}

func (s *serializer) dateExpr(obj InterpreterObject) string {
	ms := int64(obj.DateEpochMillis())
	t := time.UnixMilli(ms).UTC().Format("2006-01-02T15:04:05.000Z")
	return fmt.Sprintf("new Date(%s)", s.quote.Quote(t))
}

func (s *serializer) regexpExpr(obj InterpreterObject, parts Parts) (string, error) {
	pattern, flags := obj.RegExpPattern()
	if pattern == "" {
		pattern = "(?:)"
	}
	for _, r := range pattern {
		if r == '\n' || r == '\r' {
			return "", &SerializerError{Parts: parts, Reason: "regexp source cannot contain a raw newline"}
		}
	}
	return fmt.Sprintf("/%s/%s", pattern, flags), nil
}
