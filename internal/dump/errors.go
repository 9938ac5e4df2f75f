package dump

import "fmt"

// All dump engine errors are fatal and immediate (spec §7): there is no
// partial dump and no local recovery. Each kind carries the offending
// Parts (when one is in scope) so the caller can report exactly which
// binding the dump choked on.

// ConfigError reports a malformed Config spec: multiple rest entries,
// an empty/malformed selector, a missing filename or path, or an unknown
// do level. A path claimed by more than one file is not an error.
type ConfigError struct {
	Reason string
	Parts  Parts
}

func (e *ConfigError) Error() string {
	if len(e.Parts) == 0 {
		return fmt.Sprintf("config error: %s", e.Reason)
	}
	return fmt.Sprintf("config error at %q: %s", fromParts(e.Parts), e.Reason)
}

// StructureError reports traversal through a non-object in
// getValueForParts, or an attempt to set a property on a primitive.
type StructureError struct {
	Parts  Parts
	Reason string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("structure error at %q: %s", fromParts(e.Parts), e.Reason)
}

// SerializerError reports a value toExpr cannot turn into source text:
// an inline construction with no Parts to reference it by, a non-user
// function, an object of an unknown class, or an unrecognized primitive.
type SerializerError struct {
	Parts  Parts
	Reason string
}

func (e *SerializerError) Error() string {
	if len(e.Parts) == 0 {
		return fmt.Sprintf("serializer error: %s", e.Reason)
	}
	return fmt.Sprintf("serializer error at %q: %s", fromParts(e.Parts), e.Reason)
}

// OrderingError reports an inline reference (such as a prototype) to an
// object that some configured path claims but whose construction has not
// run yet. It is raised whether the claiming file comes before, equals or
// follows the current file; no forward declaration is emitted in its place.
type OrderingError struct {
	Parts       Parts
	ClaimedFile int
	CurrentFile int
}

func (e *OrderingError) Error() string {
	return fmt.Sprintf(
		"ordering error at %q: claimed by file %d but referenced undeclared from file %d",
		fromParts(e.Parts), e.ClaimedFile, e.CurrentFile,
	)
}
