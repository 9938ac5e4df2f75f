package dump

import "strings"

// Parts is the canonical internal form of a dotted selector: the first
// element names a global variable, subsequent elements name own-
// properties of the value reached so far. Selector strings are only
// parsed at the boundary (toParts) and only rendered back at the
// boundary (fromParts) — everywhere else in the engine operates on Parts.
type Parts []string

// toParts splits a dotted selector string into its canonical Parts form.
// A zero-length result (empty selector, or one that splits to nothing)
// is a ConfigError.
func toParts(selector string) (Parts, error) {
	if selector == "" {
		return nil, &ConfigError{Reason: "empty selector"}
	}
	raw := strings.Split(selector, ".")
	parts := make(Parts, 0, len(raw))
	for _, p := range raw {
		if p == "" {
			return nil, &ConfigError{Reason: "selector has an empty component: " + selector}
		}
		parts = append(parts, p)
	}
	if len(parts) == 0 {
		return nil, &ConfigError{Reason: "selector has no parts: " + selector}
	}
	return parts, nil
}

// fromParts joins a Parts value back into its canonical dotted string
// form. Used both to render a reference expression and to name a path
// in error messages.
func fromParts(parts Parts) string {
	return strings.Join(parts, ".")
}

// clone returns an independent copy, since Parts slices are stored
// long-lived as ObjectInfo.ref and must not alias caller-owned slices.
func (p Parts) clone() Parts {
	out := make(Parts, len(p))
	copy(out, p)
	return out
}

func (p Parts) equal(other Parts) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}
