package dump

// isShadowed is the shadowing oracle (spec §4.6). It walks from the
// current scope outward, inclusive of both endpoints, until it reaches
// (and checks) the enclosing reference scope, returning true if any
// scope in that range binds name. The reference scope defaults to the
// interpreter's true global scope: a dump cursor sitting at global must
// still be checked against global's own bindings, since a user program
// is free to rebind NaN/undefined/Infinity as ordinary global
// variables (spec §8 scenario 3).
func isShadowed(scope Scope, name string, referenceScope Scope) bool {
	for s := scope; s != nil; s = s.Outer() {
		if s.HasBinding(name) {
			return true
		}
		if s == referenceScope {
			break
		}
	}
	return false
}
