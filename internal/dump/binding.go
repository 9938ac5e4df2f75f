package dump

// ScopeInfo is the per-scope slice of the BindingInfo registry: the
// highest Do level reached so far for each variable name dumped out of
// this scope.
type ScopeInfo struct {
	done map[string]Do
}

func newScopeInfo() *ScopeInfo {
	return &ScopeInfo{done: map[string]Do{}}
}

func (si *ScopeInfo) current(name string) Do {
	return si.done[name] // zero value (Do(0)) sorts below PRUNE, as intended
}

// advance updates done[name] to max(existing, requested) and returns the
// new level. The monotonic invariant (spec §8) lives entirely here.
func (si *ScopeInfo) advance(name string, to Do) Do {
	next := maxDo(si.done[name], to)
	si.done[name] = next
	return next
}

// ObjectInfo is the per-object slice: per-property done levels plus the
// object's ref — the Parts of the first path at which it was
// constructed. Once ref is set it never changes (spec §3
// "ObjectInfo.ref").
type ObjectInfo struct {
	done map[string]Do
	ref  Parts // nil until the object has been emitted at DECL or above
}

func newObjectInfo() *ObjectInfo {
	return &ObjectInfo{done: map[string]Do{}}
}

func (oi *ObjectInfo) current(key string) Do {
	return oi.done[key]
}

func (oi *ObjectInfo) advance(key string, to Do) Do {
	next := maxDo(oi.done[key], to)
	oi.done[key] = next
	return next
}

func (oi *ObjectInfo) hasRef() bool { return oi.ref != nil }

// Registry is the BindingInfo registry: two interned maps, owned
// exclusively by a single Dumper run, never exposed outside it (spec
// §5 "the only shared resource ... owned by the Dumper instance").
type Registry struct {
	scopes  map[Scope]*ScopeInfo
	objects map[InterpreterObject]*ObjectInfo
}

func newRegistry() *Registry {
	return &Registry{
		scopes:  map[Scope]*ScopeInfo{},
		objects: map[InterpreterObject]*ObjectInfo{},
	}
}

// getScopeInfo is memoized: BindingInfo records are created lazily on
// first touch (spec §3 "Lifecycle").
func (r *Registry) getScopeInfo(s Scope) *ScopeInfo {
	si, ok := r.scopes[s]
	if !ok {
		si = newScopeInfo()
		r.scopes[s] = si
	}
	return si
}

func (r *Registry) getObjectInfo(o InterpreterObject) *ObjectInfo {
	oi, ok := r.objects[o]
	if !ok {
		oi = newObjectInfo()
		r.objects[o] = oi
	}
	return oi
}
