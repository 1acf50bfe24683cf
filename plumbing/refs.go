package plumbing

import "github.com/emirpasic/gods/maps/linkedhashmap"

// RefType classifies one Ref.
type RefType int

const (
	RefBranch RefType = iota
	RefRemoteBranch
	RefTag
)

// String renders the type for logging/debugging purposes.
func (t RefType) String() string {
	switch t {
	case RefBranch:
		return "branch"
	case RefRemoteBranch:
		return "remote-branch"
	case RefTag:
		return "tag"
	default:
		return "unknown"
	}
}

// Ref is one named reference pointing at a commit.
type Ref struct {
	Name string
	Type RefType
}

// References indexes the refs pointing at each known commit sha.
// Iteration order within a sha's ref set, and across shas, follows
// insertion order rather than Go's randomized map order, so a branch
// list rendered straight off this index doesn't reshuffle between
// repaints. byName is the reverse index, tracking which sha currently
// carries each ref name, so a ref can be relocated without a caller
// having to remember (or scan for) where it used to point.
type References struct {
	bySha  *linkedhashmap.Map
	byName map[string]Sha
}

// NewReferences returns an empty index.
func NewReferences() *References {
	return &References{bySha: linkedhashmap.New(), byName: make(map[string]Sha)}
}

// Add records ref as pointing at sha. Adding the same (sha, ref.Name)
// pair again replaces the ref's Type rather than duplicating the
// entry.
func (r *References) Add(sha Sha, ref Ref) {
	set := r.setFor(sha)
	set.Put(ref.Name, ref)
	r.byName[ref.Name] = sha
}

// Remove drops the named ref from sha's entry, if present, pruning
// sha's entire entry once it holds no more refs rather than leaving an
// empty sub-map behind.
func (r *References) Remove(sha Sha, name string) {
	v, ok := r.bySha.Get(sha)
	if !ok {
		return
	}
	set := v.(*linkedhashmap.Map)
	set.Remove(name)
	if set.Empty() {
		r.bySha.Remove(sha)
	}
	if r.byName[name] == sha {
		delete(r.byName, name)
	}
}

// Move relocates the ref named name so it points at sha with the given
// type, first pruning it from whatever sha it previously pointed at
// (if any). This is how a caller reports that a branch has moved
// without needing to know where it used to point.
func (r *References) Move(name string, sha Sha, refType RefType) {
	if prev, ok := r.byName[name]; ok {
		r.Remove(prev, name)
	}
	r.Add(sha, Ref{Name: name, Type: refType})
}

// At returns the refs known to point at sha, in insertion order.
func (r *References) At(sha Sha) []Ref {
	v, ok := r.bySha.Get(sha)
	if !ok {
		return nil
	}
	set := v.(*linkedhashmap.Map)
	out := make([]Ref, 0, set.Size())
	for _, name := range set.Keys() {
		val, _ := set.Get(name)
		out = append(out, val.(Ref))
	}
	return out
}

// Clear empties the index, as done on cache teardown/re-setup.
func (r *References) Clear() {
	r.bySha = linkedhashmap.New()
	r.byName = make(map[string]Sha)
}

// Branches returns every Ref of type RefBranch or RefRemoteBranch
// across all shas, in sha-then-ref insertion order. It is a read-only
// convenience view, not new state.
func (r *References) Branches() []Ref {
	return r.filter(func(t RefType) bool { return t == RefBranch || t == RefRemoteBranch })
}

// Tags returns every Ref of type RefTag across all shas, in
// sha-then-ref insertion order.
func (r *References) Tags() []Ref {
	return r.filter(func(t RefType) bool { return t == RefTag })
}

func (r *References) filter(keep func(RefType) bool) []Ref {
	var out []Ref
	for _, sha := range r.bySha.Keys() {
		v, _ := r.bySha.Get(sha)
		set := v.(*linkedhashmap.Map)
		for _, name := range set.Keys() {
			val, _ := set.Get(name)
			ref := val.(Ref)
			if keep(ref.Type) {
				out = append(out, ref)
			}
		}
	}
	return out
}

func (r *References) setFor(sha Sha) *linkedhashmap.Map {
	v, ok := r.bySha.Get(sha)
	if ok {
		return v.(*linkedhashmap.Map)
	}
	set := linkedhashmap.New()
	r.bySha.Put(sha, set)
	return set
}
