package plumbing

// RemoteTags is a name-indexed snapshot of tags known to exist on a
// remote, kept separately from local References so a history viewer
// can mark tags that exist upstream but haven't been fetched yet.
// Unlike References, iteration order here carries no UI meaning (tags
// are looked up by name, never listed positionally), so a plain map
// is the right tool rather than an ordered one.
type RemoteTags struct {
	byName map[string]Sha
}

// NewRemoteTags returns an empty snapshot.
func NewRemoteTags() *RemoteTags {
	return &RemoteTags{byName: make(map[string]Sha)}
}

// Set records name as pointing at sha on the remote.
func (t *RemoteTags) Set(name string, sha Sha) {
	t.byName[name] = sha
}

// Get resolves a remote tag name to its sha.
func (t *RemoteTags) Get(name string) (Sha, bool) {
	sha, ok := t.byName[name]
	return sha, ok
}

// Names returns every known remote tag name, in no particular order.
func (t *RemoteTags) Names() []string {
	out := make([]string, 0, len(t.byName))
	for name := range t.byName {
		out = append(out, name)
	}
	return out
}

// Clear empties the snapshot.
func (t *RemoteTags) Clear() {
	t.byName = make(map[string]Sha)
}

// Replace discards the current snapshot and adopts m wholesale, as
// done when a fetch reports the remote's full tag set rather than one
// incremental change.
func (t *RemoteTags) Replace(m map[string]Sha) {
	t.byName = m
}
