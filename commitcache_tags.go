package commitcache

import "github.com/vcsviewer/commitcache/plumbing"

// TagKind selects which tag table GetTags reads from.
type TagKind int

const (
	// TagKindLocal selects tags known from the reference index (real,
	// possibly-fetched tags).
	TagKindLocal TagKind = iota
	// TagKindRemote selects tags known only from a remote listing.
	TagKindRemote
)

// AddRemoteTag records name as pointing at sha on the remote.
func (c *Cache) AddRemoteTag(name string, sha plumbing.Sha) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tags.Set(name, sha)
	c.notify()
}

// UpdateTags replaces the whole remote-tags table with remoteMap, as
// done when a fetch reports the remote's full tag listing rather than
// one new tag.
func (c *Cache) UpdateTags(remoteMap map[string]plumbing.Sha) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tags.Replace(remoteMap)
	c.notify()
}

// RemoteTag resolves a remote tag name to its sha.
func (c *Cache) RemoteTag(name string) (plumbing.Sha, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tags.Get(name)
}

// RemoteTagNames returns every known remote tag name.
func (c *Cache) RemoteTagNames() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tags.Names()
}

// GetTags returns every known tag of the given kind: TagKindLocal
// reads the reference index, TagKindRemote synthesizes Refs from the
// remote-tags snapshot.
func (c *Cache) GetTags(kind TagKind) []plumbing.Ref {
	c.mu.Lock()
	defer c.mu.Unlock()
	if kind == TagKindRemote {
		names := c.tags.Names()
		out := make([]plumbing.Ref, 0, len(names))
		for _, name := range names {
			out = append(out, plumbing.Ref{Name: name, Type: plumbing.RefTag})
		}
		return out
	}
	return c.refs.Tags()
}
