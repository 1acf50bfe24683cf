package commitcache

import "github.com/vcsviewer/commitcache/plumbing"

// AddReference records ref as pointing at sha.
func (c *Cache) AddReference(sha plumbing.Sha, ref plumbing.Ref) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refs.Add(sha, ref)
	c.notify()
}

// RemoveReference drops the named ref from sha's entry.
func (c *Cache) RemoveReference(sha plumbing.Sha, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refs.Remove(sha, name)
	c.notify()
}

// ReloadCurrentBranch reports that the branch named name now points at
// sha, pruning it from wherever it previously pointed (if anywhere)
// before re-attaching it. This is how a caller reports a HEAD move
// without needing to track the branch's previous sha itself.
func (c *Cache) ReloadCurrentBranch(name string, sha plumbing.Sha) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refs.Move(name, sha, plumbing.RefBranch)
	c.notify()
}

// References returns the refs known to point at sha.
func (c *Cache) References(sha plumbing.Sha) []plumbing.Ref {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refs.At(sha)
}

// GetBranches returns every known local and remote branch ref.
func (c *Cache) GetBranches() []plumbing.Ref {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refs.Branches()
}

