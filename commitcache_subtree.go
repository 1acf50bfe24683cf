package commitcache

import "github.com/vcsviewer/commitcache/plumbing"

// AddSubtreeCommit records sha as touching path, creating path's
// Subtree on first use.
func (c *Cache) AddSubtreeCommit(path string, sha plumbing.Sha) {
	c.mu.Lock()
	defer c.mu.Unlock()
	sub, ok := c.subtrees[path]
	if !ok {
		sub = plumbing.NewSubtree(path)
		c.subtrees[path] = sub
	}
	sub.Add(sha)
}

// Subtree returns the Subtree recorded for path, if any.
func (c *Cache) Subtree(path string) (*plumbing.Subtree, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	sub, ok := c.subtrees[path]
	return sub, ok
}

// ClearSubtree drops the recorded Subtree for path.
func (c *Cache) ClearSubtree(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.subtrees, path)
}
