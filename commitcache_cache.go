// Package commitcache is an in-memory commit graph cache for a
// graphical VCS history viewer: it turns a caller-supplied commit walk
// plus the raw diff text of the working tree into a rendered,
// queryable DAG with lane assignment for railway-style display. It
// never invokes git itself, computes a diff, or persists anything; a
// collaborator feeds it already-decoded commit metadata and
// pre-computed diff header text.
package commitcache

import (
	"sync"
	"time"

	"github.com/vcsviewer/commitcache/internal/trace"
	"github.com/vcsviewer/commitcache/plumbing"
	"github.com/vcsviewer/commitcache/plumbing/diff"
	"github.com/vcsviewer/commitcache/plumbing/lane"
	"github.com/vcsviewer/commitcache/storage/commitstore"
)

// CommitSeed is one commit's decoded metadata, as a caller (the git
// invocation layer) supplies it for Setup. Seeds must arrive in the
// same newest-first walk order the rendered rows will occupy.
type CommitSeed struct {
	Sha         plumbing.Sha
	Parents     []plumbing.Sha
	AuthorMark  rune
	Author      string
	CommittedAt time.Time
	Committer   string
	Log         string
}

// Cache is the facade every caller talks to. The zero value is not
// usable; build one with New. A single sync.Mutex guards the whole
// facade: exported methods lock and delegate to an unexported method
// of the same shape, and the unexported methods call each other
// directly rather than through their exported siblings — the usual Go
// substitute for a genuinely reentrant mutex, since public operations
// here do call each other (Setup synthesizes the WIP row the same way
// UpdateWip does).
type Cache struct {
	mu sync.Mutex

	opts     Options
	store    *commitstore.Store
	interner *diff.NameInterner
	parser   *diff.DiffParser
	lanes    *lane.Engine
	refs     *plumbing.References
	tags     *plumbing.RemoteTags
	subtrees map[string]*plumbing.Subtree
	revFiles map[plumbing.RevisionFilesKey]*plumbing.RevisionFiles

	wipLanes  plumbing.Lanes
	wipParent plumbing.Sha

	configured bool
	updated    chan struct{}
}

// New builds a Cache, merging opts over DefaultOptions.
func New(opts ...Option) *Cache {
	resolved := resolveOptions(opts...)
	trace.SetTarget(resolved.Trace)

	interner := diff.NewNameInterner()
	return &Cache{
		opts:     resolved,
		store:    commitstore.NewWithOptions(resolved.PrefixCacheSize, resolved.FoldCompact),
		interner: interner,
		parser:   diff.NewDiffParser(interner),
		lanes:    lane.NewEngine(),
		refs:     plumbing.NewReferences(),
		tags:     plumbing.NewRemoteTags(),
		subtrees: make(map[string]*plumbing.Subtree),
		revFiles: make(map[plumbing.RevisionFilesKey]*plumbing.RevisionFiles),
		updated:  make(chan struct{}, 1),
	}
}

// Setup replaces the cache's entire state: the commit walk, reference
// index, and tag/subtree tables are all cleared and rebuilt from
// scratch, and the WIP row is synthesized from the two diff passes and
// the untracked file list. Calling Setup again on an already-populated
// cache is the documented way to refresh it; it is always a full
// rebuild, never an in-place diff against the previous state.
func (c *Cache) Setup(commits []CommitSeed, diffIndex, diffIndexCached string, untracked plumbing.UntrackedFiles) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setup(commits, diffIndex, diffIndexCached, untracked)
}

func (c *Cache) setup(commits []CommitSeed, diffIndex, diffIndexCached string, untracked plumbing.UntrackedFiles) {
	trace.Setup.Printf("cache: setup, %d commits", len(commits))

	c.store.BeginConfigure()
	c.lanes.Reset()
	c.interner.Reset()
	c.refs.Clear()
	c.tags.Clear()
	c.subtrees = make(map[string]*plumbing.Subtree)
	c.revFiles = make(map[plumbing.RevisionFilesKey]*plumbing.RevisionFiles)

	var headParent plumbing.Sha
	if len(commits) > 0 {
		headParent = commits[0].Sha
	}
	c.wipParent = headParent
	c.wipLanes = c.lanes.Next(plumbing.ZeroSha, []plumbing.Sha{headParent}).Clone()

	rf := c.parser.FakeWorkDirRevFile(diffIndex, diffIndexCached, []string(untracked))
	c.revFiles[plumbing.RevisionFilesKey{Parent: plumbing.ZeroSha, Child: headParent}] = rf

	wipInfo := plumbing.NewCommitInfo(plumbing.ZeroSha, []plumbing.Sha{headParent})
	wipInfo.Lanes = c.wipLanes
	wipInfo.Author = wipIdentity
	wipInfo.Committer = wipIdentity
	wipInfo.CommittedAt = time.Now()
	wipInfo.Log = wipLog(rf, untracked)
	c.store.Insert(wipInfo)

	for _, seed := range commits {
		info := plumbing.NewCommitInfo(seed.Sha, seed.Parents)
		info.AuthorMark = seed.AuthorMark
		info.Author = seed.Author
		info.CommittedAt = seed.CommittedAt
		info.Committer = seed.Committer
		info.Log = seed.Log
		info.Lanes = c.lanes.Next(seed.Sha, seed.Parents)
		c.store.Insert(info)
	}

	c.store.EndConfigure()
	c.configured = true
	c.notify()
}

// UpdateWip re-synthesizes only the WIP row from a fresh pair of diff
// passes, reusing the lane geometry Setup already computed for it
// (the WIP's position in the graph never moves between updates, only
// its file-change content does). It returns false if the cache hasn't
// been through a successful Setup yet.
func (c *Cache) UpdateWip(diffIndex, diffIndexCached string, untracked plumbing.UntrackedFiles) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.updateWip(diffIndex, diffIndexCached, untracked)
}

func (c *Cache) updateWip(diffIndex, diffIndexCached string, untracked plumbing.UntrackedFiles) bool {
	if !c.configured {
		return false
	}
	trace.Setup.Print("cache: update wip")

	rf := c.parser.FakeWorkDirRevFile(diffIndex, diffIndexCached, []string(untracked))
	c.revFiles[plumbing.RevisionFilesKey{Parent: plumbing.ZeroSha, Child: c.wipParent}] = rf

	wipInfo := plumbing.NewCommitInfo(plumbing.ZeroSha, []plumbing.Sha{c.wipParent})
	wipInfo.Lanes = c.wipLanes.Clone()
	wipInfo.Author = wipIdentity
	wipInfo.Committer = wipIdentity
	wipInfo.CommittedAt = time.Now()
	wipInfo.Log = wipLog(rf, untracked)
	c.store.ReplaceWip(wipInfo)

	c.notify()
	return true
}

// wipIdentity is the placeholder author/committer the WIP row carries;
// it has no real commit author, so there's nothing truthful to put
// there.
const wipIdentity = "-"

// wipLog summarizes the WIP row's change set: when every entry in rf
// is one of the untracked files (or rf is empty) the tree reads as
// clean, so untracked files alone never count as local changes.
func wipLog(rf *plumbing.RevisionFiles, untracked plumbing.UntrackedFiles) string {
	if rf.Count() == len(untracked) {
		return "No local changes"
	}
	return "Local changes"
}

// InsertRevisionFile records rf against the (parent, child) key. It is
// a no-op, returning false, if an equal record is already stored under
// that key; a differing record replaces the stored one and returns
// true.
func (c *Cache) InsertRevisionFile(parent, child plumbing.Sha, rf *plumbing.RevisionFiles) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.insertRevisionFile(parent, child, rf)
}

func (c *Cache) insertRevisionFile(parent, child plumbing.Sha, rf *plumbing.RevisionFiles) bool {
	key := plumbing.RevisionFilesKey{Parent: parent, Child: child}
	if existing, exists := c.revFiles[key]; exists && existing.Equal(rf) {
		return false
	}
	c.revFiles[key] = rf
	return true
}

// ContainsRevisionFile reports whether a RevisionFiles record is
// already cached for the (parent, child) transition.
func (c *Cache) ContainsRevisionFile(parent, child plumbing.Sha) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.revFiles[plumbing.RevisionFilesKey{Parent: parent, Child: child}]
	return ok
}

// RevisionFile returns the cached record for the (parent, child)
// transition, if any.
func (c *Cache) RevisionFile(parent, child plumbing.Sha) (*plumbing.RevisionFiles, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rf, ok := c.revFiles[plumbing.RevisionFilesKey{Parent: parent, Child: child}]
	return rf, ok
}

// Count returns the number of rows, WIP row included.
func (c *Cache) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Len()
}

// TotalCommits returns the number of real commits, excluding the WIP
// row — the count a status bar reports rather than the row count a
// renderer iterates.
func (c *Cache) TotalCommits() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := c.store.Len()
	if n == 0 {
		return 0
	}
	return n - 1
}

// IsWip reports whether sha names the WIP pseudo-commit.
func (c *Cache) IsWip(sha plumbing.Sha) bool {
	return sha.IsZero()
}

// PendingLocalChanges reports whether the WIP row currently has any
// non-untracked file changes recorded against it. Untracked files
// alone don't count as pending changes.
func (c *Cache) PendingLocalChanges() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	rf, ok := c.revFiles[plumbing.RevisionFilesKey{Parent: plumbing.ZeroSha, Child: c.wipParent}]
	return ok && rf.NonUntrackedCount() > 0
}

// ByRow returns the commit occupying row, or nil if out of range.
func (c *Cache) ByRow(row int) *plumbing.CommitInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.ByRow(row)
}

// PositionOf returns the row sha occupies, if known.
func (c *Cache) PositionOf(sha plumbing.Sha) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.PositionOf(sha)
}

// ByShaExact resolves a full sha to its commit.
func (c *Cache) ByShaExact(sha plumbing.Sha) (*plumbing.CommitInfo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.ByShaExact(sha)
}

// ByShaPrefix resolves an abbreviated sha to its first row match.
func (c *Cache) ByShaPrefix(prefix string) (*plumbing.CommitInfo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.ByShaPrefix(prefix)
}

// Search looks for text starting just after fromRow, wrapping once
// around the whole table. With reverse set it finds the previous match
// (starting just before fromRow) instead of the next one.
func (c *Cache) Search(text string, fromRow int, reverse bool) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Search(text, fromRow, reverse)
}

// Updated returns the channel a caller should watch for cache
// refreshes. Tokens carry no payload and delivery is best-effort: a
// full channel silently drops the notification rather than blocking
// the facade, since the contract only promises at-least-one
// notification per change, not one-per-change delivery.
func (c *Cache) Updated() <-chan struct{} {
	return c.updated
}

func (c *Cache) notify() {
	select {
	case c.updated <- struct{}{}:
	default:
	}
}
