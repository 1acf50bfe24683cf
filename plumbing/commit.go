package plumbing

import (
	"time"

	"github.com/emirpasic/gods/sets/linkedhashset"
)

// CommitInfo is a single row of the commit graph: the commit's own
// metadata, its parents, its lane snapshot, and a non-owning index of
// the shas of commits that name it as a parent.
//
// A CommitInfo is created by ingest and destroyed only at cache
// teardown or re-setup; the owning CommitStore is the only thing that
// holds it by strong reference. ChildRefs stores shas, not pointers,
// precisely so that child bookkeeping never extends a commit's
// lifetime beyond the store that owns it.
type CommitInfo struct {
	Sha         Sha
	Parents     []Sha
	AuthorMark  rune
	Author      string
	CommittedAt time.Time
	Committer   string
	Log         string
	Lanes       Lanes

	childRefs *linkedhashset.Set
}

// NewCommitInfo builds a CommitInfo with empty lanes and no known
// children; the lane engine and CommitStore populate the rest.
func NewCommitInfo(sha Sha, parents []Sha) *CommitInfo {
	return &CommitInfo{
		Sha:       sha,
		Parents:   append([]Sha(nil), parents...),
		childRefs: linkedhashset.New(),
	}
}

// NumParents returns len(Parents); zero means a root commit.
func (c *CommitInfo) NumParents() int {
	if c == nil {
		return 0
	}
	return len(c.Parents)
}

// FirstParent returns the mainline parent, or ZeroSha if c is a root.
func (c *CommitInfo) FirstParent() Sha {
	if c == nil || len(c.Parents) == 0 {
		return ZeroSha
	}
	return c.Parents[0]
}

// AddChildRef records that child names c as one of its parents. It is
// idempotent: recording the same child twice has no additional effect.
func (c *CommitInfo) AddChildRef(child Sha) {
	if c == nil {
		return
	}
	c.childRefs.Add(child)
}

// ChildRefs returns the shas of commits known to name c as a parent,
// in the order they were recorded.
func (c *CommitInfo) ChildRefs() []Sha {
	if c == nil {
		return nil
	}
	values := c.childRefs.Values()
	out := make([]Sha, 0, len(values))
	for _, v := range values {
		out = append(out, v.(Sha))
	}
	return out
}

// IsFork reports whether c has more than one known child.
func (c *CommitInfo) IsFork() bool {
	return c != nil && c.childRefs.Size() > 1
}

// IsMerge reports whether c has more than one parent.
func (c *CommitInfo) IsMerge() bool {
	return c.NumParents() > 1
}

// Contains reports whether text (already expected to be
// case-normalized by the caller) is a substring of any of c's
// searchable fields: sha, author, committer, log subject.
func (c *CommitInfo) Contains(foldedText string, fold func(string) string) bool {
	if c == nil {
		return false
	}
	fields := [...]string{string(c.Sha), c.Author, c.Committer, c.Log}
	for _, f := range fields {
		if containsFold(f, foldedText, fold) {
			return true
		}
	}
	return false
}

func containsFold(haystack, foldedNeedle string, fold func(string) string) bool {
	return indexFold(fold(haystack), foldedNeedle) >= 0
}

// indexFold is a tiny substring search kept local so that Contains
// never depends on a case-folding choice baked into plumbing itself;
// the fold function is supplied by the caller (commitstore.Store),
// which is the component that owns the fold-mode contract.
func indexFold(haystack, needle string) int {
	n, h := len(needle), len(haystack)
	if n == 0 {
		return 0
	}
	if n > h {
		return -1
	}
	for i := 0; i+n <= h; i++ {
		if haystack[i:i+n] == needle {
			return i
		}
	}
	return -1
}
