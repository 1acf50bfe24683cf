// Package commitstore holds the in-memory commit graph the cache
// facade builds during setup and serves reads against afterward: an
// ordered row table plus the sha indexes needed to resolve references,
// prefixes, and substring search against it.
package commitstore

import (
	"fmt"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/golang/groupcache/lru"
	"golang.org/x/text/cases"

	"github.com/vcsviewer/commitcache/internal/trace"
	"github.com/vcsviewer/commitcache/plumbing"
)

// prefixMemoSize bounds the LRU used to memoize ByShaPrefix lookups.
// Prefix resolution is a linear scan over every row; real history
// views re-resolve the same handful of short shas (visible rows,
// hover targets) over and over, so a small cache pays for itself
// without needing to track invalidation beyond a flat Clear.
const prefixMemoSize = 256

// Store is the owning index of a commit graph: byRow is the
// definitive render order (row 0 is always the WIP pseudo-commit,
// keyed by plumbing.ZeroSha), bySha resolves exact shas, and
// pendingChildren holds child back-references discovered before their
// parent has been inserted (the normal case: history arrives newest
// first, so a commit's parent is seen strictly after the commit
// itself).
type Store struct {
	byRow           []plumbing.Sha
	bySha           *linkedhashmap.Map
	pendingChildren map[plumbing.Sha][]plumbing.Sha
	prefixMemo      *lru.Cache
	fold            cases.Caser
	configuring     bool
}

// New returns an empty Store, ready for BeginConfigure. It folds case
// the same way DefaultOptions.FoldCompact does and sizes its prefix
// memo at prefixMemoSize; callers that need the cache's configured
// values should use NewWithOptions instead.
func New() *Store {
	return NewWithOptions(prefixMemoSize, true)
}

// NewWithOptions returns an empty Store sized and folded per the
// cache's resolved Options.
func NewWithOptions(prefixCacheSize int, foldCompact bool) *Store {
	caseMode := cases.Fold()
	if foldCompact {
		caseMode = cases.Fold(cases.Compact)
	}
	return &Store{
		bySha:           linkedhashmap.New(),
		pendingChildren: make(map[plumbing.Sha][]plumbing.Sha),
		prefixMemo:      lru.New(prefixCacheSize),
		fold:            caseMode,
	}
}

// BeginConfigure clears the store and opens it for Insert calls.
// Setup calls this before replaying the commit walk.
func (s *Store) BeginConfigure() {
	s.byRow = nil
	s.bySha.Clear()
	s.pendingChildren = make(map[plumbing.Sha][]plumbing.Sha)
	s.prefixMemo.Clear()
	s.configuring = true
	trace.Store.Print("store: begin configure")
}

// EndConfigure closes the store to further Insert calls.
func (s *Store) EndConfigure() {
	s.configuring = false
	trace.Store.Printf("store: end configure, %d rows", len(s.byRow))
}

// Insert appends info as the next row and wires its back-references.
// It panics if called outside a BeginConfigure/EndConfigure bracket,
// in every build: Insert is a setup-time-only operation.
func (s *Store) Insert(info *plumbing.CommitInfo) {
	if !s.configuring {
		panic(fmt.Sprintf("commitstore: Insert(%s) called outside BeginConfigure/EndConfigure", info.Sha))
	}

	s.byRow = append(s.byRow, info.Sha)
	s.bySha.Put(info.Sha, info)

	if pending, ok := s.pendingChildren[info.Sha]; ok {
		for _, child := range pending {
			info.AddChildRef(child)
		}
		delete(s.pendingChildren, info.Sha)
	}

	for _, parent := range info.Parents {
		if parentInfo, ok := s.lookup(parent); ok {
			parentInfo.AddChildRef(info.Sha)
			continue
		}
		s.pendingChildren[parent] = append(s.pendingChildren[parent], info.Sha)
	}
}

// ReplaceWip swaps the row-0 WIP commit for info outside of a
// configure bracket. It is the one mutation the facade performs
// post-setup: WIP file state changes on every repaint, but the WIP
// commit's row, parent, and lane geometry never do. info.Sha must be
// plumbing.ZeroSha. Calling this before Insert has ever placed a row 0
// is a no-op: update_wip is only meaningful after a setup.
func (s *Store) ReplaceWip(info *plumbing.CommitInfo) {
	if len(s.byRow) == 0 || s.byRow[0] != plumbing.ZeroSha {
		return
	}
	s.bySha.Put(plumbing.ZeroSha, info)
}

// Clear empties the store outside of a configure bracket, as done on
// teardown.
func (s *Store) Clear() {
	s.byRow = nil
	s.bySha.Clear()
	s.pendingChildren = make(map[plumbing.Sha][]plumbing.Sha)
	s.prefixMemo.Clear()
}

// Len returns the number of rows, WIP row included.
func (s *Store) Len() int {
	return len(s.byRow)
}

// ByRow returns the commit at the given row, or nil if out of range.
func (s *Store) ByRow(row int) *plumbing.CommitInfo {
	if row < 0 || row >= len(s.byRow) {
		return nil
	}
	info, _ := s.lookup(s.byRow[row])
	return info
}

// PositionOf returns the row index of sha, or (-1, false) if unknown.
func (s *Store) PositionOf(sha plumbing.Sha) (int, bool) {
	for i, rowSha := range s.byRow {
		if rowSha == sha {
			return i, true
		}
	}
	return -1, false
}

// ByShaExact resolves a full sha to its commit.
func (s *Store) ByShaExact(sha plumbing.Sha) (*plumbing.CommitInfo, bool) {
	return s.lookup(sha)
}

// ByShaPrefix resolves an abbreviated sha to the first row (in render
// order) whose sha carries that prefix. Ambiguous prefixes resolve to
// their first match, matching the behavior of the row-ordered display
// a caller is abbreviating from. Results are memoized until the next
// Clear/BeginConfigure.
func (s *Store) ByShaPrefix(prefix string) (*plumbing.CommitInfo, bool) {
	if cached, ok := s.prefixMemo.Get(prefix); ok {
		sha := cached.(plumbing.Sha)
		return s.lookup(sha)
	}

	for _, rowSha := range s.byRow {
		if rowSha.HasPrefix(prefix) {
			s.prefixMemo.Add(prefix, rowSha)
			return s.lookup(rowSha)
		}
	}
	return nil, false
}

// Search scans rows for text (matched case-insensitively against
// sha/author/committer/log) starting just after fromRow and wrapping
// around the full table exactly once. With reverse set it scans
// backwards (find-previous) instead, starting just before fromRow. It
// returns the first matching row in the scan direction, or (-1, false)
// if nothing matches anywhere.
func (s *Store) Search(text string, fromRow int, reverse bool) (int, bool) {
	n := len(s.byRow)
	if n == 0 {
		return -1, false
	}
	folded := s.fold.String(text)
	for step := 1; step <= n; step++ {
		var row int
		if reverse {
			row = ((fromRow-step)%n + n) % n
		} else {
			row = (fromRow + step) % n
		}
		info, ok := s.lookup(s.byRow[row])
		if !ok {
			continue
		}
		if info.Contains(folded, s.fold.String) {
			return row, true
		}
	}
	return -1, false
}

func (s *Store) lookup(sha plumbing.Sha) (*plumbing.CommitInfo, bool) {
	v, ok := s.bySha.Get(sha)
	if !ok {
		return nil, false
	}
	return v.(*plumbing.CommitInfo), true
}
