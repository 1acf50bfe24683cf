package commitstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vcsviewer/commitcache/plumbing"
)

func insertChain(s *Store, chain [][2]string) {
	s.BeginConfigure()
	for _, c := range chain {
		var parents []plumbing.Sha
		if c[1] != "" {
			parents = []plumbing.Sha{plumbing.Sha(c[1])}
		}
		s.Insert(plumbing.NewCommitInfo(plumbing.Sha(c[0]), parents))
	}
	s.EndConfigure()
}

func TestInsertOutsideConfigurePanics(t *testing.T) {
	s := New()
	assert.Panics(t, func() {
		s.Insert(plumbing.NewCommitInfo(plumbing.Sha("c1"), nil))
	})
}

func TestByRowIsInsertionOrder(t *testing.T) {
	s := New()
	insertChain(s, [][2]string{{"wip", ""}, {"c2", ""}, {"c1", ""}})

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, plumbing.Sha("wip"), s.ByRow(0).Sha)
	assert.Equal(t, plumbing.Sha("c2"), s.ByRow(1).Sha)
	assert.Equal(t, plumbing.Sha("c1"), s.ByRow(2).Sha)
	assert.Nil(t, s.ByRow(3))
}

func TestInsertWiresChildRefAgainstLaterParent(t *testing.T) {
	s := New()
	// c2 arrives before its parent c1, the normal newest-first order.
	insertChain(s, [][2]string{{"c2", "c1"}, {"c1", ""}})

	parent, ok := s.ByShaExact(plumbing.Sha("c1"))
	assert.True(t, ok)
	assert.Equal(t, []plumbing.Sha{"c2"}, parent.ChildRefs())
}

func TestPositionOfResolvesRow(t *testing.T) {
	s := New()
	insertChain(s, [][2]string{{"wip", ""}, {"c2", ""}, {"c1", ""}})

	row, ok := s.PositionOf(plumbing.Sha("c2"))
	assert.True(t, ok)
	assert.Equal(t, 1, row)

	_, ok = s.PositionOf(plumbing.Sha("missing"))
	assert.False(t, ok)
}

func TestByShaPrefixResolvesFirstMatchInRowOrder(t *testing.T) {
	s := New()
	insertChain(s, [][2]string{{"abc111", ""}, {"abc222", ""}})

	info, ok := s.ByShaPrefix("abc")
	assert.True(t, ok)
	assert.Equal(t, plumbing.Sha("abc111"), info.Sha)

	// Memoized path returns the same answer.
	info, ok = s.ByShaPrefix("abc")
	assert.True(t, ok)
	assert.Equal(t, plumbing.Sha("abc111"), info.Sha)

	_, ok = s.ByShaPrefix("zzz")
	assert.False(t, ok)
}

func TestClearResetsPrefixMemo(t *testing.T) {
	s := New()
	insertChain(s, [][2]string{{"abc111", ""}})
	_, _ = s.ByShaPrefix("abc")

	s.Clear()
	assert.Equal(t, 0, s.Len())
	_, ok := s.ByShaPrefix("abc")
	assert.False(t, ok)
}

func TestSearchWrapsAroundFromRow(t *testing.T) {
	s := New()
	s.BeginConfigure()
	info := plumbing.NewCommitInfo(plumbing.Sha("c1"), nil)
	info.Log = "fix login bug"
	s.Insert(info)
	info2 := plumbing.NewCommitInfo(plumbing.Sha("c2"), nil)
	info2.Log = "add feature"
	s.Insert(info2)
	info3 := plumbing.NewCommitInfo(plumbing.Sha("c3"), nil)
	info3.Log = "another login fix"
	s.Insert(info3)
	s.EndConfigure()

	// Searching from row 2 (the last "login" match) should wrap back
	// to row 0 rather than stopping because nothing follows row 2.
	row, ok := s.Search("login", 2, false)
	assert.True(t, ok)
	assert.Equal(t, 0, row)
}

func TestSearchReverseWrapsAroundFromRow(t *testing.T) {
	s := New()
	s.BeginConfigure()
	info := plumbing.NewCommitInfo(plumbing.Sha("c1"), nil)
	info.Log = "fix login bug"
	s.Insert(info)
	info2 := plumbing.NewCommitInfo(plumbing.Sha("c2"), nil)
	info2.Log = "add feature"
	s.Insert(info2)
	info3 := plumbing.NewCommitInfo(plumbing.Sha("c3"), nil)
	info3.Log = "another login fix"
	s.Insert(info3)
	s.EndConfigure()

	// Searching backwards from row 0 should wrap to row 2, the nearest
	// "login" match going the other direction.
	row, ok := s.Search("login", 0, true)
	assert.True(t, ok)
	assert.Equal(t, 2, row)
}

func TestSearchReturnsNotFoundWhenNothingMatches(t *testing.T) {
	s := New()
	insertChain(s, [][2]string{{"c1", ""}})

	_, ok := s.Search("nope", 0, false)
	assert.False(t, ok)
}
