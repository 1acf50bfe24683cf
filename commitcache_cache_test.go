package commitcache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vcsviewer/commitcache"
	"github.com/vcsviewer/commitcache/plumbing"
)

func seeds() []commitcache.CommitSeed {
	return []commitcache.CommitSeed{
		{Sha: "c3", Parents: []plumbing.Sha{"c2"}, Log: "third"},
		{Sha: "c2", Parents: []plumbing.Sha{"c1"}, Log: "second"},
		{Sha: "c1", Log: "first"},
	}
}

func TestSetupBuildsRowsWithWipAtRowZero(t *testing.T) {
	c := commitcache.New()
	c.Setup(seeds(), "", "", nil)

	assert.Equal(t, 4, c.Count())
	assert.Equal(t, 3, c.TotalCommits())
	assert.True(t, c.ByRow(0).Sha.IsZero())
	assert.Equal(t, plumbing.Sha("c3"), c.ByRow(1).Sha)
	assert.Equal(t, plumbing.Sha("c1"), c.ByRow(3).Sha)
}

func TestSetupIsIdempotentWhenRerunWithSameInput(t *testing.T) {
	c := commitcache.New()
	c.Setup(seeds(), "", "", nil)
	first := c.Count()

	c.Setup(seeds(), "", "", nil)
	assert.Equal(t, first, c.Count())
	assert.Equal(t, plumbing.Sha("c3"), c.ByRow(1).Sha)
}

func TestUpdateWipFailsBeforeSetup(t *testing.T) {
	c := commitcache.New()
	assert.False(t, c.UpdateWip("", "", nil))
}

func TestUpdateWipReusesLaneGeometry(t *testing.T) {
	c := commitcache.New()
	c.Setup(seeds(), "", "", nil)
	wipBefore := c.ByRow(0).Lanes

	diffIndex := ":100644 100644 " + sha(1) + " " + sha(2) + " M\tfile.go"
	ok := c.UpdateWip(diffIndex, "", nil)
	assert.True(t, ok)

	wipAfter := c.ByRow(0).Lanes
	assert.Equal(t, wipBefore, wipAfter)
}

func TestPendingLocalChangesReflectsWipFileState(t *testing.T) {
	c := commitcache.New()
	c.Setup(seeds(), "", "", nil)
	assert.False(t, c.PendingLocalChanges())

	diffIndex := ":100644 100644 " + sha(1) + " " + sha(2) + " M\tfile.go"
	c.UpdateWip(diffIndex, "", nil)
	assert.True(t, c.PendingLocalChanges())
}

func TestPendingLocalChangesIgnoresUntrackedOnlyFiles(t *testing.T) {
	c := commitcache.New()
	c.Setup(seeds(), "", "", plumbing.UntrackedFiles{"new.go"})
	assert.False(t, c.PendingLocalChanges())
}

func TestWipRowCarriesPlaceholderIdentity(t *testing.T) {
	c := commitcache.New()
	c.Setup(seeds(), "", "", nil)

	wip := c.ByRow(0)
	assert.Equal(t, "-", wip.Author)
	assert.Equal(t, "-", wip.Committer)
	assert.False(t, wip.CommittedAt.IsZero())
}

func TestWipLogReflectsLocalChanges(t *testing.T) {
	c := commitcache.New()
	c.Setup(seeds(), "", "", nil)
	assert.Equal(t, "No local changes", c.ByRow(0).Log)

	c.Setup(seeds(), "", "", plumbing.UntrackedFiles{"new.go"})
	assert.Equal(t, "No local changes", c.ByRow(0).Log)

	diffIndex := ":100644 100644 " + sha(1) + " " + sha(2) + " M\tfile.go"
	c.UpdateWip(diffIndex, "", nil)
	assert.Equal(t, "Local changes", c.ByRow(0).Log)
}

func TestInsertRevisionFileIsNoOpOnDuplicateKey(t *testing.T) {
	c := commitcache.New()
	rf1 := &plumbing.RevisionFiles{}
	rf1.Append("a.go", plumbing.StatusModified, 1)
	rf2 := &plumbing.RevisionFiles{}
	rf2.Append("a.go", plumbing.StatusModified, 1)
	rf3 := &plumbing.RevisionFiles{}
	rf3.Append("b.go", plumbing.StatusNew, 1)

	assert.True(t, c.InsertRevisionFile("p", "c", rf1))
	assert.False(t, c.InsertRevisionFile("p", "c", rf2))

	got, ok := c.RevisionFile("p", "c")
	assert.True(t, ok)
	assert.Same(t, rf1, got)
	assert.True(t, c.ContainsRevisionFile("p", "c"))

	assert.True(t, c.InsertRevisionFile("p", "c", rf3))
	got, ok = c.RevisionFile("p", "c")
	assert.True(t, ok)
	assert.Equal(t, rf3, got)
}

func TestByShaExactAndPositionOf(t *testing.T) {
	c := commitcache.New()
	c.Setup(seeds(), "", "", nil)

	info, ok := c.ByShaExact("c2")
	assert.True(t, ok)
	assert.Equal(t, "second", info.Log)

	row, ok := c.PositionOf("c1")
	assert.True(t, ok)
	assert.Equal(t, 3, row)
}

func TestSearchFindsLogSubstring(t *testing.T) {
	c := commitcache.New()
	c.Setup(seeds(), "", "", nil)

	row, ok := c.Search("second", 0, false)
	assert.True(t, ok)
	assert.Equal(t, 2, row)
}

func TestSearchReverseFindsPreviousMatch(t *testing.T) {
	c := commitcache.New()
	c.Setup(seeds(), "", "", nil)

	row, ok := c.Search("second", 3, true)
	assert.True(t, ok)
	assert.Equal(t, 2, row)
}

func TestUpdatedChannelReceivesNotificationOnSetup(t *testing.T) {
	c := commitcache.New()
	c.Setup(seeds(), "", "", nil)

	select {
	case <-c.Updated():
	default:
		t.Fatal("expected a notification after Setup")
	}
}

func TestIsWip(t *testing.T) {
	c := commitcache.New()
	assert.True(t, c.IsWip(plumbing.ZeroSha))
	assert.False(t, c.IsWip(plumbing.Sha("c1")))
}

func sha(n byte) string {
	s := make([]byte, 40)
	for i := range s {
		s[i] = '0' + n%10
	}
	return string(s)
}
