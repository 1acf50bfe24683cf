package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vcsviewer/commitcache/plumbing"
)

func TestFakeWorkDirRevFileNoLocalChanges(t *testing.T) {
	p := newParser()
	rf := p.FakeWorkDirRevFile("", "", []string{"a.txt", "b.txt"})

	assert.Equal(t, 2, rf.Count())
	assert.ElementsMatch(t, []string{"a.txt", "b.txt"}, rf.Files)
	for _, s := range rf.Statuses {
		assert.Equal(t, plumbing.StatusUnknown, s)
	}
}

func TestFakeWorkDirRevFilePropagatesConflict(t *testing.T) {
	p := newParser()
	diffIndex := ":100644 100644 " + sha(1) + " " + sha(2) + " M\tfile.go"
	diffIndexCached := ":100644 100644 " + sha(1) + " " + sha(2) + " U\tfile.go"

	rf := p.FakeWorkDirRevFile(diffIndex, diffIndexCached, nil)

	idx := rf.IndexOf("file.go")
	assert.True(t, rf.Statuses[idx].Has(plumbing.StatusConflict))
}

func TestFakeWorkDirRevFileMarksPartiallyCached(t *testing.T) {
	p := newParser()
	// Working-tree pass: destBlob is all-zero, the normal case for an
	// unstaged modification, so the file lands as MODIFIED without
	// IN_INDEX.
	diffIndex := ":100644 100644 " + sha(1) + " " + zeroSha() + " M\tfile.go"
	// Cached pass: the same file is also present (already staged),
	// resolved (not a conflict).
	diffIndexCached := ":100644 100644 " + sha(1) + " " + sha(2) + " M\tfile.go"

	rf := p.FakeWorkDirRevFile(diffIndex, diffIndexCached, nil)
	idx := rf.IndexOf("file.go")
	assert.True(t, rf.Statuses[idx].Has(plumbing.StatusPartiallyCached))
}

func TestFakeWorkDirRevFileSkipsFilesNotInBoth(t *testing.T) {
	p := newParser()
	diffIndex := ":100644 100644 " + sha(1) + " " + zeroSha() + " M\tfile.go"
	diffIndexCached := ":100644 100644 " + sha(1) + " " + sha(2) + " M\tother.go"

	rf := p.FakeWorkDirRevFile(diffIndex, diffIndexCached, nil)
	idx := rf.IndexOf("file.go")
	assert.False(t, rf.Statuses[idx].Has(plumbing.StatusPartiallyCached))
}
