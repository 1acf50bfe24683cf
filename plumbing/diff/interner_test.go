package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vcsviewer/commitcache/plumbing"
)

func TestInternerAppendAndFlush(t *testing.T) {
	in := NewNameInterner()
	loader := NewFileNamesLoader()
	rf := &plumbing.RevisionFiles{}

	loader.Bind(in, rf)
	in.Append("src/a.go", plumbing.StatusNew, 1, loader)
	in.Append("src/b.go", plumbing.StatusModified, 1, loader)
	in.Flush(loader)

	assert.Equal(t, []string{"src/a.go", "src/b.go"}, rf.Files)
	assert.Equal(t, []plumbing.StatusFlags{plumbing.StatusNew, plumbing.StatusModified}, rf.Statuses)
}

func TestInternerDedupesDirAndFileTables(t *testing.T) {
	in := NewNameInterner()
	loader := NewFileNamesLoader()
	rf := &plumbing.RevisionFiles{}

	loader.Bind(in, rf)
	in.Append("src/a.go", plumbing.StatusNew, 1, loader)
	in.Append("src/b.go", plumbing.StatusNew, 1, loader)
	in.Flush(loader)

	assert.Equal(t, []string{"src/"}, in.dirNames)
	assert.Equal(t, []string{"a.go", "b.go"}, in.fileNames)
}

func TestFlushSuppressesAlreadyPresentEntries(t *testing.T) {
	in := NewNameInterner()
	loader := NewFileNamesLoader()
	rf := &plumbing.RevisionFiles{Files: []string{"src/a.go"}, Statuses: []plumbing.StatusFlags{plumbing.StatusModified}, MergeParent: []int{1}}

	loader.Bind(in, rf)
	in.Append("src/a.go", plumbing.StatusNew, 2, loader)
	in.Flush(loader)

	assert.Equal(t, []string{"src/a.go"}, rf.Files)
	assert.Equal(t, []plumbing.StatusFlags{plumbing.StatusModified}, rf.Statuses)
}

func TestBindFlushesPreviousTargetBeforeRebinding(t *testing.T) {
	in := NewNameInterner()
	loader := NewFileNamesLoader()
	rf1 := &plumbing.RevisionFiles{}
	rf2 := &plumbing.RevisionFiles{}

	loader.Bind(in, rf1)
	in.Append("a.go", plumbing.StatusNew, 1, loader)
	loader.Bind(in, rf2)

	assert.Equal(t, []string{"a.go"}, rf1.Files)
	assert.Empty(t, rf2.Files)
}

func TestResetClearsTables(t *testing.T) {
	in := NewNameInterner()
	loader := NewFileNamesLoader()
	rf := &plumbing.RevisionFiles{}
	loader.Bind(in, rf)
	in.Append("a.go", plumbing.StatusNew, 1, loader)
	in.Flush(loader)

	in.Reset()
	assert.Empty(t, in.dirNames)
	assert.Empty(t, in.fileNames)
}
