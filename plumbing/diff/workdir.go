package diff

import "github.com/vcsviewer/commitcache/plumbing"

// FakeWorkDirRevFile synthesizes the WIP's RevisionFiles from the two
// raw diffs the git invocation layer supplies for the working tree:
// diffIndex (working tree vs HEAD) and diffIndexCached (index vs
// HEAD), plus the caller-supplied list of untracked paths.
func (p *DiffParser) FakeWorkDirRevFile(diffIndex, diffIndexCached string, untracked []string) *plumbing.RevisionFiles {
	rf := &plumbing.RevisionFiles{OnlyModified: false}
	p.Parse(diffIndex, false, rf)

	for _, path := range untracked {
		rf.Append(path, plumbing.StatusUnknown, 1)
	}

	cachedRf := &plumbing.RevisionFiles{}
	p.Parse(diffIndexCached, true, cachedRf)

	for i, file := range rf.Files {
		j := cachedRf.IndexOf(file)
		if j < 0 {
			continue
		}
		switch {
		case cachedRf.Statuses[j].Has(plumbing.StatusConflict):
			rf.Statuses[i] |= plumbing.StatusConflict
		case rf.Statuses[i].Has(plumbing.StatusModified) && !rf.Statuses[i].Has(plumbing.StatusInIndex):
			rf.Statuses[i] |= plumbing.StatusPartiallyCached
		}
	}

	rf.OnlyModified = false
	return rf
}
