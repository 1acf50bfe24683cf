package plumbing

// StatusFlags is a bitmask describing the change state of one file
// entry within a RevisionFiles record.
type StatusFlags uint16

const (
	StatusNew StatusFlags = 1 << iota
	StatusDeleted
	StatusModified
	StatusConflict
	StatusUnknown
	StatusInIndex
	StatusPartiallyCached
)

// Has reports whether all bits of want are set in f.
func (f StatusFlags) Has(want StatusFlags) bool {
	return f&want == want
}

// RevisionFilesKey identifies one RevisionFiles record: the ordered
// pair (parent sha, child sha). The WIP entry is keyed
// (ZeroSha, firstParent).
type RevisionFilesKey struct {
	Parent Sha
	Child  Sha
}

// ExtendedStatus is a rename/copy record: the formatted display string
// plus its parsed similarity percentage, so callers can sort/filter by
// confidence without re-parsing the string.
type ExtendedStatus struct {
	Text              string
	SimilarityPercent int
}

// RevisionFiles is the parsed file-change set for one commit
// transition. Files, Statuses and MergeParent are parallel lists
// indexed identically; ExtStatus may be shorter than Files (it only
// covers the trailing rename/copy entries).
type RevisionFiles struct {
	Files        []string
	Statuses     []StatusFlags
	MergeParent  []int
	ExtStatus    []ExtendedStatus
	OnlyModified bool
}

// Count returns the number of file entries.
func (rf *RevisionFiles) Count() int {
	if rf == nil {
		return 0
	}
	return len(rf.Files)
}

// NonUntrackedCount returns the number of entries that are not
// untracked-file placeholders (StatusUnknown). A working tree holding
// only untracked files has a positive Count but a zero
// NonUntrackedCount.
func (rf *RevisionFiles) NonUntrackedCount() int {
	if rf == nil {
		return 0
	}
	n := 0
	for _, s := range rf.Statuses {
		if !s.Has(StatusUnknown) {
			n++
		}
	}
	return n
}

// Append adds one parallel entry across Files/Statuses/MergeParent.
func (rf *RevisionFiles) Append(file string, status StatusFlags, mergeParent int) {
	rf.Files = append(rf.Files, file)
	rf.Statuses = append(rf.Statuses, status)
	rf.MergeParent = append(rf.MergeParent, mergeParent)
}

// IndexOf returns the index of file within rf.Files, or -1.
func (rf *RevisionFiles) IndexOf(file string) int {
	for i, f := range rf.Files {
		if f == file {
			return i
		}
	}
	return -1
}

// Equal reports whether rf and other describe the same change set,
// used by Cache.InsertRevisionFile to de-duplicate inserts.
func (rf *RevisionFiles) Equal(other *RevisionFiles) bool {
	if rf == nil || other == nil {
		return rf == other
	}
	if rf.OnlyModified != other.OnlyModified {
		return false
	}
	if len(rf.Files) != len(other.Files) {
		return false
	}
	for i := range rf.Files {
		if rf.Files[i] != other.Files[i] || rf.Statuses[i] != other.Statuses[i] || rf.MergeParent[i] != other.MergeParent[i] {
			return false
		}
	}
	if len(rf.ExtStatus) != len(other.ExtStatus) {
		return false
	}
	for i := range rf.ExtStatus {
		if rf.ExtStatus[i] != other.ExtStatus[i] {
			return false
		}
	}
	return true
}
