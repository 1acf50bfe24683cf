package diff

import (
	"strings"

	"github.com/vcsviewer/commitcache/plumbing"
)

// NameInterner de-duplicates directory and file name strings that
// recur across diff output, returning stable integer indices. Both
// tables are append-only for the lifetime of a setup cycle; Reset
// clears them for the next one.
type NameInterner struct {
	dirNames  []string
	dirIndex  map[string]int
	fileNames []string
	fileIndex map[string]int
}

// NewNameInterner returns an empty interner.
func NewNameInterner() *NameInterner {
	return &NameInterner{
		dirIndex:  make(map[string]int),
		fileIndex: make(map[string]int),
	}
}

// Reset drops all interned names, as done at the start of a fresh
// Cache.Setup.
func (n *NameInterner) Reset() {
	n.dirNames = n.dirNames[:0]
	n.fileNames = n.fileNames[:0]
	n.dirIndex = make(map[string]int)
	n.fileIndex = make(map[string]int)
}

func (n *NameInterner) internDir(s string) int {
	if i, ok := n.dirIndex[s]; ok {
		return i
	}
	i := len(n.dirNames)
	n.dirNames = append(n.dirNames, s)
	n.dirIndex[s] = i
	return i
}

func (n *NameInterner) internFile(s string) int {
	if i, ok := n.fileIndex[s]; ok {
		return i
	}
	i := len(n.fileNames)
	n.fileNames = append(n.fileNames, s)
	n.fileIndex[s] = i
	return i
}

// pendingFile is one file entry waiting to be flushed into a
// RevisionFiles record: an interned (dir, name) pair plus the status
// metadata that must land in the parallel Statuses/MergeParent lists
// at the same final index as the constructed path in Files.
type pendingFile struct {
	dirIdx      int
	nameIdx     int
	status      plumbing.StatusFlags
	mergeParent int
}

// FileNamesLoader accumulates pending file entries for the
// RevisionFiles currently being populated. It is scratch state, bound
// to one target at a time via Bind.
type FileNamesLoader struct {
	pending []pendingFile
	target  *plumbing.RevisionFiles
}

// NewFileNamesLoader returns an unbound loader.
func NewFileNamesLoader() *FileNamesLoader {
	return &FileNamesLoader{}
}

// Bind points the loader at target, flushing whatever was pending for
// a previous target first. Binding to the already-bound target is a
// no-op (no premature flush).
func (l *FileNamesLoader) Bind(interner *NameInterner, target *plumbing.RevisionFiles) {
	if l.target != nil && l.target != target {
		interner.flushInto(l)
	}
	l.target = target
}

// Append splits path at its last '/', interns both halves, and queues
// a file entry with the given status and merge-parent number against
// the loader's currently bound target. It does not touch the target
// until Flush is called.
func (n *NameInterner) Append(path string, status plumbing.StatusFlags, mergeParent int, l *FileNamesLoader) {
	dir, name := splitPath(path)
	l.pending = append(l.pending, pendingFile{
		dirIdx:      n.internDir(dir),
		nameIdx:     n.internFile(name),
		status:      status,
		mergeParent: mergeParent,
	})
}

// Flush drains the loader's pending entries into its bound target,
// skipping any whose constructed path is already present there (diff
// output frequently repeats a path across the cached/working
// comparison). After Flush the loader holds no pending entries and no
// target.
func (n *NameInterner) Flush(l *FileNamesLoader) {
	n.flushInto(l)
}

func (n *NameInterner) flushInto(l *FileNamesLoader) {
	if l.target != nil {
		for _, p := range l.pending {
			full := n.dirNames[p.dirIdx] + n.fileNames[p.nameIdx]
			if l.target.IndexOf(full) >= 0 {
				continue
			}
			l.target.Append(full, p.status, p.mergeParent)
		}
	}
	l.pending = l.pending[:0]
	l.target = nil
}

// splitPath splits s at its last '/': "a/b/c.go" -> ("a/b/", "c.go");
// "c.go" -> ("", "c.go"). The separator stays on the directory half so
// that concatenation reproduces the original path.
func splitPath(s string) (dir, name string) {
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		return s[:i+1], s[i+1:]
	}
	return "", s
}
