// Package diff decodes the raw textual diff-header output supplied by
// the (external) git invocation layer into structured RevisionFiles
// records. The parser never computes a diff itself; it only decodes
// lines already produced by that external collaborator.
package diff

import (
	"strconv"
	"strings"

	"github.com/vcsviewer/commitcache/internal/assert"
	"github.com/vcsviewer/commitcache/internal/trace"
	"github.com/vcsviewer/commitcache/plumbing"
)

// fastPathTabOffset is the column where the fast single-parent entry
// layout places its tab separator; an artifact of the upstream tool's
// fixed-width mode/sha fields. Brittle by design — see the doc comment
// on DiffParser.Parse for why this is never generalized.
const fastPathTabOffset = 98

// extendedStatusOffset is the column where the rename/copy suffix
// (type\torig\tdest) begins.
const extendedStatusOffset = 97

// DiffParser decodes raw diff header text into RevisionFiles records.
// It is pure with respect to the commit store: it only reads and
// writes the interner, the bound loader, and the output record.
type DiffParser struct {
	interner *NameInterner
	loader   *FileNamesLoader
}

// NewDiffParser returns a parser sharing the given interner (normally
// the one owned by the Cache, reset once per setup cycle).
func NewDiffParser(interner *NameInterner) *DiffParser {
	return &DiffParser{
		interner: interner,
		loader:   NewFileNamesLoader(),
	}
}

// Parse decodes buf (newline-separated diff header lines) into target.
// cached indicates buf came from a `--cached` (index-vs-HEAD) pass
// rather than a working-tree-vs-HEAD pass; it changes how the
// fast-path entry's cached bit and rebinding are resolved (see the
// inline notes below — this is the cache's resolution of the format's
// one genuinely ambiguous corner, recorded in DESIGN.md).
//
// The fast-path recognizes a literal tab at character offset 98 of
// each file-change line. This is load-bearing but brittle, an
// artifact of the upstream tool's fixed-width mode/sha fields; it is
// deliberately not generalized to variable-width fields.
func (p *DiffParser) Parse(buf string, cached bool, target *plumbing.RevisionFiles) {
	p.loader.Bind(p.interner, target)
	defer p.interner.Flush(p.loader)

	parNum := 1
	for _, line := range strings.Split(buf, "\n") {
		if line == "" {
			continue
		}
		if line[0] != ':' {
			parNum++
			continue
		}
		switch {
		case strings.HasPrefix(line, "::"):
			p.parseCombinedMerge(line, parNum, target)
		case len(line) > fastPathTabOffset && line[fastPathTabOffset] == '\t':
			p.parseFastPath(line, parNum, cached, target)
		default:
			p.parseExtendedStatus(line, parNum, target)
		}
	}
}

func (p *DiffParser) parseCombinedMerge(line string, parNum int, target *plumbing.RevisionFiles) {
	fields := strings.Split(line, "\t")
	file := fields[len(fields)-1]
	trace.Diff.Printf("diff: combined merge entry %q", file)
	p.interner.Append(file, plumbing.StatusModified, parNum, p.loader)
	_ = target
}

func (p *DiffParser) parseFastPath(line string, parNum int, outerCached bool, target *plumbing.RevisionFiles) {
	meta := strings.Fields(line[:fastPathTabOffset])
	if len(meta) < 5 {
		assert.Check(false, "diff: fast-path entry has fewer than 5 meta fields: "+line)
		return
	}
	destBlob := meta[3]
	flag := meta[4][0]

	isCached := !strings.HasPrefix(destBlob, "000000")
	if flag == 'D' {
		isCached = !isCached
	}

	// When the outer call is itself parsing a --cached pass and the
	// entry isn't an unresolved conflict, the cached bit computed
	// above is redundant (the whole record is already "in index");
	// suppress re-deriving it from the blob-id heuristic and just
	// mark the entry IN_INDEX directly. The loader stays bound to the
	// same target throughout a single Parse call, so there is no
	// separate "target" to rebind here regardless.
	if outerCached && flag != 'U' {
		isCached = true
	}

	file := line[fastPathTabOffset+1:]
	status := statusFromFlag(flag, isCached)
	trace.Diff.Printf("diff: fast-path entry %q flag=%c cached=%v", file, flag, isCached)
	p.interner.Append(file, status, parNum, p.loader)
	_ = target
}

func statusFromFlag(flag byte, cached bool) plumbing.StatusFlags {
	var status plumbing.StatusFlags
	switch flag {
	case 'A':
		status = plumbing.StatusNew
	case 'D':
		status = plumbing.StatusDeleted
	case 'U':
		status = plumbing.StatusConflict
	default:
		status = plumbing.StatusModified
	}
	if cached {
		status |= plumbing.StatusInIndex
	}
	return status
}

func (p *DiffParser) parseExtendedStatus(line string, parNum int, target *plumbing.RevisionFiles) {
	if len(line) <= extendedStatusOffset {
		return
	}
	fields := strings.Split(line[extendedStatusOffset:], "\t")
	if len(fields) != 3 {
		return // malformed: silently discarded, per the error taxonomy.
	}
	kind := fields[0]
	orig := fields[1]
	dest := fields[2]
	if len(kind) == 0 {
		return
	}
	letter := kind[0]
	pct, _ := strconv.Atoi(kind[1:])

	target.ExtStatus = append(target.ExtStatus, plumbing.ExtendedStatus{
		Text:              orig + " --> " + dest + " (" + strconv.Itoa(pct) + "%)",
		SimilarityPercent: pct,
	})
	target.OnlyModified = false

	trace.Diff.Printf("diff: extended status %c %s -> %s (%d%%)", letter, orig, dest, pct)

	p.interner.Append(dest, plumbing.StatusNew, parNum, p.loader)
	if letter == 'R' {
		p.interner.Append(orig, plumbing.StatusDeleted, parNum, p.loader)
	}
}
