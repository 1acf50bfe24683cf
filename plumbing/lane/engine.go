// Package lane implements the streaming lane-assignment state machine
// that turns a sequence of (sha, parents) commit arrivals into the
// per-row Lanes vectors a railway-style history diagram renders.
//
// Engine is the sole authority over glyph choice; callers only ever
// read back the Lanes snapshot handed to them per commit. Commits must
// arrive in the same order the rows will be rendered in (newest
// first, a topological walk): the engine has no notion of commits it
// hasn't seen yet.
package lane

import (
	"github.com/vcsviewer/commitcache/internal/trace"
	"github.com/vcsviewer/commitcache/plumbing"
)

// activeLane is one column of the engine's live state: the sha it is
// currently awaiting (the next commit expected to land in this
// column) and, for a column opened by a merge, the column of the merge
// commit that opened it (-1 otherwise).
type activeLane struct {
	target plumbing.Sha
	source int
}

// Engine is the stateful, streaming lane-assignment machine. Columns
// are opened the first time an untracked commit is seen and closed
// the row a root (zero-parent) commit occupies them.
type Engine struct {
	lanes []activeLane
}

// NewEngine returns an empty engine, ready to receive the first
// (newest) commit of a walk.
func NewEngine() *Engine {
	return &Engine{}
}

// Reset clears all engine state, as done at the start of a fresh
// Cache.Setup.
func (e *Engine) Reset() {
	e.lanes = nil
}

// Next advances the engine by one commit and returns its lane
// snapshot. The transition runs in a fixed order:
//
//  1. find every column already awaiting sha
//  2. open a fresh column if none did (a new branch tip)
//  3. mark a fork when more than one column converges here
//  4. open one extra column per additional merge parent
//  5. mark a root commit as initial
//  6. snapshot every column's row glyph
//  7. advance the primary column onto its first parent, or close it
//  8. compact away any column that just converged into the primary
func (e *Engine) Next(sha plumbing.Sha, parents []plumbing.Sha) plumbing.Lanes {
	matches := e.columnsAwaiting(sha)
	isMerge := len(parents) > 1
	isRoot := len(parents) == 0

	var primary int
	var isNewBranch bool
	if len(matches) == 0 {
		isNewBranch = true
		e.lanes = append(e.lanes, activeLane{target: sha, source: -1})
		primary = len(e.lanes) - 1
	} else {
		primary = matches[0]
	}
	isFork := len(matches) > 1
	var converged []int
	if isFork {
		converged = matches[1:]
	}

	trace.Lane.Printf("lane: next sha=%s parents=%d newBranch=%v fork=%v merge=%v root=%v",
		sha, len(parents), isNewBranch, isFork, isMerge, isRoot)

	var mergeLanes []int
	if isMerge {
		mergeLanes = e.openMergeLanes(primary, parents[1:])
	}

	kinds := make(map[int]plumbing.LaneKind, len(matches)+len(mergeLanes)+1)
	switch {
	case isRoot:
		kinds[primary] = plumbing.LaneInitial
	case isFork:
		kinds[primary] = plumbing.LaneFork
	case isNewBranch:
		kinds[primary] = plumbing.LaneBranch
	default:
		kinds[primary] = plumbing.LaneActive
	}
	for _, i := range converged {
		kinds[i] = plumbing.LaneFork
	}
	for _, i := range mergeLanes {
		kinds[i] = plumbing.LaneMergeSource
	}

	snapshot := e.snapshot(kinds)

	e.advance(primary, parents, converged)

	return snapshot
}

// columnsAwaiting returns the indices of every column currently
// targeting sha, in ascending column order.
func (e *Engine) columnsAwaiting(sha plumbing.Sha) []int {
	var out []int
	for i, l := range e.lanes {
		if l.target == sha {
			out = append(out, i)
		}
	}
	return out
}

// openMergeLanes opens one column per extra parent (octopus merges
// open len(extraParents) columns beyond the mainline), returning the
// new columns' indices.
func (e *Engine) openMergeLanes(primary int, extraParents []plumbing.Sha) []int {
	indices := make([]int, 0, len(extraParents))
	for _, parent := range extraParents {
		e.lanes = append(e.lanes, activeLane{target: parent, source: primary})
		indices = append(indices, len(e.lanes)-1)
	}
	return indices
}

// snapshot renders every live column's row glyph: columns named in
// kinds get that glyph, everything else carries through as active.
func (e *Engine) snapshot(kinds map[int]plumbing.LaneKind) plumbing.Lanes {
	out := make(plumbing.Lanes, len(e.lanes))
	for i, l := range e.lanes {
		kind, ok := kinds[i]
		if !ok {
			kind = plumbing.LaneActive
		}
		source := -1
		if kind == plumbing.LaneMergeSource {
			source = l.source
		}
		out[i] = plumbing.Lane{Kind: kind, Source: source}
	}
	return out
}

// advance moves the primary column onto its commit's first parent (or
// closes it entirely at a root commit), and removes any columns that
// converged into the primary column this row (a fork whose extra
// branches rejoin here contributes no further columns downstream).
// Both removals are resolved in a single pass since they're computed
// against the same pre-mutation index space.
func (e *Engine) advance(primary int, parents []plumbing.Sha, converged []int) {
	var toClose []int
	if len(parents) == 0 {
		toClose = append(toClose, primary)
	} else {
		e.lanes[primary].target = parents[0]
		e.lanes[primary].source = -1
	}
	toClose = append(toClose, converged...)
	e.closeColumns(toClose)
}

// closeColumns removes the named columns (by their index at the time
// of the call) from the live set.
func (e *Engine) closeColumns(indices []int) {
	if len(indices) == 0 {
		return
	}
	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		drop[i] = true
	}
	kept := make([]activeLane, 0, len(e.lanes)-len(indices))
	for i, l := range e.lanes {
		if drop[i] {
			continue
		}
		kept = append(kept, l)
	}
	e.lanes = kept
}
