package graph

import "github.com/git-dit/dit/pkg/oid"

// Glyph is the shape drawn in one cell of a tree graph line.
type Glyph int

const (
	Empty Glyph = iota
	Passing
	Branch
	Merge
	Node
)

// Line is one row of the tree graph layout, paired with the commit it
// depicts.
type Line struct {
	Cells  []Glyph
	Commit oid.Oid
}

// track is a slot the layout algorithm is waiting to see a particular oid
// occupy, or an empty slot available for reuse.
type track struct {
	expect oid.Oid
	empty  bool
}

// Layout implements the tree graph layout algorithm of spec §4.F: it
// transforms a topologically-ordered (descendants-first) commit id
// sequence, fed one commit at a time to Step together with its parents,
// into a sequence of graph lines depicting active branches, merges, and
// passing tracks.
//
// The parents given to Step must be in the same order the object store
// recorded them.
type Layout struct {
	tracks []track
}

// NewLayout creates an empty layout with no active tracks.
func NewLayout() *Layout {
	return &Layout{}
}

// Step emits the graph line for the next commit id, given its parents
// (ordered, first-parent first), and advances the internal track state.
func (l *Layout) Step(id oid.Oid, parents []oid.Oid) Line {
	hits := l.findHits(id)
	if len(hits) == 0 {
		l.tracks = append(l.tracks, track{expect: id})
		hits = []int{len(l.tracks) - 1}
	}

	cells := make([]Glyph, len(l.tracks))
	leftmost := hits[0]
	for idx := range l.tracks {
		switch {
		case idx == leftmost:
			cells[idx] = Node
		case containsInt(hits, idx):
			cells[idx] = Merge
		case l.tracks[idx].empty:
			cells[idx] = Empty
		default:
			cells[idx] = Passing
		}
	}

	branched := l.advance(leftmost, hits, parents)

	if extra := len(l.tracks) - len(cells); extra > 0 {
		cells = append(cells, make([]Glyph, extra)...)
	}
	for _, idx := range branched {
		cells[idx] = Branch
	}

	return Line{Cells: cells, Commit: id}
}

// findHits returns the indices of every track currently expecting id.
func (l *Layout) findHits(id oid.Oid) []int {
	var hits []int
	for idx, t := range l.tracks {
		if !t.empty && t.expect == id {
			hits = append(hits, idx)
		}
	}
	return hits
}

// advance replaces the leftmost hit's expectation with c's first parent,
// frees the remaining hit slots, and allocates (or reuses empty) slots
// for every additional parent, appended rightmost — the tie-break rule
// spec §4.F states explicitly. It returns the indices of tracks allocated
// this call, one per additional parent, so Step can mark their column
// Branch in the merge commit's own row rather than leaving it Empty.
func (l *Layout) advance(leftmost int, hits []int, parents []oid.Oid) []int {
	if len(parents) == 0 {
		l.tracks[leftmost].empty = true
		l.tracks[leftmost].expect = oid.Oid{}
	} else {
		l.tracks[leftmost].expect = parents[0]
		l.tracks[leftmost].empty = false
	}

	for _, idx := range hits[1:] {
		l.tracks[idx].empty = true
		l.tracks[idx].expect = oid.Oid{}
	}

	skip := 1
	if len(parents) < skip {
		skip = len(parents)
	}
	var branched []int
	for _, p := range parents[skip:] {
		branched = append(branched, l.allocate(p))
	}
	return branched
}

// allocate places oid p into the first empty slot, or appends a new slot
// if none is free, and returns the index it used.
func (l *Layout) allocate(p oid.Oid) int {
	for idx := range l.tracks {
		if l.tracks[idx].empty {
			l.tracks[idx] = track{expect: p}
			return idx
		}
	}
	l.tracks = append(l.tracks, track{expect: p})
	return len(l.tracks) - 1
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// ReverseMarks flips left/right across every line's cells in place, so a
// graph rendered for one iteration direction (topological) reads
// symmetrically when the caller instead wants chronological order (spec
// §4.F).
func ReverseMarks(lines []Line) {
	for _, ln := range lines {
		for i, j := 0, len(ln.Cells)-1; i < j; i, j = i+1, j-1 {
			ln.Cells[i], ln.Cells[j] = ln.Cells[j], ln.Cells[i]
		}
	}
}
