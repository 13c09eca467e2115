package graph_test

import (
	"testing"

	"github.com/git-dit/dit/pkg/graph"
	"github.com/git-dit/dit/pkg/oid"
)

func id(hex string) oid.Oid {
	full := hex
	for len(full) < 40 {
		full += "0"
	}
	return oid.MustParse(full)
}

func TestLayout_LinearChain(t *testing.T) {
	a, b, c := id("a"), id("b"), id("c")
	l := graph.NewLayout()

	lineA := l.Step(a, []oid.Oid{b})
	if lineA.Cells[0] != graph.Node {
		t.Fatalf("expected Node at commit a, got %v", lineA.Cells)
	}
	lineB := l.Step(b, []oid.Oid{c})
	if len(lineB.Cells) != 1 || lineB.Cells[0] != graph.Node {
		t.Fatalf("expected single Node track at commit b, got %v", lineB.Cells)
	}
	lineC := l.Step(c, nil)
	if len(lineC.Cells) != 1 || lineC.Cells[0] != graph.Node {
		t.Fatalf("expected single Node track at commit c (root), got %v", lineC.Cells)
	}
}

func TestLayout_Merge(t *testing.T) {
	// merge has two parents: left (continues this track) and right (a
	// second branch that gets a track of its own).
	merge, left, right := id("1"), id("2"), id("3")
	l := graph.NewLayout()

	l.Step(merge, []oid.Oid{left, right})
	// A second track should now exist expecting `right`.
	lineRight := l.Step(right, nil)
	if len(lineRight.Cells) != 2 {
		t.Fatalf("expected 2 tracks after merge allocation, got %d: %v", len(lineRight.Cells), lineRight.Cells)
	}
}

func TestLayout_Branch(t *testing.T) {
	// merge's non-first parent allocates a brand new track. That
	// allocation happens in the merge's own row, so the new column must
	// read Branch there, not Passing or Empty — distinguishing "a track
	// was just forked off here" from "an existing track passes through".
	merge, left, right := id("1"), id("2"), id("3")
	l := graph.NewLayout()

	lineMerge := l.Step(merge, []oid.Oid{left, right})
	if len(lineMerge.Cells) != 2 {
		t.Fatalf("expected 2 tracks in the merge's own row, got %d: %v", len(lineMerge.Cells), lineMerge.Cells)
	}
	if lineMerge.Cells[0] != graph.Node {
		t.Fatalf("expected Node at the merge's own track, got %v", lineMerge.Cells)
	}
	if lineMerge.Cells[1] != graph.Branch {
		t.Fatalf("expected Branch at the newly allocated track, got %v", lineMerge.Cells)
	}

	// Once `right` is reached, that track is an ordinary Node like any
	// other, not Branch again.
	lineRight := l.Step(right, nil)
	if lineRight.Cells[1] != graph.Node {
		t.Fatalf("expected Node once the branched commit is reached, got %v", lineRight.Cells)
	}
}

func TestLayout_PassingAndNode(t *testing.T) {
	// Two independent tracks proceeding in parallel should both show
	// Node/Passing glyphs without colliding.
	a, aParent := id("a1"), id("a2")
	b, bParent := id("b1"), id("b2")
	l := graph.NewLayout()

	l.Step(a, []oid.Oid{aParent})
	lineB := l.Step(b, []oid.Oid{bParent})
	// b is unrelated to the still-open `a` track, so that track must
	// show Passing while b's own slot shows Node.
	foundPassing, foundNode := false, false
	for _, cell := range lineB.Cells {
		if cell == graph.Passing {
			foundPassing = true
		}
		if cell == graph.Node {
			foundNode = true
		}
	}
	if !foundPassing || !foundNode {
		t.Fatalf("expected both Passing and Node cells, got %v", lineB.Cells)
	}
}
