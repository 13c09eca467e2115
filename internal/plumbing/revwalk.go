package plumbing

import (
	"context"

	"github.com/git-dit/dit/pkg/oid"
)

// RevListOptions configures a revwalk. Heads are the starting points;
// Hide are commits (and everything reachable from them) excluded from the
// result — the revwalk's "hide-points" used by the issue messages iterator
// (spec §4.F) to stop descending past an issue's initial commit.
type RevListOptions struct {
	Heads           []oid.Oid
	Hide            []oid.Oid
	FirstParentOnly bool
}

// RevList walks commit history from Heads, in reverse-chronological
// topological order (newest first), excluding anything reachable from
// Hide, on top of github.com/git-dit/git-plumbing's own RevList ("git
// rev-list <heads> ^<hide>..."). With FirstParentOnly set it never
// follows a commit's second-or-later parent, giving the linear history
// component F's first-parent iterator needs.
func (g *Git) RevList(ctx context.Context, opts RevListOptions) ([]oid.Oid, error) {
	heads := make([]string, len(opts.Heads))
	for i, h := range opts.Heads {
		heads[i] = h.String()
	}
	hide := make([]string, len(opts.Hide))
	for i, h := range opts.Hide {
		hide[i] = h.String()
	}

	lines, err := g.Git.RevList(ctx, heads, hide, opts.FirstParentOnly)
	if err != nil {
		return nil, err
	}
	ids := make([]oid.Oid, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		id, err := oid.Parse(line)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// MergeBase returns the best common ancestor of a and b, used to test
// first-parent chain containment (spec §3 invariant 1: an issue's messages
// must all contain the issue's initial commit as a first-parent ancestor).
func (g *Git) MergeBase(ctx context.Context, a, b oid.Oid) (oid.Oid, error) {
	out, err := g.Git.MergeBase(ctx, a.String(), b.String())
	if err != nil {
		return oid.Oid{}, ErrRefNotFound
	}
	return oid.Parse(out)
}

// IsAncestor reports whether ancestor is an ancestor of (or equal to)
// descendant, on top of github.com/git-dit/git-plumbing's own IsAncestor
// ("git merge-base --is-ancestor"), which distinguishes exit code 1 ("no")
// from other exec errors itself.
func (g *Git) IsAncestor(ctx context.Context, ancestor, descendant oid.Oid) (bool, error) {
	return g.Git.IsAncestor(ctx, ancestor.String(), descendant.String())
}
