package graph

import (
	"context"

	"github.com/git-dit/dit/internal/plumbing"
	"github.com/git-dit/dit/pkg/oid"
)

// MessagesWalk produces the issue messages iterator of spec §4.F: a
// revwalk seeded from heads (all heads and leaves currently visible for
// an issue), with hide pushed as hide-points so the walk never descends
// past an issue's first-parent root. Order is topological,
// descendants-first — the same order "git rev-list" produces.
func MessagesWalk(ctx context.Context, repo plumbing.Repository, heads, hide []oid.Oid) ([]plumbing.Commit, error) {
	ids, err := repo.RevList(ctx, plumbing.RevListOptions{Heads: heads, Hide: hide})
	if err != nil {
		return nil, err
	}
	return resolveAll(ctx, repo, ids)
}

func resolveAll(ctx context.Context, repo plumbing.Repository, ids []oid.Oid) ([]plumbing.Commit, error) {
	out := make([]plumbing.Commit, 0, len(ids))
	for _, id := range ids {
		c, err := repo.FindCommit(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
