// Package graph implements component F of the dit core: first-parent
// iteration, the issue messages iterator, and the tree graph layout
// algorithm used to render a discussion's shape.
package graph

import (
	"context"

	"github.com/git-dit/dit/internal/plumbing"
	"github.com/git-dit/dit/pkg/oid"
)

// StopFunc is a caller-supplied predicate passed to FirstParent; returning
// true after a commit is visited ends the walk without visiting that
// commit's parent.
type StopFunc func(plumbing.Commit) bool

// FirstParentIter is a lazy sequence of commits produced by repeatedly
// taking parents[0], starting at start. It is finite: it terminates when
// a commit has no parents or when stop (if non-nil) returns true.
type FirstParentIter struct {
	ctx  context.Context
	repo plumbing.Repository
	stop StopFunc
	next oid.Oid
	done bool
}

// NewFirstParentIter creates an iterator starting at start.
func NewFirstParentIter(ctx context.Context, repo plumbing.Repository, start oid.Oid, stop StopFunc) *FirstParentIter {
	return &FirstParentIter{ctx: ctx, repo: repo, stop: stop, next: start}
}

// Next returns the next commit in the chain, or ok == false once the
// iterator is exhausted.
func (it *FirstParentIter) Next() (plumbing.Commit, bool, error) {
	if it.done {
		return plumbing.Commit{}, false, nil
	}
	c, err := it.repo.FindCommit(it.ctx, it.next)
	if err != nil {
		return plumbing.Commit{}, false, err
	}
	if it.stop != nil && it.stop(c) {
		it.done = true
		return c, true, nil
	}
	parent, ok := c.FirstParent()
	if !ok {
		it.done = true
		return c, true, nil
	}
	it.next = parent
	return c, true, nil
}

// FirstParentChain drains a FirstParentIter into a slice, used by
// pkg/issue's MessagesFrom (spec §4.F).
func FirstParentChain(ctx context.Context, repo plumbing.Repository, start oid.Oid, stop StopFunc) ([]plumbing.Commit, error) {
	it := NewFirstParentIter(ctx, repo, start, stop)
	var out []plumbing.Commit
	for {
		c, ok, err := it.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, c)
	}
}

// StopAt returns a StopFunc that halts a FirstParentIter right after it
// visits the commit with the given id.
func StopAt(id oid.Oid) StopFunc {
	return func(c plumbing.Commit) bool { return c.ID == id }
}
