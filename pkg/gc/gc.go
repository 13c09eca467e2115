// Package gc implements component G of the dit core: the collectable-refs
// planner and the mirror planner.
package gc

import (
	"context"
	"fmt"

	"github.com/git-dit/dit/internal/plumbing"
	"github.com/git-dit/dit/pkg/issue"
	"github.com/git-dit/dit/pkg/oid"
	"github.com/git-dit/dit/pkg/refclass"
)

// HeadPolicy controls whether a local head ref may ever be collected.
type HeadPolicy int

const (
	// Never collects local head refs under any circumstance.
	Never HeadPolicy = iota
	// BackedByRemoteHead allows collecting a local head only when a
	// remote head exists pointing at the same commit.
	BackedByRemoteHead
)

// Policy configures the collectable-refs planner (spec §4.G).
type Policy struct {
	ConsiderRemoteRefs bool
	CollectHeads       HeadPolicy
}

// Plan computes the deduplicated list of refs eligible for collection: a
// ref is collectable iff it is a leaf ref whose commit is an ancestor of
// some head (no longer a true leaf), or — under BackedByRemoteHead — a
// local head ref backed by a remote head at the same commit.
func Plan(ctx context.Context, repo plumbing.Repository, iss issue.Issue, policy Policy) ([]refclass.Ref, error) {
	heads, err := iss.Heads(ctx)
	if err != nil {
		return nil, fmt.Errorf("gc: plan: %w", err)
	}
	headOids := make([]oid.Oid, 0, len(heads))
	for _, h := range heads {
		headOids = append(headOids, refTarget(ctx, repo, h))
	}

	leaves, err := iss.LocalRefs(ctx, refclass.Leaf)
	if err != nil {
		return nil, fmt.Errorf("gc: plan: %w", err)
	}
	if policy.ConsiderRemoteRefs {
		remoteLeaves, err := iss.RemoteRefs(ctx, refclass.Leaf)
		if err != nil {
			return nil, fmt.Errorf("gc: plan: %w", err)
		}
		leaves = append(leaves, remoteLeaves...)
	}

	var collectable []refclass.Ref
	for _, leaf := range leaves {
		leafOid := refTarget(ctx, repo, leaf)
		for _, h := range headOids {
			if h == leafOid {
				continue // the leaf is itself a head; not an ancestor of itself
			}
			ok, err := repo.IsAncestor(ctx, leafOid, h)
			if err != nil {
				return nil, fmt.Errorf("gc: plan: is-ancestor %s: %w", leaf.Name, err)
			}
			if ok {
				collectable = append(collectable, leaf)
				break
			}
		}
	}

	if policy.CollectHeads == BackedByRemoteHead {
		localHeads, err := iss.LocalRefs(ctx, refclass.Head)
		if err != nil {
			return nil, fmt.Errorf("gc: plan: %w", err)
		}
		remoteHeads, err := iss.RemoteRefs(ctx, refclass.Head)
		if err != nil {
			return nil, fmt.Errorf("gc: plan: %w", err)
		}
		for _, lh := range localHeads {
			lhOid := refTarget(ctx, repo, lh)
			for _, rh := range remoteHeads {
				if refTarget(ctx, repo, rh) == lhOid {
					collectable = append(collectable, lh)
					break
				}
			}
		}
	}

	return dedupRefs(collectable), nil
}

func refTarget(ctx context.Context, repo plumbing.Repository, r refclass.Ref) oid.Oid {
	target, err := repo.ResolveRef(ctx, r.Name)
	if err != nil {
		return oid.Oid{}
	}
	return target
}

func dedupRefs(refs []refclass.Ref) []refclass.Ref {
	seen := make(map[string]bool, len(refs))
	out := make([]refclass.Ref, 0, len(refs))
	for _, r := range refs {
		if seen[r.Name] {
			continue
		}
		seen[r.Name] = true
		out = append(out, r)
	}
	return out
}

// DeleteResult records the outcome of deleting a single planned ref.
type DeleteResult struct {
	Ref refclass.Ref
	Err error
}

// Collect deletes every ref in plan, best-effort: a failure deleting one
// ref never aborts the remainder (spec §4.G). Each outcome (success or
// failure) is reported through results, in plan order.
func Collect(ctx context.Context, repo plumbing.Repository, plan []refclass.Ref) []DeleteResult {
	results := make([]DeleteResult, 0, len(plan))
	for _, r := range plan {
		err := repo.DeleteRef(ctx, r.Name, oid.Oid{})
		results = append(results, DeleteResult{Ref: r, Err: err})
	}
	return results
}
