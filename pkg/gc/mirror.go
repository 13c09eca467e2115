package gc

import (
	"context"
	"fmt"

	"github.com/git-dit/dit/internal/plumbing"
	"github.com/git-dit/dit/pkg/issue"
	"github.com/git-dit/dit/pkg/oid"
	"github.com/git-dit/dit/pkg/refclass"
	"github.com/git-dit/dit/pkg/remote"
)

// MirrorFlags configures the mirror planner (spec §4.G). Remote, if
// non-empty, restricts the plan to refs mirrored from that one remote.
type MirrorFlags struct {
	CloneHead    bool
	UpdateHead   bool
	CreateLeaves bool
	Remote       string
}

// MirrorPlan is the pure result of PlanMirror: the remote head to adopt
// (nil if none was selected) and the leaf commits not yet known locally.
type MirrorPlan struct {
	Head      *refclass.Ref
	NewLeaves []oid.Oid
}

// PlanMirror computes what a mirror operation would do, without writing
// anything. Head selection uses prioritization over the issue's remote
// heads (optionally restricted to one remote); leaf computation is
// L_remote \ L_known as defined in spec §4.G.
func PlanMirror(ctx context.Context, repo plumbing.Repository, iss issue.Issue, prio remote.Prioritization, flags MirrorFlags) (MirrorPlan, error) {
	remoteHeads, err := iss.RemoteRefs(ctx, refclass.Head)
	if err != nil {
		return MirrorPlan{}, fmt.Errorf("gc: plan-mirror: %w", err)
	}
	remoteHeads = filterByRemote(remoteHeads, flags.Remote)

	var plan MirrorPlan
	if selected, ok := prio.SelectRef(remoteHeads); ok {
		h := selected
		plan.Head = &h
	}

	remoteLeaves, err := iss.RemoteRefs(ctx, refclass.Leaf)
	if err != nil {
		return MirrorPlan{}, fmt.Errorf("gc: plan-mirror: %w", err)
	}
	remoteLeaves = filterByRemote(remoteLeaves, flags.Remote)

	lRemote := make([]oid.Oid, 0, len(remoteLeaves))
	seen := make(map[oid.Oid]bool)
	for _, r := range remoteLeaves {
		target, err := repo.ResolveRef(ctx, r.Name)
		if err != nil || seen[target] {
			continue
		}
		seen[target] = true
		lRemote = append(lRemote, target)
	}

	known, err := knownCommits(ctx, repo, iss, lRemote)
	if err != nil {
		return MirrorPlan{}, fmt.Errorf("gc: plan-mirror: %w", err)
	}

	for _, candidate := range lRemote {
		if !known[candidate] {
			plan.NewLeaves = append(plan.NewLeaves, candidate)
		}
	}

	return plan, nil
}

// knownCommits computes L_known: every commit reachable from the issue's
// currently visible local refs, plus the parents of each L_remote
// candidate (so a remote "leaf" that is secretly an interior node of
// another candidate's history is excluded from the new-leaves set).
func knownCommits(ctx context.Context, repo plumbing.Repository, iss issue.Issue, remoteCandidates []oid.Oid) (map[oid.Oid]bool, error) {
	localRefs, err := iss.LocalRefs(ctx, refclass.Any)
	if err != nil {
		return nil, err
	}

	seeds := []oid.Oid{iss.ID()}
	known := map[oid.Oid]bool{iss.ID(): true}
	for _, r := range localRefs {
		target, err := repo.ResolveRef(ctx, r.Name)
		if err != nil {
			continue
		}
		seeds = append(seeds, target)
		known[target] = true
	}
	for _, c := range remoteCandidates {
		commit, err := repo.FindCommit(ctx, c)
		if err != nil {
			continue
		}
		for _, p := range commit.Parents {
			seeds = append(seeds, p)
			known[p] = true
		}
	}

	walked, err := iss.TerminatedMessages(ctx, seeds)
	if err != nil {
		return nil, err
	}
	for _, id := range walked {
		known[id] = true
	}
	return known, nil
}

func filterByRemote(refs []refclass.Ref, remoteName string) []refclass.Ref {
	if remoteName == "" {
		return refs
	}
	out := make([]refclass.Ref, 0, len(refs))
	for _, r := range refs {
		if r.Remote == remoteName {
			out = append(out, r)
		}
	}
	return out
}

// ApplyMirror executes a MirrorPlan: creates or updates the local head
// ref per CloneHead/UpdateHead, and materializes new local leaf refs when
// CreateLeaves is set.
func ApplyMirror(ctx context.Context, repo plumbing.Repository, iss issue.Issue, plan MirrorPlan, flags MirrorFlags) error {
	if plan.Head != nil {
		target, err := repo.ResolveRef(ctx, plan.Head.Name)
		if err != nil {
			return fmt.Errorf("gc: apply-mirror: resolve %s: %w", plan.Head.Name, err)
		}
		_, localErr := repo.ResolveRef(ctx, refclass.HeadName(iss.ID()))
		hasLocalHead := localErr == nil
		switch {
		case !hasLocalHead && flags.CloneHead:
			if err := iss.UpdateHead(ctx, target, false); err != nil {
				return fmt.Errorf("gc: apply-mirror: clone head: %w", err)
			}
		case hasLocalHead && flags.UpdateHead:
			if err := iss.UpdateHead(ctx, target, true); err != nil {
				return fmt.Errorf("gc: apply-mirror: update head: %w", err)
			}
		}
	}

	if flags.CreateLeaves {
		for _, leaf := range plan.NewLeaves {
			if err := iss.AddLeaf(ctx, leaf); err != nil {
				return fmt.Errorf("gc: apply-mirror: add leaf %s: %w", leaf, err)
			}
		}
	}
	return nil
}
