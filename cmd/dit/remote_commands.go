package main

import (
	"context"
	"fmt"

	"github.com/git-dit/dit/internal/display"
	"github.com/git-dit/dit/pkg/gc"
	"github.com/git-dit/dit/pkg/issue"
	"github.com/git-dit/dit/pkg/oid"
	"github.com/git-dit/dit/pkg/refclass"
	"github.com/git-dit/dit/pkg/remote"
)

// ditRefspec builds the refspec mirroring every dit ref under a remote's
// own namespace, e.g. "+refs/dit/*:refs/remotes/origin/dit/*" — the
// credential/transport mechanics of the fetch/push themselves are the
// spec's "out of scope" external collaborator; dit only constructs the
// refspec and delegates to "git fetch"/"git push".
func ditRefspec(remoteName string) string {
	return fmt.Sprintf("+refs/dit/*:refs/remotes/%s/dit/*", remoteName)
}

func (a *app) fetch(ctx context.Context, args []string) error {
	remoteName := "origin"
	if len(args) > 0 {
		remoteName = args[0]
	}
	if _, err := a.git.Run(ctx, "fetch", remoteName, ditRefspec(remoteName)); err != nil {
		return err
	}
	if !a.flags.Quiet {
		display.PrintSuccess(fmt.Sprintf("fetched dit refs from %s", remoteName))
	}
	return nil
}

func (a *app) push(ctx context.Context, args []string) error {
	remoteName := "origin"
	if len(args) > 0 {
		remoteName = args[0]
	}
	if _, err := a.git.Run(ctx, "push", remoteName, "refs/dit/*:refs/dit/*"); err != nil {
		return err
	}
	if !a.flags.Quiet {
		display.PrintSuccess(fmt.Sprintf("pushed dit refs to %s", remoteName))
	}
	return nil
}

// gc runs the GC planner across every known issue and deletes (or, with
// --dry-run, prints) the refs it marks collectable, per
// original_source/src/main.rs:227-432.
func (a *app) gc(ctx context.Context, args []string) error {
	dryRun := false
	considerRemote := false
	for _, arg := range args {
		switch arg {
		case "--dry-run":
			dryRun = true
		case "--consider-remote-refs":
			considerRemote = true
		}
	}

	ids, err := a.allIssueIDs(ctx)
	if err != nil {
		return err
	}

	policy := gc.Policy{ConsiderRemoteRefs: considerRemote, CollectHeads: gc.Never}
	for _, id := range ids {
		iss := issue.New(a.git, id)
		plan, err := gc.Plan(ctx, a.git, iss, policy)
		if err != nil {
			return fmt.Errorf("gc: issue %s: %w", id, err)
		}
		if len(plan) == 0 {
			continue
		}
		if dryRun {
			for _, r := range plan {
				fmt.Println("would delete", r.Name)
			}
			continue
		}
		for _, res := range gc.Collect(ctx, a.git, plan) {
			if res.Err != nil && !a.flags.Quiet {
				display.PrintWarning("gc", fmt.Sprintf("%s: %v", res.Ref.Name, res.Err))
			}
		}
	}
	return nil
}

// mirror runs the mirror planner for one issue against a remote,
// optionally applying it, with a progress tracker over the new leaves.
func (a *app) mirror(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: dit mirror <issue> [remote] [--dry-run]")
	}
	iss, err := a.resolveIssue(args[0])
	if err != nil {
		return err
	}
	remoteName := "origin"
	dryRun := false
	for _, arg := range args[1:] {
		if arg == "--dry-run" {
			dryRun = true
			continue
		}
		remoteName = arg
	}

	priorityList, err := a.cfg.RemotePriority(ctx)
	if err != nil || len(priorityList) == 0 {
		priorityList = []string{remoteName}
	}
	prio := remote.New(priorityList)

	flags := gc.MirrorFlags{CloneHead: true, UpdateHead: true, CreateLeaves: true, Remote: remoteName}
	plan, err := gc.PlanMirror(ctx, a.git, iss, prio, flags)
	if err != nil {
		return err
	}

	if dryRun {
		if plan.Head != nil {
			fmt.Println("would clone head from", plan.Head.Name)
		}
		for _, l := range plan.NewLeaves {
			fmt.Println("would create leaf", l)
		}
		return nil
	}

	tracker := display.NewProgressTracker(len(plan.NewLeaves), "mirroring "+iss.ID().String(), a.flags.Quiet)
	if err := gc.ApplyMirror(ctx, a.git, iss, plan, flags); err != nil {
		tracker.Fail(err)
		return err
	}
	for range plan.NewLeaves {
		tracker.Increment("")
	}
	tracker.Complete()
	return nil
}

// allIssueIDs enumerates every locally known issue id, from local dit head
// refs.
func (a *app) allIssueIDs(ctx context.Context) ([]oid.Oid, error) {
	refs, err := a.git.ForEachRef(ctx, "refs/dit/")
	if err != nil {
		return nil, err
	}
	var ids []oid.Oid
	seen := map[string]bool{}
	for _, r := range refs {
		ref, ok := refclass.Of(r.Name)
		if !ok || ref.Kind != refclass.Head {
			continue
		}
		key := ref.Issue.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		ids = append(ids, ref.Issue)
	}
	return ids, nil
}
