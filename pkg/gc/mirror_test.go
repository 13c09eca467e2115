package gc_test

import (
	"context"
	"testing"

	"github.com/git-dit/dit/internal/plumbingtest"
	"github.com/git-dit/dit/pkg/gc"
	"github.com/git-dit/dit/pkg/issue"
	"github.com/git-dit/dit/pkg/refclass"
	"github.com/git-dit/dit/pkg/remote"
)

func TestPlanMirror_SelectsPreferredHeadAndNewLeaves(t *testing.T) {
	ctx := context.Background()
	repo := plumbingtest.New(t)
	author := testSignature()

	iss, err := issue.CreateIssue(ctx, repo.Git, author, author, "Root\n")
	if err != nil {
		t.Fatalf("CreateIssue: %v", err)
	}

	// A commit known only from a remote fetch: not reachable from any
	// local ref, simulating history that exists remotely but has not yet
	// been mirrored locally.
	remoteOnly := repo.Commit(ctx, "Remote-only reply\n", iss.ID())

	repo.SetRef(ctx, refclass.RemoteHeadName("origin", iss.ID()), remoteOnly)
	repo.SetRef(ctx, refclass.RemoteHeadName("fork", iss.ID()), remoteOnly)
	repo.SetRef(ctx, refclass.RemoteLeafName("origin", iss.ID(), remoteOnly), remoteOnly)

	prio := remote.New([]string{"origin"})
	plan, err := gc.PlanMirror(ctx, repo.Git, iss, prio, gc.MirrorFlags{CloneHead: true, CreateLeaves: true})
	if err != nil {
		t.Fatalf("PlanMirror: %v", err)
	}
	if plan.Head == nil || plan.Head.Remote != "origin" {
		t.Fatalf("expected origin head selected, got %#v", plan.Head)
	}
	found := false
	for _, l := range plan.NewLeaves {
		if l == remoteOnly {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected %s to be a new leaf candidate, got %v", remoteOnly, plan.NewLeaves)
	}
}

func TestPlanMirror_FiltersAlreadyKnownLeaf(t *testing.T) {
	ctx := context.Background()
	repo := plumbingtest.New(t)
	author := testSignature()

	iss, err := issue.CreateIssue(ctx, repo.Git, author, author, "Root\n")
	if err != nil {
		t.Fatalf("CreateIssue: %v", err)
	}
	tree, _ := repo.Git.EmptyTree(ctx)
	reply, err := iss.AddMessage(ctx, author, author, "Reply\n", tree, nil)
	if err != nil {
		t.Fatalf("AddMessage: %v", err)
	}
	// Remote happens to report the same commit we already know about
	// locally (via the local leaf ref AddMessage created).
	repo.SetRef(ctx, refclass.RemoteLeafName("origin", iss.ID(), reply), reply)

	prio := remote.New([]string{"origin"})
	plan, err := gc.PlanMirror(ctx, repo.Git, iss, prio, gc.MirrorFlags{CreateLeaves: true})
	if err != nil {
		t.Fatalf("PlanMirror: %v", err)
	}
	for _, l := range plan.NewLeaves {
		if l == reply {
			t.Fatalf("already-known commit must not be proposed as a new leaf, got %v", plan.NewLeaves)
		}
	}
}

func TestApplyMirror_ClonesHeadAndCreatesLeaves(t *testing.T) {
	ctx := context.Background()
	repo := plumbingtest.New(t)
	author := testSignature()

	iss, err := issue.CreateIssue(ctx, repo.Git, author, author, "Root\n")
	if err != nil {
		t.Fatalf("CreateIssue: %v", err)
	}
	remoteOnly := repo.Commit(ctx, "Remote-only reply\n", iss.ID())
	repo.SetRef(ctx, refclass.RemoteHeadName("origin", iss.ID()), remoteOnly)
	repo.SetRef(ctx, refclass.RemoteLeafName("origin", iss.ID(), remoteOnly), remoteOnly)
	// CreateIssue wrote a local head; drop it so there is a head to clone.
	if err := repo.Git.DeleteRef(ctx, refclass.HeadName(iss.ID()), iss.ID()); err != nil {
		t.Fatalf("DeleteRef: %v", err)
	}

	prio := remote.New([]string{"origin"})
	flags := gc.MirrorFlags{CloneHead: true, CreateLeaves: true}
	plan, err := gc.PlanMirror(ctx, repo.Git, iss, prio, flags)
	if err != nil {
		t.Fatalf("PlanMirror: %v", err)
	}
	if err := gc.ApplyMirror(ctx, repo.Git, iss, plan, flags); err != nil {
		t.Fatalf("ApplyMirror: %v", err)
	}

	head, err := repo.Git.ResolveRef(ctx, refclass.HeadName(iss.ID()))
	if err != nil || head != remoteOnly {
		t.Fatalf("expected local head to be cloned to %s, got %s (err=%v)", remoteOnly, head, err)
	}
	if _, err := repo.Git.ResolveRef(ctx, refclass.LeafName(iss.ID(), remoteOnly)); err != nil {
		t.Fatalf("expected local leaf ref created for %s: %v", remoteOnly, err)
	}
}
