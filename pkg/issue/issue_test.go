package issue_test

import (
	"context"
	"testing"

	"github.com/git-dit/dit/internal/plumbing"
	"github.com/git-dit/dit/internal/plumbingtest"
	"github.com/git-dit/dit/pkg/issue"
	"github.com/git-dit/dit/pkg/oid"
	"github.com/git-dit/dit/pkg/refclass"
)

func testSignature() plumbing.Signature {
	return plumbing.Signature{Name: "Test User", Email: "test@example.com"}
}

func TestCreateIssue_RootCommitAndHead(t *testing.T) {
	ctx := context.Background()
	repo := plumbingtest.New(t)

	author := testSignature()
	iss, err := issue.CreateIssue(ctx, repo.Git, author, author, "Bug: widget explodes\n\nSteps to reproduce.\n")
	if err != nil {
		t.Fatalf("CreateIssue: %v", err)
	}

	head, err := repo.Git.ResolveRef(ctx, refclass.HeadName(iss.ID()))
	if err != nil {
		t.Fatalf("resolve head: %v", err)
	}
	if head != iss.ID() {
		t.Fatalf("head %s does not equal issue id %s", head, iss.ID())
	}

	msg, err := iss.InitialMessage(ctx)
	if err != nil {
		t.Fatalf("InitialMessage: %v", err)
	}
	if !msg.IsRoot() {
		t.Fatalf("expected root commit")
	}
}

func TestAddMessage_SupersedesParentLeaf(t *testing.T) {
	ctx := context.Background()
	repo := plumbingtest.New(t)
	author := testSignature()

	iss, err := issue.CreateIssue(ctx, repo.Git, author, author, "Root\n")
	if err != nil {
		t.Fatalf("CreateIssue: %v", err)
	}
	tree, err := repo.Git.EmptyTree(ctx)
	if err != nil {
		t.Fatalf("EmptyTree: %v", err)
	}

	first, err := iss.AddMessage(ctx, author, author, "First reply\n", tree, nil)
	if err != nil {
		t.Fatalf("AddMessage 1: %v", err)
	}
	if _, err := repo.Git.ResolveRef(ctx, refclass.LeafName(iss.ID(), first)); err != nil {
		t.Fatalf("expected leaf ref for first reply: %v", err)
	}

	second, err := iss.AddMessage(ctx, author, author, "Second reply\n", tree, []oid.Oid{first})
	if err != nil {
		t.Fatalf("AddMessage 2: %v", err)
	}

	if _, err := repo.Git.ResolveRef(ctx, refclass.LeafName(iss.ID(), first)); err == nil {
		t.Fatal("expected superseded leaf ref for first reply to be gone")
	}
	if _, err := repo.Git.ResolveRef(ctx, refclass.LeafName(iss.ID(), second)); err != nil {
		t.Fatalf("expected leaf ref for second reply: %v", err)
	}
}

func TestMessages_StopsAtRoot(t *testing.T) {
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

	msgs, err := iss.Messages(ctx)
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages (root + reply), got %d", len(msgs))
	}
	if msgs[0].ID != reply {
		t.Fatalf("expected newest-first order, got %#v", msgs)
	}
}

func TestUpdateHead_RequiresForceToOverwrite(t *testing.T) {
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

	if err := iss.UpdateHead(ctx, reply, false); err == nil {
		t.Fatal("expected AlreadyExists without force")
	}
	if err := iss.UpdateHead(ctx, reply, true); err != nil {
		t.Fatalf("UpdateHead with force: %v", err)
	}
}
