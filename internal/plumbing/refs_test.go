package plumbing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/git-dit/dit/internal/plumbing"
	"github.com/git-dit/dit/internal/plumbingtest"
	"github.com/git-dit/dit/pkg/oid"
)

func TestUpdateRef_CAS(t *testing.T) {
	ctx := context.Background()
	repo := plumbingtest.New(t)
	a := repo.Commit(ctx, "A\n")
	b := repo.Commit(ctx, "B\n")

	refName := "refs/dit/x/head"
	repo.SetRef(ctx, refName, a)

	if err := repo.Git.UpdateRef(ctx, refName, b, a); err != nil {
		t.Fatalf("CAS update from correct old value failed: %v", err)
	}

	if err := repo.Git.UpdateRef(ctx, refName, a, a); err == nil {
		t.Fatal("expected CAS failure updating from stale old value")
	}

	// Simulate a concurrent mover: ref is moved to c but we still believe
	// it is at a.
	c := repo.Commit(ctx, "C\n")
	repo.SetRef(ctx, refName, c)
	err := repo.Git.UpdateRef(ctx, refName, b, a)
	if !errors.Is(err, plumbing.ErrCASLost) {
		t.Fatalf("expected ErrCASLost, got %v", err)
	}
}

func TestForEachRef(t *testing.T) {
	ctx := context.Background()
	repo := plumbingtest.New(t)
	id := repo.Commit(ctx, "Root\n")
	repo.SetRef(ctx, "refs/dit/x/head", id)
	repo.SetRef(ctx, "refs/dit/x/leaves/abc", id)

	refs, err := repo.Git.ForEachRef(ctx, "refs/dit/**")
	if err != nil {
		t.Fatalf("ForEachRef: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got %d: %#v", len(refs), refs)
	}
	for _, r := range refs {
		if r.Oid != id {
			t.Fatalf("unexpected oid for ref %s: %s", r.Name, r.Oid)
		}
	}
}

func TestResolveRef_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := plumbingtest.New(t)
	if _, err := repo.Git.ResolveRef(ctx, "refs/dit/missing/head"); !errors.Is(err, plumbing.ErrRefNotFound) {
		t.Fatalf("expected ErrRefNotFound, got %v", err)
	}
}

func TestDeleteRef(t *testing.T) {
	ctx := context.Background()
	repo := plumbingtest.New(t)
	id := repo.Commit(ctx, "Root\n")
	refName := "refs/dit/x/leaves/abc"
	repo.SetRef(ctx, refName, id)

	if err := repo.Git.DeleteRef(ctx, refName, oid.Oid{}); err != nil {
		t.Fatalf("DeleteRef: %v", err)
	}
	if _, err := repo.Git.ResolveRef(ctx, refName); !errors.Is(err, plumbing.ErrRefNotFound) {
		t.Fatalf("expected ref gone, got err=%v", err)
	}
}
