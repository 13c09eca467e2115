package plumbing_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/git-dit/dit/internal/plumbing"
	"github.com/git-dit/dit/internal/plumbingtest"
	"github.com/git-dit/dit/pkg/oid"
)

func TestRevList_NewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := plumbingtest.New(t)
	a := repo.Commit(ctx, "A\n")
	b := repo.Commit(ctx, "B\n", a)
	c := repo.Commit(ctx, "C\n", b)

	ids, err := repo.Git.RevList(ctx, plumbing.RevListOptions{Heads: []oid.Oid{c}})
	if err != nil {
		t.Fatalf("RevList: %v", err)
	}
	want := []oid.Oid{c, b, a}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("got %v, want %v", ids, want)
	}
}

func TestRevList_HidePoint(t *testing.T) {
	ctx := context.Background()
	repo := plumbingtest.New(t)
	a := repo.Commit(ctx, "A\n")
	b := repo.Commit(ctx, "B\n", a)
	c := repo.Commit(ctx, "C\n", b)

	ids, err := repo.Git.RevList(ctx, plumbing.RevListOptions{
		Heads: []oid.Oid{c},
		Hide:  []oid.Oid{a},
	})
	if err != nil {
		t.Fatalf("RevList: %v", err)
	}
	want := []oid.Oid{c, b}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("got %v, want %v", ids, want)
	}
}

func TestIsAncestor(t *testing.T) {
	ctx := context.Background()
	repo := plumbingtest.New(t)
	a := repo.Commit(ctx, "A\n")
	b := repo.Commit(ctx, "B\n", a)

	ok, err := repo.Git.IsAncestor(ctx, a, b)
	if err != nil || !ok {
		t.Fatalf("expected a ancestor of b, got ok=%v err=%v", ok, err)
	}
	ok, err = repo.Git.IsAncestor(ctx, b, a)
	if err != nil || ok {
		t.Fatalf("expected b not ancestor of a, got ok=%v err=%v", ok, err)
	}
}
