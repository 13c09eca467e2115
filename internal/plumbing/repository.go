package plumbing

import (
	"context"

	"github.com/git-dit/dit/pkg/oid"
)

// Repository is the object-database boundary dit's core algorithms (pkg/issue,
// pkg/graph, pkg/gc) depend on. Its shape follows spec §1's explicit
// "object-database primitives are out of scope, interfaced but not
// specified" boundary: core code only ever calls through this interface,
// never exec's git directly, so a test double or an alternate backend can
// stand in for *Git. (internal/plumbingtest is not a double: it runs *Git
// against a real temporary repository.)
type Repository interface {
	FindCommit(ctx context.Context, id oid.Oid) (Commit, error)
	CreateCommit(ctx context.Context, author, committer Signature, message string, tree oid.Oid, parents []oid.Oid) (oid.Oid, error)
	EmptyTree(ctx context.Context) (oid.Oid, error)

	ResolveRef(ctx context.Context, ref string) (oid.Oid, error)
	UpdateRef(ctx context.Context, refName string, target, expectedOld oid.Oid) error
	DeleteRef(ctx context.Context, refName string, expectedOld oid.Oid) error
	ForEachRef(ctx context.Context, pattern string) ([]RefInfo, error)

	RevList(ctx context.Context, opts RevListOptions) ([]oid.Oid, error)
	MergeBase(ctx context.Context, a, b oid.Oid) (oid.Oid, error)
	IsAncestor(ctx context.Context, ancestor, descendant oid.Oid) (bool, error)
}

var _ Repository = (*Git)(nil)
