// Package issue implements component E of the dit core: the issue entity,
// binding an initial-message id to the set of its messages, heads,
// leaves, and local/remote refs.
package issue

import (
	"context"
	"errors"
	"fmt"

	"github.com/git-dit/dit/internal/plumbing"
	"github.com/git-dit/dit/pkg/graph"
	"github.com/git-dit/dit/pkg/oid"
	"github.com/git-dit/dit/pkg/refclass"
)

// Sentinel errors, corresponding to spec §7's Conflict and NotFound kinds.
var (
	ErrNotFound      = errors.New("issue: not found")
	ErrWriteConflict = errors.New("issue: ref update lost its compare-and-set")
	ErrAlreadyExists = errors.New("issue: head already exists")
)

// Id is an issue's identity: the Oid of its initial (parent-less) message.
type Id = oid.Oid

// Issue is a handle binding an issue id to a repository. It holds no
// cached state — every operation re-reads the repository, matching spec
// §5's snapshot-at-enumeration-time guarantee.
type Issue struct {
	id   Id
	repo plumbing.Repository
}

// New constructs a handle for an already-known issue id. It performs no
// I/O; call InitialMessage to verify the issue actually exists.
func New(repo plumbing.Repository, id Id) Issue {
	return Issue{id: id, repo: repo}
}

// ID returns the issue's identity.
func (i Issue) ID() Id { return i.id }

// CreateIssue writes a parent-less commit and its initial local head ref
// in a single logical step (spec §4.E). If the ref-creation step fails,
// the orphan commit object is left in the object db — harmless, and
// collectable by the underlying object store's own gc, matching the
// teacher's tolerance for harmless partial writes on non-transactional
// backends.
func CreateIssue(ctx context.Context, repo plumbing.Repository, author, committer plumbing.Signature, message string) (Issue, error) {
	tree, err := repo.EmptyTree(ctx)
	if err != nil {
		return Issue{}, fmt.Errorf("issue: create: %w", err)
	}
	id, err := repo.CreateCommit(ctx, author, committer, message, tree, nil)
	if err != nil {
		return Issue{}, fmt.Errorf("issue: create: %w", err)
	}
	headName := refclass.HeadName(id)
	if err := repo.UpdateRef(ctx, headName, id, oid.Oid{}); err != nil {
		return Issue{}, fmt.Errorf("issue: create: head ref for %s: %w", id, err)
	}
	return Issue{id: id, repo: repo}, nil
}

// InitialMessage returns the issue's root commit.
func (i Issue) InitialMessage(ctx context.Context) (plumbing.Commit, error) {
	c, err := i.repo.FindCommit(ctx, i.id)
	if err != nil {
		return plumbing.Commit{}, fmt.Errorf("%w: issue %s: %w", ErrNotFound, i.id, err)
	}
	return c, nil
}

// seeds returns the union of every head and leaf commit currently visible
// for the issue, local and remote alike — the revwalk starting points
// spec §4.F's "issue messages iterator" requires.
func (i Issue) seeds(ctx context.Context) ([]oid.Oid, error) {
	refs, err := i.repo.ForEachRef(ctx, "refs/dit/"+i.id.String()+"/**")
	if err != nil {
		return nil, err
	}
	remoteRefs, err := i.repo.ForEachRef(ctx, "refs/remotes/*/dit/"+i.id.String()+"/**")
	if err != nil {
		return nil, err
	}
	seen := make(map[oid.Oid]bool)
	var ids []oid.Oid
	for _, r := range append(refs, remoteRefs...) {
		cls, ok := refclass.Of(r.Name)
		if !ok || cls.Issue != i.id {
			continue
		}
		if !seen[r.Oid] {
			seen[r.Oid] = true
			ids = append(ids, r.Oid)
		}
	}
	return ids, nil
}

// Messages returns every commit of the issue, ordered newest-descendant
// first, terminating wherever a commit's first-parent chain reaches the
// issue id (spec §4.E).
func (i Issue) Messages(ctx context.Context) ([]plumbing.Commit, error) {
	heads, err := i.seeds(ctx)
	if err != nil {
		return nil, err
	}
	if len(heads) == 0 {
		heads = []oid.Oid{i.id}
	}
	return graph.MessagesWalk(ctx, i.repo, heads, parentsOf(ctx, i.repo, i.id))
}

// parentsOf returns the parents of commit id, or nil if they cannot be
// read — used to build the hide-point set one level past the issue's
// root so the root itself is still included in the walk.
func parentsOf(ctx context.Context, repo plumbing.Repository, id oid.Oid) []oid.Oid {
	c, err := repo.FindCommit(ctx, id)
	if err != nil {
		return nil
	}
	return c.Parents
}

// MessagesFrom walks the first-parent chain from start down to (and
// including) the issue id.
func (i Issue) MessagesFrom(ctx context.Context, start oid.Oid) ([]plumbing.Commit, error) {
	reachedRoot := false
	out, err := graph.FirstParentChain(ctx, i.repo, start, func(c plumbing.Commit) bool {
		if c.ID == i.id {
			reachedRoot = true
			return true
		}
		return false
	})
	if err != nil {
		return nil, fmt.Errorf("issue: messages-from %s: %w", start, err)
	}
	if !reachedRoot {
		return nil, fmt.Errorf("%w: chain from %s never reaches issue %s", ErrNotFound, start, i.id)
	}
	return out, nil
}

// refsOf returns every dit ref belonging to this issue matching the given
// kind/locality filter, re-classifying each one (spec §4.E: "classification
// is re-checked").
func (i Issue) refsOf(ctx context.Context, kind refclass.Kind, loc refclass.Locality) ([]refclass.Ref, error) {
	pattern := "refs/dit/" + i.id.String() + "/**"
	if loc == refclass.Remote {
		pattern = "refs/remotes/*/dit/" + i.id.String() + "/**"
	}
	infos, err := i.repo.ForEachRef(ctx, pattern)
	if err != nil {
		return nil, err
	}
	var out []refclass.Ref
	for _, info := range infos {
		r, ok := refclass.Of(info.Name)
		if !ok || r.Issue != i.id {
			continue
		}
		if !r.Matches(kind, loc) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// Heads returns every head ref (local and remote) for the issue.
func (i Issue) Heads(ctx context.Context) ([]refclass.Ref, error) {
	local, err := i.refsOf(ctx, refclass.Head, refclass.Local)
	if err != nil {
		return nil, err
	}
	remote, err := i.refsOf(ctx, refclass.Head, refclass.Remote)
	if err != nil {
		return nil, err
	}
	return append(local, remote...), nil
}

// Leaves returns every leaf ref (local and remote) for the issue.
func (i Issue) Leaves(ctx context.Context) ([]refclass.Ref, error) {
	local, err := i.refsOf(ctx, refclass.Leaf, refclass.Local)
	if err != nil {
		return nil, err
	}
	remote, err := i.refsOf(ctx, refclass.Leaf, refclass.Remote)
	if err != nil {
		return nil, err
	}
	return append(local, remote...), nil
}

// LocalRefs returns local refs of the given kind (Head, Leaf, or Any).
func (i Issue) LocalRefs(ctx context.Context, kind refclass.Kind) ([]refclass.Ref, error) {
	return i.refsOf(ctx, kind, refclass.Local)
}

// RemoteRefs returns remote-mirrored refs of the given kind.
func (i Issue) RemoteRefs(ctx context.Context, kind refclass.Kind) ([]refclass.Ref, error) {
	return i.refsOf(ctx, kind, refclass.Remote)
}

// AddMessage creates a new commit under the issue, updates the local leaf
// set to reflect it (the new commit becomes a leaf; any parent that was
// previously a leaf is superseded, since it now has a child), and returns
// the new commit's id. Fails with ErrWriteConflict if a leaf ref update
// loses its compare-and-set, per spec §4.E.
func (i Issue) AddMessage(ctx context.Context, author, committer plumbing.Signature, message string, tree oid.Oid, parents []oid.Oid) (oid.Oid, error) {
	if len(parents) == 0 {
		parents = []oid.Oid{i.id}
	}
	newID, err := i.repo.CreateCommit(ctx, author, committer, message, tree, parents)
	if err != nil {
		return oid.Oid{}, fmt.Errorf("issue: add-message: %w", err)
	}

	for _, p := range parents {
		leafName := refclass.LeafName(i.id, p)
		existing, err := i.repo.ResolveRef(ctx, leafName)
		if err != nil {
			continue // parent was never a leaf ref; nothing to supersede
		}
		if existing != p {
			continue // ref moved already; leave it for its own reconciliation
		}
		if err := i.repo.DeleteRef(ctx, leafName, p); err != nil {
			return oid.Oid{}, fmt.Errorf("%w: superseding leaf for parent %s", ErrWriteConflict, p)
		}
	}

	if err := i.AddLeaf(ctx, newID); err != nil {
		return oid.Oid{}, err
	}
	return newID, nil
}

// AddLeaf creates refs/dit/<id>/leaves/<oid>. Idempotent: creating a leaf
// ref that already points at oid is a no-op.
func (i Issue) AddLeaf(ctx context.Context, commitOid oid.Oid) error {
	name := refclass.LeafName(i.id, commitOid)
	existing, err := i.repo.ResolveRef(ctx, name)
	if err == nil && existing == commitOid {
		return nil
	}
	if err := i.repo.UpdateRef(ctx, name, commitOid, oid.Oid{}); err != nil {
		return fmt.Errorf("issue: add-leaf %s: %w", commitOid, err)
	}
	return nil
}

// UpdateHead moves (or creates) the local head ref. If the ref does not
// exist, it is always created. If it exists, force must be true or
// ErrAlreadyExists is returned (spec §4.E).
func (i Issue) UpdateHead(ctx context.Context, target oid.Oid, force bool) error {
	name := refclass.HeadName(i.id)
	existing, err := i.repo.ResolveRef(ctx, name)
	if err != nil {
		// No existing head: always allowed.
		if err := i.repo.UpdateRef(ctx, name, target, oid.Oid{}); err != nil {
			return fmt.Errorf("issue: update-head: %w", err)
		}
		return nil
	}
	if existing == target {
		return nil
	}
	if !force {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, name)
	}
	if err := i.repo.UpdateRef(ctx, name, target, existing); err != nil {
		return fmt.Errorf("%w: %s", ErrWriteConflict, name)
	}
	return nil
}

// TerminatedMessages returns a revwalk from extraHeads (typically remote
// leaf commits under consideration) down to, but not past, the issue id —
// the bounded traversal spec §4.E describes as used by GC and mirror.
func (i Issue) TerminatedMessages(ctx context.Context, extraHeads []oid.Oid) ([]oid.Oid, error) {
	return i.repo.RevList(ctx, plumbing.RevListOptions{
		Heads: extraHeads,
		Hide:  []oid.Oid{i.id},
	})
}
