package plumbing

import (
	"context"

	"github.com/git-dit/dit/pkg/oid"
)

// RefInfo pairs a full ref name with the object id it currently points at.
type RefInfo struct {
	Name string
	Oid  oid.Oid
}

// ResolveRef resolves a ref name (or any rev-parse expression) to its oid,
// on top of github.com/git-dit/git-plumbing's ShowRef.
func (g *Git) ResolveRef(ctx context.Context, ref string) (oid.Oid, error) {
	out, err := g.Git.ShowRef(ctx, ref)
	if err != nil {
		return oid.Oid{}, ErrRefNotFound
	}
	return oid.Parse(out)
}

// ShowRef is an alias of ResolveRef kept for parity with the teacher's
// naming; both resolve a ref to its current target.
func (g *Git) ShowRef(ctx context.Context, refName string) (oid.Oid, error) {
	return g.ResolveRef(ctx, refName)
}

// UpdateRef creates or moves refName to target. If expectedOld is non-zero,
// the update is a compare-and-set: it fails with ErrCASLost if refName does
// not currently point at expectedOld, which is how pkg/issue guards against
// concurrent head/leaf advancement (spec §4.E "first-parent chain
// containment" relies on nobody moving a head out from under a reader).
// This calls straight through to github.com/git-dit/git-plumbing's own
// UpdateRef, which accepts the optional CAS argument "git update-ref
// <ref> <new> <old>" itself supports.
func (g *Git) UpdateRef(ctx context.Context, refName string, target, expectedOld oid.Oid) error {
	old := ""
	if !expectedOld.IsZero() {
		old = expectedOld.String()
	}
	if err := g.Git.UpdateRef(ctx, refName, target.String(), old); err != nil {
		if old != "" {
			return ErrCASLost
		}
		return err
	}
	return nil
}

// DeleteRef removes a ref. If expectedOld is non-zero the deletion is a
// compare-and-set, failing with ErrCASLost if the ref has moved.
func (g *Git) DeleteRef(ctx context.Context, refName string, expectedOld oid.Oid) error {
	old := ""
	if !expectedOld.IsZero() {
		old = expectedOld.String()
	}
	if err := g.Git.DeleteRef(ctx, refName, old); err != nil {
		if old != "" {
			return ErrCASLost
		}
		return err
	}
	return nil
}

// ForEachRef lists refs matching pattern (a for-each-ref glob such as
// "refs/dit/**"), returning an empty slice, never nil, when nothing
// matches.
func (g *Git) ForEachRef(ctx context.Context, pattern string) ([]RefInfo, error) {
	raw, err := g.Git.ForEachRef(ctx, pattern)
	if err != nil {
		return []RefInfo{}, nil
	}
	refs := make([]RefInfo, 0, len(raw))
	for _, r := range raw {
		id, err := oid.Parse(r.Hash)
		if err != nil {
			continue
		}
		refs = append(refs, RefInfo{Name: r.Name, Oid: id})
	}
	return refs, nil
}
