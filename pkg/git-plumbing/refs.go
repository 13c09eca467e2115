package git

import (
	"context"
	"strings"
)

// RefInfo represents a reference name and its target hash.
type RefInfo struct {
	Name string // full ref name (e.g., "refs/dit/<id>/head")
	Hash string // SHA the ref points to
}

// UpdateRef creates or moves refName to point at target. If old is
// non-empty, git performs the update as a compare-and-set, failing if
// refName does not currently hold old — this is the optional third
// argument "git update-ref <ref> <new> <old>" itself supports, which the
// teacher's original wrapper never passed.
func (g *Git) UpdateRef(ctx context.Context, refName, target, old string) error {
	args := []string{"update-ref", refName, target}
	if old != "" {
		args = append(args, old)
	}
	return g.RunSilent(ctx, args...)
}

// DeleteRef removes a ref, optionally as a compare-and-set against old.
func (g *Git) DeleteRef(ctx context.Context, refName, old string) error {
	args := []string{"update-ref", "-d", refName}
	if old != "" {
		args = append(args, old)
	}
	return g.RunSilent(ctx, args...)
}

// ShowRef returns the hash that refName points to.
// Returns ErrRefNotFound if the ref does not exist.
func (g *Git) ShowRef(ctx context.Context, refName string) (string, error) {
	out, err := g.Run(ctx, "rev-parse", "--verify", refName)
	if err != nil {
		return "", ErrRefNotFound
	}
	return out, nil
}

// ForEachRef lists refs matching pattern.
// Returns an empty slice (not nil) when no refs match.
func (g *Git) ForEachRef(ctx context.Context, pattern string) ([]RefInfo, error) {
	out, err := g.Run(ctx, "for-each-ref", "--format=%(refname) %(objectname)", pattern)
	if err != nil {
		return []RefInfo{}, nil
	}
	if out == "" {
		return []RefInfo{}, nil
	}

	var refs []RefInfo
	for _, line := range strings.Split(out, "\n") {
		// refnames cannot contain spaces; split on the last space to separate
		// the ref name from the 40-char SHA hash.
		idx := strings.LastIndex(line, " ")
		if idx < 0 {
			continue
		}
		refs = append(refs, RefInfo{
			Name: line[:idx],
			Hash: line[idx+1:],
		})
	}
	return refs, nil
}
