package git

import (
	"context"
	"fmt"
)

// RevList runs "git rev-list --topo-order <heads> ^<hide>..." (optionally
// "--first-parent") and returns the resulting commit ids in the order git
// printed them: no commit is listed before any of its descendants.
// Grounded on the command-construction shape of this
// package's own Log (see log.go in the teacher's copy of this package),
// simplified to raw ids since trailer/message parsing belongs to the
// importing package, not this one.
func (g *Git) RevList(ctx context.Context, heads, hide []string, firstParentOnly bool) ([]string, error) {
	args := []string{"rev-list", "--topo-order"}
	if firstParentOnly {
		args = append(args, "--first-parent")
	}
	args = append(args, heads...)
	for _, h := range hide {
		args = append(args, "^"+h)
	}
	return g.RunLines(ctx, args...)
}

// MergeBase returns the best common ancestor of a and b.
func (g *Git) MergeBase(ctx context.Context, a, b string) (string, error) {
	out, err := g.Run(ctx, "merge-base", a, b)
	if err != nil {
		return "", ErrRefNotFound
	}
	return out, nil
}

// IsAncestor reports whether ancestor is an ancestor of (or equal to)
// descendant, via "git merge-base --is-ancestor". Exit code 1 means "no"
// rather than failure; any other non-zero exit is a real error.
func (g *Git) IsAncestor(ctx context.Context, ancestor, descendant string) (bool, error) {
	code, err := g.RunExitCode(ctx, "merge-base", "--is-ancestor", ancestor, descendant)
	if err != nil {
		return false, err
	}
	switch code {
	case 0:
		return true, nil
	case 1:
		return false, nil
	default:
		return false, fmt.Errorf("merge-base --is-ancestor exited %d", code)
	}
}
