package git

import "context"

// CommitTree creates a commit object directly from a tree and parent list
// via "git commit-tree", without touching the working tree or the index —
// the primitive dit's core needs, in place of the teacher's working-copy
// "git commit" (CommitOpts/Add), since dit commits are assembled from
// content the caller already has rather than staged files.
func (g *Git) CommitTree(ctx context.Context, env []string, tree, message string, parents ...string) (string, error) {
	args := []string{"commit-tree", tree}
	for _, p := range parents {
		args = append(args, "-p", p)
	}
	args = append(args, "-m", message)
	return g.RunEnv(ctx, env, args...)
}

// CatFilePretty returns the pretty-printed object content for id, as
// "git cat-file -p" would print it — the raw commit text a caller parses
// into its own Commit type.
func (g *Git) CatFilePretty(ctx context.Context, id string) (string, error) {
	return g.Run(ctx, "cat-file", "-p", id)
}

// HashEmptyTree returns the id of the canonical empty tree object.
func (g *Git) HashEmptyTree(ctx context.Context) (string, error) {
	return g.Run(ctx, "hash-object", "-t", "tree", "--stdin")
}
