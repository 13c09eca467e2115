// Package plumbingtest provides a throwaway git repository for exercising
// internal/plumbing and the packages built on it, following
// github.com/EmundoT/git-plumbing/testutil's TestRepo/run/sanitizedEnv
// shape: dit's object-database boundary is thin enough that a temp repo is
// cheaper to trust than a hand-rolled fake.
package plumbingtest

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/git-dit/dit/internal/plumbing"
	"github.com/git-dit/dit/pkg/oid"
)

// Repo is an initialized git repository rooted in t.TempDir(), wired to a
// *plumbing.Git for use as a plumbing.Repository in tests.
type Repo struct {
	Dir string
	Git *plumbing.Git
	t   *testing.T
}

// New creates and initializes a temporary repository.
func New(t *testing.T) *Repo {
	t.Helper()
	dir := t.TempDir()
	run(t, dir, "init", "--initial-branch=main")
	run(t, dir, "config", "user.email", "test@example.com")
	run(t, dir, "config", "user.name", "Test User")
	run(t, dir, "config", "commit.gpgsign", "false")
	return &Repo{Dir: dir, Git: plumbing.New(dir), t: t}
}

// Commit creates a commit with an empty tree and the given parents, and
// returns its id. With no parents it has the shape an issue's initial
// message must have (spec §3 invariant 1).
func (r *Repo) Commit(ctx context.Context, message string, parents ...oid.Oid) oid.Oid {
	r.t.Helper()
	tree, err := r.Git.EmptyTree(ctx)
	if err != nil {
		r.t.Fatalf("EmptyTree: %v", err)
	}
	sig := plumbing.Signature{Name: "Test User", Email: "test@example.com"}
	id, err := r.Git.CreateCommit(ctx, sig, sig, message, tree, parents)
	if err != nil {
		r.t.Fatalf("CreateCommit: %v", err)
	}
	return id
}

// SetRef force-updates refName to point at target, bypassing CAS.
func (r *Repo) SetRef(ctx context.Context, refName string, target oid.Oid) {
	r.t.Helper()
	if err := r.Git.UpdateRef(ctx, refName, target, oid.Oid{}); err != nil {
		r.t.Fatalf("UpdateRef %s: %v", refName, err)
	}
}

func run(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = sanitizedEnv()
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s failed: %v\n%s", strings.Join(args, " "), err, string(out))
	}
	return string(out)
}

func sanitizedEnv() []string {
	var env []string
	for _, e := range os.Environ() {
		key := strings.ToUpper(strings.SplitN(e, "=", 2)[0])
		switch key {
		case "GIT_DIR", "GIT_INDEX_FILE", "GIT_WORK_TREE",
			"GIT_OBJECT_DIRECTORY", "GIT_ALTERNATE_OBJECT_DIRECTORIES":
			continue
		}
		env = append(env, e)
	}
	return env
}
