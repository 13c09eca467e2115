// Package plumbing wraps github.com/git-dit/git-plumbing (a nested module
// adapted from the teacher's own github.com/EmundoT/git-plumbing
// dependency, required via the same local "replace" the teacher's go.mod
// uses) with the object-database and ref primitives dit's core needs:
// commit creation, ref read/write/delete, and revwalk. These primitives
// are the spec's "out of scope" external collaborator — dit's core
// (pkg/issue, pkg/graph, pkg/gc) only ever talks to the Repository
// interface in repository.go, never to package plumbing or
// github.com/git-dit/git-plumbing directly, so a different backend
// (go-git, a test double) can be substituted without touching the core.
package plumbing

import (
	gitplumbing "github.com/git-dit/git-plumbing"
)

// Git adapts github.com/git-dit/git-plumbing's raw exec wrapper to dit's
// domain: oid-typed ids, parsed commits, and identity-signed commit
// creation, the same split the teacher's internal/core keeps against its
// own github.com/EmundoT/git-plumbing dependency (see e.g.
// internal/core/commit_service.go and internal/core/git_operations.go).
// Dir and Verbose are promoted from the embedded *gitplumbing.Git.
type Git struct {
	*gitplumbing.Git
}

// New creates a Git instance for the given directory.
func New(dir string) *Git {
	return &Git{Git: gitplumbing.New(dir)}
}

// IsInstalled returns true if the git binary is available on PATH.
func IsInstalled() bool {
	return gitplumbing.IsInstalled()
}
