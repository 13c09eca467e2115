package plumbing

import (
	"errors"

	gitplumbing "github.com/git-dit/git-plumbing"
)

// Sentinel errors for common git failure modes, corresponding to the
// spec §7 error taxonomy (Io, NotFound, Conflict).
var (
	ErrNotRepo     = gitplumbing.ErrNotRepo
	ErrRefNotFound = gitplumbing.ErrRefNotFound
	ErrCASLost     = errors.New("ref update lost its compare-and-set")
)

// GitError wraps an exec error with the command that produced it and its
// stderr output; it is github.com/git-dit/git-plumbing's own GitError
// type, re-exported here so callers only ever import package plumbing.
type GitError = gitplumbing.GitError

// IsNotRepo reports whether err indicates the directory is not a git
// repository.
func IsNotRepo(err error) bool {
	return gitplumbing.IsNotRepo(err)
}
