package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/git-dit/dit/internal/config"
	"github.com/git-dit/dit/internal/plumbing"
	"github.com/git-dit/dit/pkg/issue"
	"github.com/git-dit/dit/pkg/oid"
	"github.com/git-dit/dit/pkg/refclass"
)

// app bundles the shelled git boundary and config store every subcommand
// needs, avoiding a global (spec §9: "Global mutable state: None in the
// core" — the CLI layer carries its own dependencies explicitly instead).
type app struct {
	git   *plumbing.Git
	cfg   config.Store
	flags commonFlags
}

// resolveIssue parses an issue id from a hex string. oid.Parse requires the
// full 40- or 64-character id; abbreviated ids are not expanded.
func (a *app) resolveIssue(s string) (issue.Issue, error) {
	id, err := oid.Parse(s)
	if err != nil {
		return issue.Issue{}, fmt.Errorf("invalid issue id %q: %w", s, err)
	}
	return issue.New(a.git, id), nil
}

// readStdin slurps all of stdin, used by plumbing commands that take a
// message body on standard input.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// authorSignature resolves the commit author from git's own identity
// config ("git config user.name"/"user.email"), falling back to dit's
// configured default-author ("Name <email>") if git has none.
func (a *app) authorSignature(ctx context.Context) (plumbing.Signature, error) {
	name, _ := a.git.Run(ctx, "config", "user.name")
	email, _ := a.git.Run(ctx, "config", "user.email")
	if name != "" && email != "" {
		return plumbing.Signature{Name: name, Email: email}, nil
	}
	if def, err := a.cfg.DefaultAuthor(ctx); err == nil && def != "" {
		return parseAuthor(def), nil
	}
	return plumbing.Signature{}, fmt.Errorf("no author identity: set git config user.name/user.email or dit.default-author")
}

// currentParents returns the commits a new reply should attach to: the
// issue's current local leaves (each superseded by the new message, per
// issue.AddMessage), or the issue root itself if it has none yet.
func (a *app) currentParents(ctx context.Context, iss issue.Issue) ([]oid.Oid, error) {
	leaves, err := iss.LocalRefs(ctx, refclass.Leaf)
	if err != nil {
		return nil, err
	}
	if len(leaves) == 0 {
		return []oid.Oid{iss.ID()}, nil
	}
	parents := make([]oid.Oid, len(leaves))
	for i, l := range leaves {
		parents[i] = l.Leaf
	}
	return parents, nil
}

func parseAuthor(s string) plumbing.Signature {
	if i := strings.Index(s, "<"); i >= 0 {
		name := strings.TrimSpace(s[:i])
		email := strings.TrimSuffix(strings.TrimSpace(s[i+1:]), ">")
		return plumbing.Signature{Name: name, Email: email}
	}
	return plumbing.Signature{Name: s}
}
