package plumbing

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	gitplumbing "github.com/git-dit/git-plumbing"

	"github.com/git-dit/dit/pkg/oid"
)

// Signature is an author/committer identity, per spec §3.
type Signature struct {
	Name  string
	Email string
	When  time.Time
}

// String renders the signature the way git itself does: "Name <email>".
func (s Signature) String() string {
	return fmt.Sprintf("%s <%s>", s.Name, s.Email)
}

// Commit is the immutable record described in spec §3: id, author
// signature, committer signature, raw message, ordered parent ids (first
// parent is semantically distinguished), and tree id.
type Commit struct {
	ID        oid.Oid
	Author    Signature
	Committer Signature
	Message   string
	Parents   []oid.Oid
	Tree      oid.Oid
}

// FirstParent returns the commit's first parent and true, or the zero Oid
// and false if this is a root commit.
func (c Commit) FirstParent() (oid.Oid, bool) {
	if len(c.Parents) == 0 {
		return oid.Oid{}, false
	}
	return c.Parents[0], true
}

// IsRoot reports whether c has no parents — the shape required of an
// issue's initial message (spec §3 invariant 1).
func (c Commit) IsRoot() bool { return len(c.Parents) == 0 }

// FindCommit reads and parses a single commit by id, via
// github.com/git-dit/git-plumbing's CatFilePretty ("git cat-file -p").
func (g *Git) FindCommit(ctx context.Context, id oid.Oid) (Commit, error) {
	out, err := g.Git.CatFilePretty(ctx, id.String())
	if err != nil {
		return Commit{}, fmt.Errorf("%w: %s", ErrRefNotFound, err)
	}
	return parseCatFileCommit(id, out)
}

func parseCatFileCommit(id oid.Oid, raw string) (Commit, error) {
	lines := strings.Split(raw, "\n")
	c := Commit{ID: id}

	i := 0
	for ; i < len(lines); i++ {
		line := lines[i]
		if line == "" {
			i++
			break
		}
		switch {
		case strings.HasPrefix(line, "tree "):
			t, err := oid.Parse(strings.TrimPrefix(line, "tree "))
			if err != nil {
				return Commit{}, fmt.Errorf("cat-file: bad tree line %q: %w", line, err)
			}
			c.Tree = t
		case strings.HasPrefix(line, "parent "):
			p, err := oid.Parse(strings.TrimPrefix(line, "parent "))
			if err != nil {
				return Commit{}, fmt.Errorf("cat-file: bad parent line %q: %w", line, err)
			}
			c.Parents = append(c.Parents, p)
		case strings.HasPrefix(line, "author "):
			c.Author = parseSignature(strings.TrimPrefix(line, "author "))
		case strings.HasPrefix(line, "committer "):
			c.Committer = parseSignature(strings.TrimPrefix(line, "committer "))
		}
	}
	c.Message = strings.Join(lines[i:], "\n")
	// Run trims trailing whitespace from git's output; git ends every
	// message it writes with a newline, so restore it.
	if c.Message != "" {
		c.Message += "\n"
	}
	return c, nil
}

// parseSignature parses a "Name <email> <unixtime> <tz>" line as git
// writes it in cat-file output.
func parseSignature(s string) Signature {
	open := strings.LastIndex(s, "<")
	closeIdx := strings.LastIndex(s, ">")
	if open < 0 || closeIdx < open {
		return Signature{Name: strings.TrimSpace(s)}
	}
	name := strings.TrimSpace(s[:open])
	email := s[open+1 : closeIdx]
	rest := strings.TrimSpace(s[closeIdx+1:])
	fields := strings.Fields(rest)
	var when time.Time
	if len(fields) > 0 {
		if sec, err := strconv.ParseInt(fields[0], 10, 64); err == nil {
			when = time.Unix(sec, 0).UTC()
		}
	}
	return Signature{Name: name, Email: email, When: when}
}

// CreateCommit creates a new commit object via github.com/git-dit/
// git-plumbing's CommitTree ("git commit-tree"), with the given
// author/committer identities injected through the environment, and
// returns its id. It does not touch any ref — callers (pkg/issue) update
// refs separately so the two can be composed or retried independently.
func (g *Git) CreateCommit(ctx context.Context, author, committer Signature, message string, tree oid.Oid, parents []oid.Oid) (oid.Oid, error) {
	parentStrs := make([]string, len(parents))
	for i, p := range parents {
		parentStrs[i] = p.String()
	}

	out, err := g.Git.CommitTree(ctx, identityEnv(author, committer), tree.String(), message, parentStrs...)
	if err != nil {
		return oid.Oid{}, fmt.Errorf("commit-tree: %w", err)
	}
	return oid.Parse(out)
}

// identityEnv builds the environment CreateCommit runs "git commit-tree"
// under: the package's own sanitized base environment, plus the author
// and committer identity git reads from GIT_*_NAME/EMAIL/DATE.
func identityEnv(author, committer Signature) []string {
	env := append([]string{}, gitplumbing.SanitizedEnv()...)
	env = append(env,
		"GIT_AUTHOR_NAME="+author.Name,
		"GIT_AUTHOR_EMAIL="+author.Email,
		"GIT_COMMITTER_NAME="+committer.Name,
		"GIT_COMMITTER_EMAIL="+committer.Email,
	)
	if !author.When.IsZero() {
		env = append(env, "GIT_AUTHOR_DATE="+author.When.Format(time.RFC3339))
	}
	if !committer.When.IsZero() {
		env = append(env, "GIT_COMMITTER_DATE="+committer.When.Format(time.RFC3339))
	}
	return env
}

// EmptyTree returns the id of the canonical empty tree object, via
// github.com/git-dit/git-plumbing's HashEmptyTree.
func (g *Git) EmptyTree(ctx context.Context) (oid.Oid, error) {
	out, err := g.Git.HashEmptyTree(ctx)
	if err == nil {
		if id, perr := oid.Parse(out); perr == nil {
			return id, nil
		}
	}
	// hash-object against /dev/null writes nothing; fall back to the
	// well-known SHA-1 empty tree constant git always has available.
	return oid.Parse("4b825dc642cb6eb9a060e54bf8d69288fbee4904")
}
