package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/git-dit/dit/pkg/issue"
	"github.com/git-dit/dit/pkg/message"
	"github.com/git-dit/dit/pkg/oid"
	"github.com/git-dit/dit/pkg/refclass"
	"github.com/git-dit/dit/pkg/trailer"
)

// checkMessage validates a message (from the named file, or stdin if none
// is given) against the commit-message format rules, per
// original_source/src/main.rs's check-message.
func (a *app) checkMessage(ctx context.Context, args []string) error {
	var text string
	var err error
	if len(args) > 0 {
		data, readErr := os.ReadFile(args[0])
		if readErr != nil {
			return readErr
		}
		text = string(data)
	} else {
		text, err = readStdin()
		if err != nil {
			return err
		}
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	if err := message.CheckFormat(lines); err != nil {
		return err
	}
	return nil
}

// checkRefname classifies a reference name and prints its issue id and
// ref kind, per original_source/src/main.rs's check-refname.
func (a *app) checkRefname(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: dit check-refname <refname>")
	}
	ref, ok := refclass.Of(args[0])
	if !ok {
		return fmt.Errorf("not a dit reference: %s", args[0])
	}
	fmt.Println(ref.Issue)
	switch ref.Kind {
	case refclass.Head:
		fmt.Println("head")
	case refclass.Leaf:
		fmt.Println("leaf")
	default:
		fmt.Println("unknown")
	}
	return nil
}

// createMessage reads a message from stdin and creates either a new issue
// (no --issue given) or a reply commit under an existing one, mirroring
// original_source/src/main.rs's create-message plumbing.
func (a *app) createMessage(ctx context.Context, args []string) error {
	var issueArg string
	var parentArgs []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--issue":
			if i+1 < len(args) {
				i++
				issueArg = args[i]
			}
		case "--parent":
			if i+1 < len(args) {
				i++
				parentArgs = append(parentArgs, args[i])
			}
		}
	}

	text, err := readStdin()
	if err != nil {
		return err
	}

	author, err := a.authorSignature(ctx)
	if err != nil {
		return err
	}

	if issueArg == "" {
		iss, err := issue.CreateIssue(ctx, a.git, author, author, text)
		if err != nil {
			return err
		}
		fmt.Println(iss.ID())
		return nil
	}

	iss, err := a.resolveIssue(issueArg)
	if err != nil {
		return err
	}

	var parents []oid.Oid
	for _, p := range parentArgs {
		id, err := oid.Parse(p)
		if err != nil {
			return fmt.Errorf("invalid parent %q: %w", p, err)
		}
		parents = append(parents, id)
	}

	tree, err := treeForParents(ctx, a, parents)
	if err != nil {
		return err
	}

	id, err := iss.AddMessage(ctx, author, author, text, tree, parents)
	if err != nil {
		return err
	}
	fmt.Println(id)
	return nil
}

func treeForParents(ctx context.Context, a *app, parents []oid.Oid) (oid.Oid, error) {
	if len(parents) > 0 {
		c, err := a.git.FindCommit(ctx, parents[0])
		if err != nil {
			return oid.Oid{}, err
		}
		return c.Tree, nil
	}
	return a.git.EmptyTree(ctx)
}

// findTreeInitHash resolves a commit to the issue id whose first-parent
// chain it belongs to, per original_source/src/main.rs's
// find-tree-init-hash: walk first-parent links to the root.
func (a *app) findTreeInitHash(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: dit find-tree-init-hash <oid>")
	}
	id, err := oid.Parse(args[0])
	if err != nil {
		return err
	}
	root, err := findIssueRoot(ctx, a, id)
	if err != nil {
		return err
	}
	fmt.Println(root)
	return nil
}

// findIssueRoot walks first-parent links from id back to the issue's
// initial commit.
func findIssueRoot(ctx context.Context, a *app, id oid.Oid) (oid.Oid, error) {
	for {
		c, err := a.git.FindCommit(ctx, id)
		if err != nil {
			return oid.Oid{}, err
		}
		if c.IsRoot() {
			return id, nil
		}
		id, _ = c.FirstParent()
	}
}

// getIssueTreeInitHashes lists every known issue id, discovered from local
// dit head references.
func (a *app) getIssueTreeInitHashes(ctx context.Context, args []string) error {
	refs, err := a.git.ForEachRef(ctx, "refs/dit/")
	if err != nil {
		return err
	}
	seen := map[string]bool{}
	for _, r := range refs {
		ref, ok := refclass.Of(r.Name)
		if !ok || ref.Kind != refclass.Head {
			continue
		}
		key := ref.Issue.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		fmt.Println(ref.Issue)
	}
	return nil
}

// getIssueMetadata drives a SingleAccumulator over the messages reachable
// from a given head commit, for one trailer key. Default policy is List,
// matching original_source/src/main.rs:139-170 (accumulate-latest must be
// requested explicitly; List is the fallback, not Latest).
func (a *app) getIssueMetadata(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: dit get-issue-metadata <head> --key <trailer> [--accumulate-latest|--accumulate-list] [--values-only]")
	}
	head, err := oid.Parse(args[0])
	if err != nil {
		return err
	}

	key := ""
	policy := trailer.List
	valuesOnly := false
	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "--key":
			if i+1 < len(args) {
				i++
				key = args[i]
			}
		case "--accumulate-list":
			policy = trailer.List
		case "--accumulate-latest":
			policy = trailer.Latest
		case "--values-only":
			valuesOnly = true
		}
	}
	if key == "" {
		return fmt.Errorf("--key is required")
	}

	root, err := findIssueRoot(ctx, a, head)
	if err != nil {
		return err
	}
	iss := issue.New(a.git, root)
	msgs, err := iss.MessagesFrom(ctx, head)
	if err != nil {
		return err
	}

	acc := trailer.NewSingleAccumulator(key, policy)
	for _, c := range msgs {
		m := message.Parse(c.Message)
		acc.ProcessAll(trailer.FromMessage(m))
	}

	for _, t := range acc.IntoTrailers() {
		if valuesOnly {
			fmt.Println(t.Value.AsString())
		} else {
			fmt.Printf("%s: %s\n", t.Key, t.Value.AsString())
		}
	}
	return nil
}
