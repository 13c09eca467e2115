package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/git-dit/dit/internal/config"
	"github.com/git-dit/dit/internal/display"
	"github.com/git-dit/dit/internal/editor"
	"github.com/git-dit/dit/internal/importmail"
	"github.com/git-dit/dit/pkg/graph"
	"github.com/git-dit/dit/pkg/issue"
	"github.com/git-dit/dit/pkg/message"
	"github.com/git-dit/dit/pkg/trailer"
)

// listEntry is one row of "dit list" output.
type listEntry struct {
	id      string
	subject string
	when    int64
}

// list filters and prints known issues by subject, sorted by initial
// message time descending, per original_source/src/main.rs:264-332.
func (a *app) list(ctx context.Context, args []string) error {
	limit := -1
	statusFilter := ""
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-n":
			if i+1 < len(args) {
				i++
				fmt.Sscanf(args[i], "%d", &limit)
			}
		case "--status":
			if i+1 < len(args) {
				i++
				statusFilter = args[i]
			}
		}
	}

	ids, err := a.allIssueIDs(ctx)
	if err != nil {
		return err
	}

	specs, err := config.LoadTrailerRegistry(a.git.Dir)
	if err != nil {
		return err
	}

	var filters trailer.FilterSet
	if statusFilter != "" {
		filters = trailer.FilterSet{trailer.NewFilter(trailer.IssueStatusSpec, trailer.Equals(trailer.String(statusFilter)))}
	}

	var entries []listEntry
	for _, id := range ids {
		iss := issue.New(a.git, id)
		msgs, err := iss.Messages(ctx)
		if err != nil {
			return err
		}
		acc := trailer.NewKeyedAccumulator(specs, trailer.Latest)
		for _, c := range msgs {
			acc.ProcessAll(trailer.FromMessage(message.Parse(c.Message)))
		}
		if !filters.Matches(acc.Snapshot()) {
			continue
		}
		root, err := iss.InitialMessage(ctx)
		if err != nil {
			return err
		}
		subject := message.Parse(root.Message).Subject
		entries = append(entries, listEntry{id: id.String(), subject: subject, when: root.Author.When.Unix()})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].when > entries[j].when })
	if limit >= 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	for _, e := range entries {
		fmt.Printf("%s  %s\n", e.id[:12], e.subject)
	}
	return nil
}

// new composes a new issue's initial message and creates it.
func (a *app) new(ctx context.Context, args []string) error {
	m, err := a.compose(ctx, "", nil, defaultComposerFields())
	if err != nil {
		return err
	}
	if err := message.CheckFormat(strings.Split(strings.TrimSuffix(message.Serialize(m), "\n"), "\n")); err != nil {
		return err
	}
	author, err := a.authorSignature(ctx)
	if err != nil {
		return err
	}
	iss, err := issue.CreateIssue(ctx, a.git, author, author, message.Serialize(m))
	if err != nil {
		return err
	}
	fmt.Println(iss.ID())
	return nil
}

// reply composes a message replying to the named issue's current heads.
func (a *app) reply(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: dit reply <issue>")
	}
	iss, err := a.resolveIssue(args[0])
	if err != nil {
		return err
	}
	root, err := iss.InitialMessage(ctx)
	if err != nil {
		return err
	}
	parsed := message.Parse(root.Message)

	m, err := a.compose(ctx, message.ReplySubject(parsed.Subject), message.Quote(parsed.BodyLines), nil)
	if err != nil {
		return err
	}
	if err := message.CheckFormat(strings.Split(strings.TrimSuffix(message.Serialize(m), "\n"), "\n")); err != nil {
		return err
	}

	author, err := a.authorSignature(ctx)
	if err != nil {
		return err
	}
	parents, err := a.currentParents(ctx, iss)
	if err != nil {
		return err
	}
	tree, err := treeForParents(ctx, a, parents)
	if err != nil {
		return err
	}
	id, err := iss.AddMessage(ctx, author, author, message.Serialize(m), tree, parents)
	if err != nil {
		return err
	}
	fmt.Println(id)
	return nil
}

// defaultComposerFields offers the two well-known trailers in the
// interactive composer; Issue-status is constrained to its conventional
// values since the registry itself doesn't enforce an enum.
func defaultComposerFields() []display.TrailerField {
	return []display.TrailerField{
		{Spec: trailer.IssueStatusSpec, Options: []string{"open", "closed"}},
		{Spec: trailer.IssueTypeSpec},
	}
}

// compose produces a Message either from stdin (when piped, i.e. not a
// terminal) or via the interactive composer / external editor.
func (a *app) compose(ctx context.Context, subjectDefault string, bodyDefault []string, fields []display.TrailerField) (message.Message, error) {
	if !display.StdinIsTTY() {
		text, err := readStdin()
		if err != nil {
			return message.Message{}, err
		}
		return message.Parse(text), nil
	}

	editorCmd, _ := a.cfg.Editor(ctx)
	if editorCmd != "" {
		return a.composeViaEditor(ctx, editorCmd, subjectDefault, bodyDefault)
	}
	return display.ComposeInput(subjectDefault, strings.Join(bodyDefault, "\n"), fields)
}

func (a *app) composeViaEditor(ctx context.Context, editorCmd, subjectDefault string, bodyDefault []string) (message.Message, error) {
	cmd, err := editor.Resolve(editorCmd, "")
	if err != nil {
		return message.Message{}, err
	}
	tmp, err := writeTempTemplate(subjectDefault, bodyDefault)
	if err != nil {
		return message.Message{}, err
	}
	if err := editor.EditFile(ctx, cmd, tmp); err != nil {
		return message.Message{}, err
	}
	return readMessageFile(tmp)
}

// show renders an issue's graph and its messages.
func (a *app) show(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: dit show <issue>")
	}
	iss, err := a.resolveIssue(args[0])
	if err != nil {
		return err
	}
	msgs, err := iss.Messages(ctx)
	if err != nil {
		return err
	}

	layout := graph.NewLayout()
	var lines []graph.Line
	for _, c := range msgs {
		lines = append(lines, layout.Step(c.ID, c.Parents))
	}
	graph.ReverseMarks(lines)

	byID := make(map[string]message.Message, len(msgs))
	for _, c := range msgs {
		byID[c.ID.String()] = message.Parse(c.Message)
	}

	var out strings.Builder
	for _, l := range lines {
		m := byID[l.Commit.String()]
		fmt.Fprintf(&out, "%s %s\n", renderGlyphs(l), display.StyleTitle(m.Subject))
	}

	if !display.StdoutIsTTY() {
		fmt.Print(out.String())
		return nil
	}
	pagerCmd, _ := a.cfg.Pager(ctx)
	return editor.Page(ctx, pagerCmd, out.String())
}

func renderGlyphs(l graph.Line) string {
	var b strings.Builder
	for _, g := range l.Cells {
		switch g {
		case graph.Node:
			b.WriteByte('*')
		case graph.Branch, graph.Merge:
			b.WriteByte('|')
		case graph.Passing:
			b.WriteByte('|')
		default:
			b.WriteByte(' ')
		}
		b.WriteByte(' ')
	}
	return b.String()
}

// tag lists or adds the well-known Tags trailer on an issue's current
// heads. With no value, it prints the accumulated tags; with a value, it
// creates a new message adding it.
func (a *app) tag(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: dit tag <issue> [value]")
	}
	iss, err := a.resolveIssue(args[0])
	if err != nil {
		return err
	}

	tagsSpec := trailer.Spec{Key: "Tags", Kind: trailer.KindString}

	if len(args) == 1 {
		msgs, err := iss.Messages(ctx)
		if err != nil {
			return err
		}
		acc := trailer.NewSingleAccumulator(tagsSpec.Key, trailer.List)
		for _, c := range msgs {
			acc.ProcessAll(trailer.FromMessage(message.Parse(c.Message)))
		}
		for _, v := range acc.Values() {
			fmt.Println(v.AsString())
		}
		return nil
	}

	value := args[1]
	author, err := a.authorSignature(ctx)
	if err != nil {
		return err
	}
	parents, err := a.currentParents(ctx, iss)
	if err != nil {
		return err
	}
	tree, err := treeForParents(ctx, a, parents)
	if err != nil {
		return err
	}
	text := message.Serialize(message.Message{
		Subject:  fmt.Sprintf("Tag %s", value),
		Trailers: []message.RawTrailer{{Key: tagsSpec.Key, Value: value}},
	})
	id, err := iss.AddMessage(ctx, author, author, text, tree, parents)
	if err != nil {
		return err
	}
	fmt.Println(id)
	return nil
}

// importMaildir stages a maildir folder; conversion into commits is an
// open question left unimplemented (spec §9).
func (a *app) importMaildir(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: dit import <maildir>")
	}
	staged, batchDir, err := importmail.Stage(args[0], ".dit/import-staging")
	if err != nil {
		return err
	}
	if !a.flags.Quiet {
		display.PrintInfo(fmt.Sprintf("staged %d message(s) in %s", len(staged), batchDir))
	}
	return importmail.ImportMessages(staged)
}
