// Command dit is the distributed issue tracker's CLI: a thin dispatcher
// over pkg/issue, pkg/graph, and pkg/gc, shelling to the system git binary
// via internal/plumbing for every object-database operation.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/git-dit/dit/internal/config"
	"github.com/git-dit/dit/internal/display"
	"github.com/git-dit/dit/internal/plumbing"
	"github.com/git-dit/dit/internal/version"
)

// commonFlags are the non-interactive flags accepted by every subcommand,
// mirroring the teacher's parseCommonFlags for --yes/--quiet/--json.
type commonFlags struct {
	Quiet   bool
	JSON    bool
	Verbose bool
}

// parseCommonFlags extracts the shared flags from args and returns the
// remaining, subcommand-specific arguments.
func parseCommonFlags(args []string) (commonFlags, []string) {
	var flags commonFlags
	var remaining []string
	for _, arg := range args {
		switch arg {
		case "--quiet", "-q":
			flags.Quiet = true
		case "--json":
			flags.JSON = true
		case "--verbose", "-v":
			flags.Verbose = true
		default:
			remaining = append(remaining, arg)
		}
	}
	return flags, remaining
}

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(0)
	}

	command := os.Args[1]
	if command == "--help" || command == "-h" || command == "help" {
		printHelp()
		os.Exit(0)
	}
	if command == "--version" {
		fmt.Printf("dit %s\n", version.GetFullVersion())
		os.Exit(0)
	}

	if !plumbing.IsInstalled() {
		display.PrintError("Error", "git not found on PATH")
		os.Exit(1)
	}

	flags, args := parseCommonFlags(os.Args[2:])

	dir, err := os.Getwd()
	if err != nil {
		display.PrintError("Error", err.Error())
		os.Exit(1)
	}
	git := plumbing.New(dir)
	git.Verbose = flags.Verbose

	cfg := config.Layered{
		Primary:  &config.GitConfigStore{Git: git},
		Fallback: config.NewYAMLConfigStore(dir),
	}

	ctx := context.Background()
	app := &app{git: git, cfg: cfg, flags: flags}

	var cmdErr error
	switch command {
	case "check-message":
		cmdErr = app.checkMessage(ctx, args)
	case "check-refname":
		cmdErr = app.checkRefname(ctx, args)
	case "create-message":
		cmdErr = app.createMessage(ctx, args)
	case "find-tree-init-hash":
		cmdErr = app.findTreeInitHash(ctx, args)
	case "get-issue-tree-init-hashes":
		cmdErr = app.getIssueTreeInitHashes(ctx, args)
	case "get-issue-metadata":
		cmdErr = app.getIssueMetadata(ctx, args)
	case "fetch":
		cmdErr = app.fetch(ctx, args)
	case "push":
		cmdErr = app.push(ctx, args)
	case "gc":
		cmdErr = app.gc(ctx, args)
	case "mirror":
		cmdErr = app.mirror(ctx, args)
	case "list":
		cmdErr = app.list(ctx, args)
	case "new":
		cmdErr = app.new(ctx, args)
	case "reply":
		cmdErr = app.reply(ctx, args)
	case "show":
		cmdErr = app.show(ctx, args)
	case "tag":
		cmdErr = app.tag(ctx, args)
	case "import":
		cmdErr = app.importMaildir(ctx, args)
	case "completion":
		cmdErr = app.completion(ctx, args)
	default:
		cmdErr = dispatchExternal(command, args)
	}

	if cmdErr != nil {
		if !flags.Quiet {
			display.PrintError("Error", cmdErr.Error())
		}
		os.Exit(1)
	}
}

// dispatchExternal falls back to a "git-dit-<name>" binary on PATH for any
// subcommand dit itself doesn't implement, the same extensibility
// mechanism git itself uses for third-party subcommands.
func dispatchExternal(name string, args []string) error {
	bin := "git-dit-" + name
	path, err := exec.LookPath(bin)
	if err != nil {
		return fmt.Errorf("unknown subcommand %q (no %s on PATH)", name, bin)
	}
	cmd := exec.Command(path, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func printHelp() {
	fmt.Println(display.StyleTitle(fmt.Sprintf("dit %s", version.GetVersion())))
	fmt.Println("A distributed issue tracker stored in the git object database")
	fmt.Println()
	fmt.Println("Plumbing commands:")
	fmt.Println("  check-message [file]          validate a commit message's format")
	fmt.Println("  check-refname <ref>           classify a dit reference name")
	fmt.Println("  create-message [--issue <id>] [--parent <oid>]...")
	fmt.Println("                                create a commit under an issue from stdin")
	fmt.Println("  find-tree-init-hash <oid>     resolve a commit's owning issue id")
	fmt.Println("  get-issue-tree-init-hashes    list all known issue ids")
	fmt.Println("  get-issue-metadata <head> --key <trailer> [--accumulate-latest|--accumulate-list] [--values-only]")
	fmt.Println()
	fmt.Println("Porcelain commands:")
	fmt.Println("  list [-n N] [--status <v>]    list known issues")
	fmt.Println("  new                           compose a new issue")
	fmt.Println("  reply <issue>                 compose a reply to an issue")
	fmt.Println("  show <issue>                  render an issue's graph and messages")
	fmt.Println("  tag <issue> [value]           list or add the Tags trailer")
	fmt.Println("  fetch [remote]                fetch dit refs from a remote")
	fmt.Println("  push [remote]                 push dit refs to a remote")
	fmt.Println("  gc [--dry-run]                collect superseded leaf refs")
	fmt.Println("  mirror <issue> [remote] [--dry-run]")
	fmt.Println("                                clone a remote issue's head and new leaves")
	fmt.Println("  import <maildir>              stage a maildir folder (conversion unimplemented)")
	fmt.Println("  completion <bash|zsh|fish|powershell>")
	fmt.Println("                                print a shell completion script")
	fmt.Println()
	fmt.Println("Flags: --quiet --json --verbose")
}
