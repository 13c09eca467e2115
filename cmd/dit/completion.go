package main

import (
	"context"
	"fmt"
	"strings"
)

// ditCommands lists every dit subcommand for shell completion generators.
var ditCommands = []string{
	"check-message",
	"check-refname",
	"create-message",
	"find-tree-init-hash",
	"get-issue-tree-init-hashes",
	"get-issue-metadata",
	"list",
	"new",
	"reply",
	"show",
	"tag",
	"fetch",
	"push",
	"gc",
	"mirror",
	"import",
	"completion",
	"help",
}

// commandFlags returns the flag/value completions offered after a given
// subcommand, keyed the same way the teacher's per-command case switch is.
func commandFlags(cmd string) string {
	switch cmd {
	case "check-message":
		return ""
	case "create-message":
		return "--issue --parent"
	case "get-issue-metadata":
		return "--key --accumulate-latest --accumulate-list --values-only"
	case "list":
		return "-n --status"
	case "gc":
		return "--dry-run --consider-remote-refs"
	case "mirror":
		return "--dry-run"
	case "fetch", "push":
		return ""
	case "completion":
		return "bash zsh fish powershell"
	default:
		return "--quiet --json --verbose"
	}
}

func commandDescription(cmd string) string {
	descriptions := map[string]string{
		"check-message":              "Validate a commit message's format",
		"check-refname":              "Classify a dit reference name",
		"create-message":             "Create a commit under an issue from stdin",
		"find-tree-init-hash":        "Resolve a commit's owning issue id",
		"get-issue-tree-init-hashes": "List all known issue ids",
		"get-issue-metadata":         "Accumulate a trailer across an issue's messages",
		"list":                       "List known issues",
		"new":                        "Compose a new issue",
		"reply":                      "Compose a reply to an issue",
		"show":                       "Render an issue's graph and messages",
		"tag":                        "List or add the Tags trailer",
		"fetch":                      "Fetch dit refs from a remote",
		"push":                       "Push dit refs to a remote",
		"gc":                         "Collect superseded leaf refs",
		"mirror":                     "Clone a remote issue's head and new leaves",
		"import":                     "Stage a maildir folder",
		"completion":                 "Generate shell completion script",
		"help":                       "Show help information",
	}
	return descriptions[cmd]
}

// generateBashCompletion writes a bash completion function for dit.
func generateBashCompletion() string {
	var cases strings.Builder
	for _, cmd := range ditCommands {
		fmt.Fprintf(&cases, "        %s)\n            opts=\"%s\"\n            ;;\n", cmd, commandFlags(cmd))
	}
	return fmt.Sprintf(`# bash completion for dit
_dit_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%s"

    case "${prev}" in
%s    esac

    COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
    return 0
}

complete -F _dit_completions dit
`, strings.Join(ditCommands, " "), cases.String())
}

// generateZshCompletion writes a zsh completion function for dit.
func generateZshCompletion() string {
	entries := make([]string, len(ditCommands))
	for i, cmd := range ditCommands {
		entries[i] = fmt.Sprintf("    '%s:%s'", cmd, commandDescription(cmd))
	}
	return fmt.Sprintf(`#compdef dit

_dit() {
    local -a commands
    commands=(
%s
    )
    _arguments -C '1: :->command' '*::arg:->args'
    case $state in
        command) _describe 'command' commands ;;
    esac
}

_dit "$@"
`, strings.Join(entries, "\n"))
}

// generateFishCompletion writes fish completions for dit.
func generateFishCompletion() string {
	var lines []string
	for _, cmd := range ditCommands {
		lines = append(lines, fmt.Sprintf("complete -c dit -f -n '__fish_use_subcommand' -a '%s' -d '%s'", cmd, commandDescription(cmd)))
	}
	return strings.Join(lines, "\n")
}

// generatePowerShellCompletion writes a PowerShell argument completer for dit.
func generatePowerShellCompletion() string {
	quoted := make([]string, len(ditCommands))
	for i, cmd := range ditCommands {
		quoted[i] = fmt.Sprintf("'%s'", cmd)
	}
	return fmt.Sprintf(`Register-ArgumentCompleter -Native -CommandName dit -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)
    $commands = @(%s)
    $commands | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
    }
}
`, strings.Join(quoted, ", "))
}

// completion prints a shell completion script for the named shell.
func (a *app) completion(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: dit completion <bash|zsh|fish|powershell>")
	}
	switch args[0] {
	case "bash":
		fmt.Print(generateBashCompletion())
	case "zsh":
		fmt.Print(generateZshCompletion())
	case "fish":
		fmt.Print(generateFishCompletion())
	case "powershell":
		fmt.Print(generatePowerShellCompletion())
	default:
		return fmt.Errorf("unsupported shell %q", args[0])
	}
	return nil
}
