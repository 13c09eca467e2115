package main

import (
	"strings"
	"testing"
)

func TestGenerateBashCompletion(t *testing.T) {
	script := generateBashCompletion()

	if !strings.Contains(script, "# bash completion for dit") {
		t.Error("expected bash completion header")
	}
	if !strings.Contains(script, "complete -F _dit_completions dit") {
		t.Error("expected bash complete registration")
	}
	for _, cmd := range ditCommands {
		if !strings.Contains(script, cmd) {
			t.Errorf("expected command %q in bash completion", cmd)
		}
	}
	if !strings.Contains(script, "--accumulate-latest") {
		t.Error("expected get-issue-metadata flags in bash completion")
	}
}

func TestGenerateZshCompletion(t *testing.T) {
	script := generateZshCompletion()
	if !strings.Contains(script, "#compdef dit") {
		t.Error("expected zsh compdef header")
	}
	if !strings.Contains(script, "'show:Render an issue's graph and messages'") {
		t.Error("expected show command description")
	}
}

func TestGenerateFishCompletion(t *testing.T) {
	script := generateFishCompletion()
	if !strings.Contains(script, "complete -c dit -f -n '__fish_use_subcommand' -a 'mirror'") {
		t.Error("expected mirror subcommand completion")
	}
}

func TestGeneratePowerShellCompletion(t *testing.T) {
	script := generatePowerShellCompletion()
	if !strings.Contains(script, "Register-ArgumentCompleter -Native -CommandName dit") {
		t.Error("expected PowerShell argument completer registration")
	}
}

func TestCompletion_UnsupportedShell(t *testing.T) {
	a := &app{}
	if err := a.completion(nil, []string{"tcsh"}); err == nil {
		t.Error("expected error for unsupported shell")
	}
}
