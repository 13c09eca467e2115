// Package display is the CLI's rendering layer: colored status lines,
// progress rendering for long-running mirror operations, TTY
// detection gating the interactive composer and the pager, and the
// interactive message composer itself.
package display

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	styleErr     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500"))
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// PrintError writes one styled error line to stderr: "✖ title: message".
func PrintError(title, msg string) { fmt.Fprintln(os.Stderr, styleErr.Render("✖ "+title+": "+msg)) }

// PrintSuccess writes a styled success line.
func PrintSuccess(msg string) { fmt.Println(styleSuccess.Render("✔ " + msg)) }

// PrintWarning writes a styled warning line.
func PrintWarning(title, msg string) { fmt.Println(styleWarn.Render("! " + title)); fmt.Println(msg) }

// PrintInfo writes a dim informational line.
func PrintInfo(msg string) { fmt.Println(styleDim.Render(msg)) }

// StyleTitle applies title styling to text, for headers like issue
// subjects in "dit show".
func StyleTitle(text string) string { return styleTitle.Render(text) }
