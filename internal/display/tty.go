package display

import (
	"os"

	"github.com/mattn/go-isatty"
)

// StdoutIsTTY reports whether stdout is a terminal, gating the pager (a
// pager only makes sense attached to a terminal; piped output should be
// plain text).
func StdoutIsTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// StdinIsTTY reports whether stdin is a terminal, gating the interactive
// composer: "dit new"/"dit reply" fall back to it only when no message was
// piped in.
func StdinIsTTY() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}
