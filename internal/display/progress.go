package display

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ProgressTracker reports progress of a batch operation over a known or
// discovered-as-it-goes number of items — one mirrored leaf per tick for
// "dit mirror".
type ProgressTracker interface {
	Increment(message string)
	SetTotal(total int)
	Complete()
	Fail(err error)
}

// ========================================
// Bubble Tea progress (TTY)
// ========================================

type progressModel struct {
	current int
	total   int
	label   string
	message string
	done    bool
	failed  bool
	err     error
	width   int
}

func (m progressModel) Init() tea.Cmd { return nil }

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case progressIncrementMsg:
		m.current++
		m.message = msg.message
	case progressSetTotalMsg:
		m.total = msg.total
	case progressCompleteMsg:
		m.done = true
		return m, tea.Quit
	case progressFailMsg:
		m.failed = true
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.done {
		return styleSuccess.Render(fmt.Sprintf("✓ %s (%d/%d)", m.label, m.current, m.total))
	}
	if m.failed {
		return styleErr.Render(fmt.Sprintf("✗ %s (failed: %v)", m.label, m.err))
	}

	barWidth := 40
	if m.width < 80 {
		barWidth = 20
	}
	percent := 0.0
	if m.total > 0 {
		percent = float64(m.current) / float64(m.total)
	}
	filled := int(percent * float64(barWidth))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	status := fmt.Sprintf("[%s] %d/%d", bar, m.current, m.total)
	if m.message != "" {
		status += " - " + m.message
	}
	return fmt.Sprintf("%s\n%s", styleTitle.Render(m.label), status)
}

type progressIncrementMsg struct{ message string }
type progressSetTotalMsg struct{ total int }
type progressCompleteMsg struct{}
type progressFailMsg struct{ err error }

// TeaProgressTracker renders a live progress bar via bubbletea, for
// interactive mirror runs.
type TeaProgressTracker struct {
	program *tea.Program
}

// NewTeaProgressTracker starts a progress bar labeled label with an
// initial (possibly provisional) total, e.g. "Mirroring issue 9f3a2c1".
func NewTeaProgressTracker(total int, label string) *TeaProgressTracker {
	p := tea.NewProgram(progressModel{total: total, label: label, width: 80})
	t := &TeaProgressTracker{program: p}
	go func() { _, _ = p.Run() }()
	return t
}

func (t *TeaProgressTracker) Increment(message string) { t.program.Send(progressIncrementMsg{message: message}) }
func (t *TeaProgressTracker) SetTotal(total int)        { t.program.Send(progressSetTotalMsg{total: total}) }

func (t *TeaProgressTracker) Complete() {
	t.program.Send(progressCompleteMsg{})
	time.Sleep(100 * time.Millisecond)
}

func (t *TeaProgressTracker) Fail(err error) {
	t.program.Send(progressFailMsg{err: err})
	time.Sleep(100 * time.Millisecond)
}

// ========================================
// Text progress (non-TTY, e.g. piped to a log file)
// ========================================

// TextProgressTracker prints one line per increment, for non-interactive
// runs (cron, CI, piped output).
type TextProgressTracker struct {
	current int
	total   int
	label   string
}

// NewTextProgressTracker starts line-oriented progress reporting.
func NewTextProgressTracker(total int, label string) *TextProgressTracker {
	fmt.Printf("Starting: %s (0/%d)\n", label, total)
	return &TextProgressTracker{total: total, label: label}
}

func (t *TextProgressTracker) Increment(message string) {
	t.current++
	line := fmt.Sprintf("  [%d/%d]", t.current, t.total)
	if message != "" {
		line += " " + message
	}
	fmt.Println(line)
}

func (t *TextProgressTracker) SetTotal(total int) { t.total = total }
func (t *TextProgressTracker) Complete()          { fmt.Printf("✓ %s: done (%d/%d)\n", t.label, t.current, t.total) }
func (t *TextProgressTracker) Fail(err error)     { fmt.Printf("✗ %s: failed - %v\n", t.label, err) }

// ========================================
// No-op progress (quiet mode, tests)
// ========================================

// NoOpProgressTracker discards all progress events.
type NoOpProgressTracker struct{}

func (NoOpProgressTracker) Increment(string)  {}
func (NoOpProgressTracker) SetTotal(int)      {}
func (NoOpProgressTracker) Complete()         {}
func (NoOpProgressTracker) Fail(error)        {}

// NewProgressTracker picks a tracker appropriate to the output stream:
// bubbletea when stdout is a terminal, line-oriented text otherwise.
func NewProgressTracker(total int, label string, quiet bool) ProgressTracker {
	switch {
	case quiet:
		return NoOpProgressTracker{}
	case StdoutIsTTY():
		return NewTeaProgressTracker(total, label)
	default:
		return NewTextProgressTracker(total, label)
	}
}
