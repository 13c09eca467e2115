// Package message implements the structural parse of a commit message into
// subject, body, and trailer block — component A of the dit core.
package message

import (
	"errors"
	"regexp"
	"strings"
)

// ErrMalformed is returned by CheckFormat when a message violates the
// commit-message format rules. It carries the offending input so callers
// can report it (spec §7: Malformed carries the offending input).
type ErrMalformed struct {
	Reason string
	Lines  []string
}

func (e *ErrMalformed) Error() string { return "malformed message: " + e.Reason }

// Is supports errors.Is(err, ErrMalformedMessage).
func (e *ErrMalformed) Is(target error) bool {
	return errors.Is(target, ErrMalformedMessage)
}

// ErrMalformedMessage is the sentinel matched by errors.Is against any
// *ErrMalformed.
var ErrMalformedMessage = errors.New("malformed message")

// trailerLineRe matches a single trailer-shaped line: "Key: value".
// Key is one or more letters, digits, or hyphens, per spec §3.
var trailerLineRe = regexp.MustCompile(`^[A-Za-z0-9-]+: .*$`)

// Message is the structural decomposition of a commit message (spec §3).
type Message struct {
	Subject   string
	BodyLines []string
	Trailers  []RawTrailer
}

// RawTrailer is a single parsed "Key: value" line prior to value-type
// interpretation (that step belongs to package trailer).
type RawTrailer struct {
	Key   string
	Value string
}

// Parse splits text into subject, body lines, and trailer block.
// Parse is infallible: empty text yields an empty subject, no body, and no
// trailers (spec §4.A).
func Parse(text string) Message {
	if text == "" {
		return Message{}
	}

	lines := strings.Split(text, "\n")
	// Trailing empty line from a final "\n" is not a content line.
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return Message{}
	}

	subject := strings.TrimSpace(lines[0])
	rest := lines[1:]

	trailerStart, trailers := findTrailerBlock(rest)
	bodyLines := append([]string(nil), rest[:trailerStart]...)
	bodyLines = trimBodyLines(bodyLines)

	return Message{
		Subject:   subject,
		BodyLines: bodyLines,
		Trailers:  trailers,
	}
}

// findTrailerBlock locates the last contiguous run of trailer-shaped lines
// at the end of lines, provided that run is preceded by a blank line or the
// start of the (remaining) message. It returns the index within lines where
// the trailer block begins and the parsed trailers in message order.
func findTrailerBlock(lines []string) (int, []RawTrailer) {
	n := len(lines)
	if n == 0 {
		return 0, nil
	}

	// Trim trailing blank lines — a trailer block is the *last* content.
	end := n
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	if end == 0 {
		return n, nil
	}

	start := end
	for start > 0 && trailerLineRe.MatchString(lines[start-1]) {
		start--
	}
	if start == end {
		// No trailer-shaped lines at all.
		return n, nil
	}

	// Must be preceded by a blank line or the start of the message.
	if start > 0 && strings.TrimSpace(lines[start-1]) != "" {
		return n, nil
	}

	trailers := make([]RawTrailer, 0, end-start)
	for _, l := range lines[start:end] {
		idx := strings.Index(l, ": ")
		trailers = append(trailers, RawTrailer{Key: l[:idx], Value: l[idx+2:]})
	}
	return start, trailers
}

// trimBodyLines drops leading/trailing fully-blank lines from the body,
// keeping internal structure (blank separator paragraphs) intact.
func trimBodyLines(lines []string) []string {
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	if start >= end {
		return nil
	}
	return append([]string(nil), lines[start:end]...)
}

// CheckFormat validates lines against the commit-message format rules
// (spec §4.A):
//
//  1. the first line is non-empty,
//  2. the second line, if present, is empty,
//  3. a trailer block, if present, is preceded by a blank line or the start.
//
// It returns an *ErrMalformed wrapping ErrMalformedMessage on violation.
func CheckFormat(lines []string) error {
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return &ErrMalformed{Reason: "first line must be a non-empty subject", Lines: lines}
	}
	if len(lines) > 1 && strings.TrimSpace(lines[1]) != "" {
		return &ErrMalformed{Reason: "second line must be blank", Lines: lines}
	}
	if len(lines) <= 2 {
		return nil
	}

	rest := lines[2:]
	n := len(rest)
	end := n
	for end > 0 && strings.TrimSpace(rest[end-1]) == "" {
		end--
	}
	start := end
	for start > 0 && trailerLineRe.MatchString(rest[start-1]) {
		start--
	}
	if start < end && start > 0 && strings.TrimSpace(rest[start-1]) != "" {
		return &ErrMalformed{Reason: "trailer block must be preceded by a blank line", Lines: lines}
	}
	return nil
}

// ReplySubject prepends "Re: " to subject unless it already starts with
// "Re:" (case-insensitive), making the operation idempotent (spec §4.A,
// testable property 8).
func ReplySubject(subject string) string {
	if len(subject) >= 3 && strings.EqualFold(subject[:3], "Re:") {
		return subject
	}
	return "Re: " + subject
}

// Quote prefixes each body line with "> ", turning empty lines into ">"
// (spec §4.A), for use when composing a reply that quotes the parent
// message.
func Quote(bodyLines []string) []string {
	quoted := make([]string, len(bodyLines))
	for i, l := range bodyLines {
		if l == "" {
			quoted[i] = ">"
		} else {
			quoted[i] = "> " + l
		}
	}
	return quoted
}

// Serialize renders a Message back to commit-message text, the inverse of
// Parse for any message whose parts satisfy the format rules (spec §8,
// testable property 1).
func Serialize(m Message) string {
	var b strings.Builder
	b.WriteString(m.Subject)
	b.WriteByte('\n')
	if len(m.BodyLines) > 0 {
		b.WriteByte('\n')
		b.WriteString(strings.Join(m.BodyLines, "\n"))
		b.WriteByte('\n')
	}
	if len(m.Trailers) > 0 {
		b.WriteByte('\n')
		for _, t := range m.Trailers {
			b.WriteString(t.Key)
			b.WriteString(": ")
			b.WriteString(t.Value)
			b.WriteByte('\n')
		}
	}
	return b.String()
}
