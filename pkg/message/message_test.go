package message

import (
	"reflect"
	"testing"
)

func TestParse_WithTrailers(t *testing.T) {
	in := "Fix bug\n\nBody line\n\nSigned-off-by: A <a@x>\nIssue-status: open\n"
	got := Parse(in)

	if got.Subject != "Fix bug" {
		t.Fatalf("subject = %q", got.Subject)
	}
	if !reflect.DeepEqual(got.BodyLines, []string{"Body line"}) {
		t.Fatalf("body = %#v", got.BodyLines)
	}
	want := []RawTrailer{
		{Key: "Signed-off-by", Value: "A <a@x>"},
		{Key: "Issue-status", Value: "open"},
	}
	if !reflect.DeepEqual(got.Trailers, want) {
		t.Fatalf("trailers = %#v", got.Trailers)
	}
}

func TestParse_Empty(t *testing.T) {
	got := Parse("")
	if got.Subject != "" || got.BodyLines != nil || got.Trailers != nil {
		t.Fatalf("expected zero value, got %#v", got)
	}
}

func TestParse_SubjectOnly(t *testing.T) {
	got := Parse("just a subject")
	if got.Subject != "just a subject" {
		t.Fatalf("subject = %q", got.Subject)
	}
	if got.BodyLines != nil || got.Trailers != nil {
		t.Fatalf("expected no body/trailers, got %#v", got)
	}
}

func TestParse_NoBlankBeforeTrailerBlock(t *testing.T) {
	// A paragraph whose last line accidentally looks like a trailer, but is
	// not preceded by a blank line, must not be treated as a trailer block
	// (spec §9 — open question, pinned here per spec's mandated rule).
	in := "Subject\n\nSome text\nKey: value\n"
	got := Parse(in)
	if got.Trailers != nil {
		t.Fatalf("expected no trailers, got %#v", got.Trailers)
	}
	if !reflect.DeepEqual(got.BodyLines, []string{"Some text", "Key: value"}) {
		t.Fatalf("body = %#v", got.BodyLines)
	}
}

func TestParseSerializeRoundTrip(t *testing.T) {
	cases := []string{
		"Subject\n",
		"Subject\n\nBody line one\nBody line two\n",
		"Subject\n\nBody\n\nKey: value\nOther-Key: 42\n",
		"Subject\n\nKey: value\n",
	}
	for _, in := range cases {
		m := Parse(in)
		if err := CheckFormat(splitPreservingTrailingNewline(in)); err != nil {
			t.Fatalf("CheckFormat(%q): %v", in, err)
		}
		out := Serialize(m)
		if out != in {
			t.Fatalf("round trip mismatch: in=%q out=%q (parsed=%#v)", in, out, m)
		}
	}
}

func splitPreservingTrailingNewline(s string) []string {
	m := Parse(s)
	lines := []string{m.Subject}
	if len(m.BodyLines) > 0 || len(m.Trailers) > 0 {
		lines = append(lines, "")
		lines = append(lines, m.BodyLines...)
	}
	if len(m.Trailers) > 0 {
		lines = append(lines, "")
		for _, tr := range m.Trailers {
			lines = append(lines, tr.Key+": "+tr.Value)
		}
	}
	return lines
}

func TestCheckFormat(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		wantErr bool
	}{
		{"empty first line", []string{""}, true},
		{"second line not blank", []string{"subject", "not blank"}, true},
		{"ok minimal", []string{"subject"}, false},
		{"ok with body", []string{"subject", "", "body"}, false},
		{"trailer without blank line", []string{"subject", "", "text", "Key: value"}, true},
		{"trailer with blank line", []string{"subject", "", "text", "", "Key: value"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckFormat(tt.lines)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckFormat(%#v) error = %v, wantErr %v", tt.lines, err, tt.wantErr)
			}
		})
	}
}

func TestReplySubject_Idempotent(t *testing.T) {
	cases := []string{"Fix bug", "Re: Fix bug", "re: lower case", "RE: shout"}
	for _, c := range cases {
		once := ReplySubject(c)
		twice := ReplySubject(once)
		if once != twice {
			t.Fatalf("not idempotent: once=%q twice=%q", once, twice)
		}
	}
	if got := ReplySubject("Fix bug"); got != "Re: Fix bug" {
		t.Fatalf("got %q", got)
	}
}

func TestQuote(t *testing.T) {
	got := Quote([]string{"hello", "", "world"})
	want := []string{"> hello", ">", "> world"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v want %#v", got, want)
	}
}
