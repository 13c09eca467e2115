package display

import "testing"

func TestSplitLines(t *testing.T) {
	cases := map[string][]string{
		"":            nil,
		"one":         {"one"},
		"one\ntwo":    {"one", "two"},
		"one\ntwo\n":  {"one", "two", ""},
	}
	for in, want := range cases {
		got := splitLines(in)
		if len(got) != len(want) {
			t.Fatalf("splitLines(%q) = %v, want %v", in, got, want)
		}
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("splitLines(%q)[%d] = %q, want %q", in, i, got[i], want[i])
			}
		}
	}
}

func TestRequireNonEmpty(t *testing.T) {
	if requireNonEmpty("") == nil {
		t.Fatal("expected error for empty subject")
	}
	if requireNonEmpty("fix the thing") != nil {
		t.Fatal("unexpected error for non-empty subject")
	}
}
