package trailer

import "testing"

func TestValueFromSlice(t *testing.T) {
	tests := []struct {
		in       string
		wantKind ValueKind
	}{
		{"42", KindInt},
		{"-7", KindInt},
		{"+3", KindInt},
		{"open", KindString},
		{" 42", KindString},
		{"42 ", KindString},
		{"4.2", KindString},
		{"", KindString},
	}
	for _, tt := range tests {
		got := ValueFromSlice(tt.in)
		if got.Kind() != tt.wantKind {
			t.Errorf("ValueFromSlice(%q).Kind() = %v, want %v", tt.in, got.Kind(), tt.wantKind)
		}
	}
}

func TestFromString(t *testing.T) {
	tr, err := FromString("Issue-status: open")
	if err != nil {
		t.Fatal(err)
	}
	if tr.Key != "Issue-status" || tr.Value.AsString() != "open" {
		t.Fatalf("got %#v", tr)
	}

	if _, err := FromString("no colon here"); err == nil {
		t.Fatal("expected error for malformed trailer")
	}
}

func TestAccumulator_Latest(t *testing.T) {
	acc := NewValueAccumulator(Latest)
	acc.Process(String("closed")) // newest processed first
	acc.Process(String("open"))
	v, ok := acc.Value()
	if !ok || v.AsString() != "closed" {
		t.Fatalf("got %v, %v", v, ok)
	}
}

func TestAccumulator_List(t *testing.T) {
	acc := NewValueAccumulator(List)
	acc.Process(String("a"))
	acc.Process(String("b"))
	vs := acc.Values()
	if len(vs) != 2 || vs[0].AsString() != "a" || vs[1].AsString() != "b" {
		t.Fatalf("got %#v", vs)
	}
}

func TestKeyedAccumulator_DropsUnknownKeys(t *testing.T) {
	k := NewKeyedAccumulator([]Spec{IssueStatusSpec}, Latest)
	k.ProcessAll([]Trailer{
		{Key: "Issue-status", Value: String("closed")},
		{Key: "Unrelated", Value: String("ignored")},
	})
	snap := k.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("expected only known keys, got %#v", snap)
	}
	if snap["Issue-status"].AsString() != "closed" {
		t.Fatalf("got %#v", snap)
	}
}

func TestFilterSet_EmptyMatchesAll(t *testing.T) {
	var fs FilterSet
	if !fs.Matches(map[string]Value{}) {
		t.Fatal("empty filter set should match everything")
	}
}

func TestFilterSet_Matches(t *testing.T) {
	fs := FilterSet{NewFilter(IssueStatusSpec, Equals(String("open")))}
	if fs.Matches(map[string]Value{"Issue-status": String("closed")}) {
		t.Fatal("should not match closed")
	}
	if !fs.Matches(map[string]Value{"Issue-status": String("open")}) {
		t.Fatal("should match open")
	}
	if fs.Matches(map[string]Value{}) {
		t.Fatal("missing key should not match")
	}
}
