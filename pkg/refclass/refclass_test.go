package refclass

import (
	"testing"

	"github.com/git-dit/dit/pkg/oid"
)

const id40 = "0a1b2c3d4e5f60718293a4b5c6d7e8f901234567"
const leaf40 = "1111111111111111111111111111111111111111"

func TestOf_LocalHead(t *testing.T) {
	name := "refs/dit/" + id40 + "/head"
	ref, ok := Of(name)
	if !ok {
		t.Fatalf("expected match for %q", name)
	}
	if ref.Kind != Head || ref.Local != Local || ref.Issue.String() != id40 {
		t.Fatalf("got %#v", ref)
	}
}

func TestOf_LocalLeaf(t *testing.T) {
	name := "refs/dit/" + id40 + "/leaves/" + leaf40
	ref, ok := Of(name)
	if !ok {
		t.Fatalf("expected match for %q", name)
	}
	if ref.Kind != Leaf || ref.Leaf.String() != leaf40 {
		t.Fatalf("got %#v", ref)
	}
}

func TestOf_RemoteHead(t *testing.T) {
	name := "refs/remotes/origin/dit/" + id40 + "/head"
	ref, ok := Of(name)
	if !ok {
		t.Fatalf("expected match for %q", name)
	}
	if ref.Kind != Head || ref.Local != Remote || ref.Remote != "origin" {
		t.Fatalf("got %#v", ref)
	}
}

func TestOf_RemoteLeaf(t *testing.T) {
	name := "refs/remotes/upstream/dit/" + id40 + "/leaves/" + leaf40
	ref, ok := Of(name)
	if !ok {
		t.Fatalf("expected match for %q", name)
	}
	if ref.Kind != Leaf || ref.Local != Remote || ref.Remote != "upstream" || ref.Leaf.String() != leaf40 {
		t.Fatalf("got %#v", ref)
	}
}

func TestOf_NonMatching(t *testing.T) {
	cases := []string{
		"",
		"refs/heads/main",
		"refs/dit/" + id40,
		"refs/dit/not-a-hash/head",
		"refs/dit/" + id40 + "/leaves/",
		"refs/remotes/origin/heads/main",
		"refs/remotes/origin/dit/" + id40,
	}
	for _, c := range cases {
		if _, ok := Of(c); ok {
			t.Errorf("expected no match for %q", c)
		}
	}
}

func TestNameRoundTrip(t *testing.T) {
	id := oid.MustParse(id40)
	leaf := oid.MustParse(leaf40)

	names := []string{
		HeadName(id),
		LeafName(id, leaf),
		RemoteHeadName("origin", id),
		RemoteLeafName("origin", id, leaf),
	}
	for _, n := range names {
		if _, ok := Of(n); !ok {
			t.Errorf("Of(%q) did not match its own generated name", n)
		}
	}
}
