// Package refclass classifies git reference names into dit issue
// references — component C of the dit core. Pure string-pattern
// classification into an enum, the same shape as EmundoT/git-plumbing's
// Surface/ClassifyFile (pkg/git-plumbing/surface.go), generalized from
// path-glob rules to the fixed "refs/dit/..." ref grammar.
package refclass

import (
	"strings"

	"github.com/git-dit/dit/pkg/oid"
)

// Kind is the dit-specific role of a classified reference.
type Kind int

const (
	Unknown Kind = iota
	Head
	Leaf
	// Any matches either Head or Leaf; used only as an enumeration filter,
	// never returned by Of.
	Any
)

// Locality distinguishes a local ref from one mirrored under a remote.
type Locality int

const (
	Local Locality = iota
	Remote
)

// Ref is the result of classifying a reference name.
type Ref struct {
	Name    string
	Issue   oid.Oid
	Kind    Kind
	Local   Locality
	Remote  string // remote name, only meaningful when Local == Remote
	Leaf    oid.Oid
	HasLeaf bool
}

const (
	ditPrefix     = "refs/dit/"
	remotesPrefix = "refs/remotes/"
	headSuffix    = "/head"
	leavesInfix   = "/leaves/"
)

// Of classifies a full reference name against the dit grammar (spec §4.C):
//
//	refs/dit/<id>/head                              → (Head, id, local)
//	refs/dit/<id>/leaves/<leaf>                      → (Leaf, id, local)
//	refs/remotes/<remote>/dit/<id>/head              → (Head, id, remote)
//	refs/remotes/<remote>/dit/<id>/leaves/<leaf>      → (Leaf, id, remote)
//	otherwise                                        → ok == false
//
// Of is total and pure.
func Of(name string) (Ref, bool) {
	if strings.HasPrefix(name, ditPrefix) {
		return parseDitTail(name, name[len(ditPrefix):], Local, "")
	}
	if strings.HasPrefix(name, remotesPrefix) {
		rest := name[len(remotesPrefix):]
		slash := strings.Index(rest, "/")
		if slash < 0 {
			return Ref{}, false
		}
		remoteName, tail := rest[:slash], rest[slash+1:]
		if !strings.HasPrefix(tail, "dit/") {
			return Ref{}, false
		}
		return parseDitTail(name, tail[len("dit/"):], Remote, remoteName)
	}
	return Ref{}, false
}

// parseDitTail parses the "<id>/head" or "<id>/leaves/<leaf>" portion that
// follows a "dit/" prefix, for either locality.
func parseDitTail(fullName, tail string, loc Locality, remote string) (Ref, bool) {
	slash := strings.Index(tail, "/")
	if slash < 0 {
		return Ref{}, false
	}
	idStr, rest := tail[:slash], tail[slash+1:]
	id, err := oid.Parse(idStr)
	if err != nil {
		return Ref{}, false
	}

	if rest == "head" {
		return Ref{Name: fullName, Issue: id, Kind: Head, Local: loc, Remote: remote}, true
	}
	if strings.HasPrefix(rest, "leaves/") {
		leafStr := rest[len("leaves/"):]
		if leafStr == "" || strings.Contains(leafStr, "/") {
			return Ref{}, false
		}
		leaf, err := oid.Parse(leafStr)
		if err != nil {
			return Ref{}, false
		}
		return Ref{Name: fullName, Issue: id, Kind: Leaf, Local: loc, Remote: remote, Leaf: leaf, HasLeaf: true}, true
	}
	return Ref{}, false
}

// HeadName formats the local head ref name for issue id.
func HeadName(id oid.Oid) string {
	return ditPrefix + id.String() + headSuffix
}

// LeafName formats the local leaf ref name for issue id and leaf commit.
func LeafName(id, leaf oid.Oid) string {
	return ditPrefix + id.String() + leavesInfix + leaf.String()
}

// RemoteHeadName formats the mirrored head ref name for issue id under remote.
func RemoteHeadName(remote string, id oid.Oid) string {
	return remotesPrefix + remote + "/dit/" + id.String() + headSuffix
}

// RemoteLeafName formats the mirrored leaf ref name for issue id/leaf under remote.
func RemoteLeafName(remote string, id, leaf oid.Oid) string {
	return remotesPrefix + remote + "/dit/" + id.String() + leavesInfix + leaf.String()
}

// Matches reports whether r satisfies the (kind, locality) filter used by
// repository enumeration operations. Any matches both Head and Leaf.
func (r Ref) Matches(kind Kind, loc Locality) bool {
	if r.Local != loc {
		return false
	}
	if kind == Any {
		return r.Kind == Head || r.Kind == Leaf
	}
	return r.Kind == kind
}
