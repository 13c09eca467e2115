// Package trailer implements the typed key/value trailer model, per-key
// accumulation policies, and filter matching — component B of the dit core.
package trailer

import (
	"errors"
	"strconv"
	"strings"

	"github.com/git-dit/dit/pkg/message"
)

// ErrMalformed is returned when a raw "Key: value" line cannot be parsed
// into a Trailer.
var ErrMalformed = errors.New("trailer: malformed")

// ValueKind distinguishes the two TrailerValue variants.
type ValueKind int

const (
	KindString ValueKind = iota
	KindInt
)

// Value is the tagged (String | Int) trailer value variant (spec §3).
type Value struct {
	kind ValueKind
	str  string
	i    int64
}

// String constructs a string-valued Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Int constructs an int-valued Value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Kind reports which variant v holds.
func (v Value) Kind() ValueKind { return v.kind }

// AsString returns the string form of v regardless of kind (round-trips
// through strconv for KindInt).
func (v Value) AsString() string {
	if v.kind == KindInt {
		return strconv.FormatInt(v.i, 10)
	}
	return v.str
}

// AsInt returns the int64 value and true if v is KindInt.
func (v Value) AsInt() (int64, bool) {
	if v.kind == KindInt {
		return v.i, true
	}
	return 0, false
}

// Equal compares two Values by kind and content.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	if v.kind == KindInt {
		return v.i == other.i
	}
	return v.str == other.str
}

// ValueFromSlice parses s as a TrailerValue: an integer if s parses cleanly
// as a signed decimal with no leading/trailing whitespace, otherwise a
// string (spec §4.B).
func ValueFromSlice(s string) Value {
	if looksLikeCleanInt(s) {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Int(i)
		}
	}
	return String(s)
}

// looksLikeCleanInt reports whether s is an optional "+" or "-" sign
// followed by one or more ASCII digits, with no surrounding whitespace,
// before s is handed to strconv.
func looksLikeCleanInt(s string) bool {
	if s == "" {
		return false
	}
	if strings.TrimSpace(s) != s {
		return false
	}
	i := 0
	if s[0] == '-' || s[0] == '+' {
		i++
	}
	if i == len(s) {
		return false
	}
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Trailer is a single (key, value) pair.
type Trailer struct {
	Key   string
	Value Value
}

// FromString parses a single "Key: value" line into a Trailer.
func FromString(line string) (Trailer, error) {
	idx := strings.Index(line, ": ")
	if idx < 1 {
		return Trailer{}, ErrMalformed
	}
	key := line[:idx]
	for i, r := range key {
		isLetterDigitHyphen := (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') ||
			(r >= '0' && r <= '9') || r == '-'
		if !isLetterDigitHyphen {
			return Trailer{}, ErrMalformed
		}
		_ = i
	}
	return Trailer{Key: key, Value: ValueFromSlice(line[idx+2:])}, nil
}

// FromRaw converts a message.RawTrailer (already split on the first ": ")
// into a typed Trailer.
func FromRaw(r message.RawTrailer) Trailer {
	return Trailer{Key: r.Key, Value: ValueFromSlice(r.Value)}
}

// FromMessage extracts and type-converts every trailer in a parsed message,
// in the order they appear.
func FromMessage(m message.Message) []Trailer {
	out := make([]Trailer, 0, len(m.Trailers))
	for _, r := range m.Trailers {
		out = append(out, FromRaw(r))
	}
	return out
}

// Spec declares an expected trailer's name and value shape (spec §3).
type Spec struct {
	Key  string
	Kind ValueKind
}

// Well-known specs (spec §3).
var (
	IssueStatusSpec = Spec{Key: "Issue-status", Kind: KindString}
	IssueTypeSpec   = Spec{Key: "Issue-type", Kind: KindString}
)
