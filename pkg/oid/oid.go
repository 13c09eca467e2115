// Package oid defines the content-addressed object id used throughout dit.
//
// An Oid is an opaque, fixed-width hash provided by the underlying object
// store (git). dit never computes hashes itself; it only parses, compares,
// and formats the hex strings git prints.
package oid

import (
	"encoding/hex"
	"errors"
	"strings"
)

// ErrInvalid is returned when a string does not look like a hex object id.
var ErrInvalid = errors.New("oid: not a valid object id")

// Oid is an opaque content hash. Equality and ordering are bytewise, which
// for hex-encoded SHA hashes is equivalent to lexicographic string ordering.
type Oid struct {
	hex string
}

// Zero is the nil/empty Oid.
var Zero = Oid{}

// Parse validates s as lowercase hex of either SHA-1 (40 chars) or SHA-256
// (64 chars) width — the two hash widths git repositories use — and
// returns the corresponding Oid.
func Parse(s string) (Oid, error) {
	s = strings.TrimSpace(s)
	if len(s) != 40 && len(s) != 64 {
		return Oid{}, ErrInvalid
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		default:
			return Oid{}, ErrInvalid
		}
	}
	return Oid{hex: s}, nil
}

// MustParse is Parse but panics on error; for use with literal constants
// in tests.
func MustParse(s string) Oid {
	o, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return o
}

// IsZero reports whether o is the zero value (no object).
func (o Oid) IsZero() bool { return o.hex == "" }

// String returns the lowercase hex representation.
func (o Oid) String() string { return o.hex }

// Equal reports bytewise equality.
func (o Oid) Equal(other Oid) bool { return o.hex == other.hex }

// Less reports whether o sorts before other, bytewise.
func (o Oid) Less(other Oid) bool { return o.hex < other.hex }

// Bytes decodes the hex string to raw bytes.
func (o Oid) Bytes() []byte {
	b, _ := hex.DecodeString(o.hex)
	return b
}

// LooksLikeOid reports whether s has the right shape to be a hex object id,
// without fully validating character-by-character (cheap pre-filter for
// ref-name classification).
func LooksLikeOid(s string) bool {
	return len(s) == 40 || len(s) == 64
}
