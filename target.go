package shavanity

import (
	"bytes"
	"fmt"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Target is a digest prefix to search for. When Half is set the prefix was requested with an odd
// number of hex characters, and the low nibble of the last byte is padding that Match ignores.
type Target struct {
	Prefix []byte
	Half   bool
}

// ParseTarget validates prefix as hex text no longer than a digest of size bytes and returns the
// matching Target. Odd-length input is padded with a trailing '0' and flagged Half. The empty
// prefix is legal and matches every digest.
func ParseTarget(prefix string, size int) (Target, error) {
	if len(prefix) > size<<1 {
		return Target{}, fmt.Errorf("%w: %d hex characters, at most %d allowed",
			ErrInvalidPrefix, len(prefix), size<<1)
	}
	half := len(prefix)&1 != 0
	if half {
		prefix += "0"
	}
	b, err := DecodeHex(prefix)
	if err != nil {
		return Target{}, fmt.Errorf("%w: %w", ErrInvalidPrefix, err)
	}
	return Target{Prefix: b, Half: half}, nil
}

// Match reports whether digest begins with the target prefix. Digests shorter than the prefix
// never match.
func (t Target) Match(digest []byte) bool {
	n := len(t.Prefix)
	if n == 0 {
		return true
	}
	if len(digest) < n {
		return false
	}
	if !t.Half {
		return bytes.Equal(digest[:n], t.Prefix)
	}
	return bytes.Equal(digest[:n-1], t.Prefix[:n-1]) && digest[n-1]>>4 == t.Prefix[n-1]>>4
}

// Len returns the prefix length in hex characters.
func (t Target) Len() int {
	if t.Half && len(t.Prefix) > 0 {
		return len(t.Prefix)<<1 - 1
	}
	return len(t.Prefix) << 1
}

func (t Target) String() string {
	return EncodeHex(t.Prefix)[:t.Len()]
}
