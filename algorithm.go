package shavanity

import (
	"crypto/sha1"
	"fmt"
	"hash"

	"github.com/minio/sha256-simd"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Algorithm is the digest of a git object format.
type Algorithm struct {
	name string
	size int
	new  func() hash.Hash
}

var (
	// SHA1 is git's default object format.
	SHA1 = Algorithm{"sha1", sha1.Size, sha1.New}
	// SHA256 serves repositories initialised with --object-format=sha256.
	SHA256 = Algorithm{"sha256", sha256.Size, sha256.New}
)

// LookupAlgorithm maps an object format name, as printed by `git rev-parse
// --show-object-format`, to its Algorithm. The empty name is sha1.
func LookupAlgorithm(format string) (Algorithm, error) {
	switch format {
	case "", "sha1":
		return SHA1, nil
	case "sha256":
		return SHA256, nil
	}
	return Algorithm{}, fmt.Errorf("unsupported object format %q", format)
}

func (a Algorithm) String() string { return a.name }

// Size returns the digest length in bytes.
func (a Algorithm) Size() int { return a.size }

// New returns a fresh hash.Hash for this algorithm.
func (a Algorithm) New() hash.Hash { return a.new() }

// Sum returns the digest of buf.
func (a Algorithm) Sum(buf []byte) []byte {
	h := a.new()
	h.Write(buf)
	return h.Sum(nil)
}

// SumHex returns the digest of buf as lowercase hex text, the form git uses for object ids.
func (a Algorithm) SumHex(buf []byte) string { return EncodeHex(a.Sum(buf)) }

func (a Algorithm) valid() bool { return a.new != nil }
