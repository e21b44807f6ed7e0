// Package shavanity rewrites git commits so that their object ids begin with a chosen hex prefix.
//
// A header line "bruteforce <16 hex digits>" is inserted after the commit's existing headers and
// its digits are varied by parallel workers until the commit's digest matches. Everything else in
// the commit (tree, parents, author, message) is kept byte for byte.
package shavanity

import "context"

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Forge prepares the raw commit object raw and searches it for a digest starting with prefix, an
// odd or even number of hex characters. Invalid prefixes and malformed objects are reported
// before any hashing starts.
func (s *Searcher) Forge(ctx context.Context, raw []byte, prefix string) (Result, error) {
	alg := s.Algorithm
	if !alg.valid() {
		alg = SHA1
	}
	t, err := ParseTarget(prefix, alg.Size())
	if err != nil {
		return Result{}, err
	}
	p, err := Prepare(raw)
	if err != nil {
		return Result{}, err
	}
	return s.Search(ctx, p, t)
}
