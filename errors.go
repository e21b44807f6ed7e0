package shavanity

import "errors"

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

var (
	// ErrInvalidPrefix is returned for a requested prefix that is not hex or that is longer than
	// the digest it should be matched against.
	ErrInvalidPrefix = errors.New("invalid digest prefix")

	// ErrInvalidCharacter is returned by DecodeHex for any byte outside [0-9a-fA-F].
	ErrInvalidCharacter = errors.New("invalid hex character")

	// ErrOddLength is returned by DecodeHex for odd-length input; callers pad first.
	ErrOddLength = errors.New("odd length hex string")

	ErrNotACommit      = errors.New("object is not a commit")
	ErrMalformedObject = errors.New("malformed object")
)
