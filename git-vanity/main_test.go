package main

import (
	"testing"
	"time"

	"github.com/p7r0x7/shavanity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

func TestParsePrefix(t *testing.T) {
	for _, prefix := range []string{"", "xyz", "0123456789012345678901234567890123456789a"} {
		_, err := parsePrefix(prefix, shavanity.SHA1.Size())
		assert.ErrorIs(t, err, shavanity.ErrInvalidPrefix, "%q", prefix)
	}

	target, err := parsePrefix("c0ffee", shavanity.SHA1.Size())
	require.NoError(t, err)
	assert.Equal(t, "c0ffee", target.String())
	target, err = parsePrefix("abc", shavanity.SHA256.Size())
	require.NoError(t, err)
	assert.True(t, target.Half)
}

func TestFmtRate(t *testing.T) {
	assert.Equal(t, "∞ H/s", fmtRate(10, 0))
	assert.Equal(t, "500 H/s", fmtRate(500, time.Second))
	assert.Equal(t, "2.5 MH/s", fmtRate(2_500_000, time.Second))
}
