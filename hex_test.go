package shavanity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeHex(t *testing.T) {
	tests := []struct {
		in   string
		want []byte
	}{
		{"", []byte{}},
		{"00", []byte{0x00}},
		{"1234", []byte{0x12, 0x34}},
		{"deadBEEF", []byte{0xde, 0xad, 0xbe, 0xef}},
		{"Ff0a", []byte{0xff, 0x0a}},
	}
	for _, tt := range tests {
		got, err := DecodeHex(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestDecodeHex_Errors(t *testing.T) {
	for _, in := range []string{"g0", "0g", "12 4", "zz", "0x12"} {
		_, err := DecodeHex(in)
		assert.ErrorIs(t, err, ErrInvalidCharacter, in)
	}
	_, err := DecodeHex("123")
	assert.ErrorIs(t, err, ErrOddLength)
}

func TestHexRoundTrip(t *testing.T) {
	for _, s := range []string{
		"",
		"0123456789abcdef",
		"0123456789ABCDEF",
		"da39a3ee5e6b4b0d3255bfef95601890afd80709",
		"E3B0C44298FC1C149AFBF4C8996FB92427AE41E4649B934CA495991B7852B855",
	} {
		b, err := DecodeHex(s)
		require.NoError(t, err)
		assert.Equal(t, strings.ToLower(s), EncodeHex(b))
	}
}
