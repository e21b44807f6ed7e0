package shavanity

import (
	"encoding/hex"
	"fmt"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const hexTable = "0123456789abcdef"

// DecodeHex converts hexadecimal text to bytes, most-significant nibble first. Both cases are
// accepted. Odd-length input is rejected; see ParseTarget for the padded form.
func DecodeHex(s string) ([]byte, error) {
	if len(s)&1 != 0 {
		return nil, fmt.Errorf("%w: %d characters", ErrOddLength, len(s))
	}
	buf := make([]byte, len(s)>>1)
	for i := 0; i < len(s); i += 2 {
		hi, ok1 := fromHexChar(s[i])
		lo, ok2 := fromHexChar(s[i+1])
		switch {
		case !ok1:
			return nil, fmt.Errorf("%w: %q at %d", ErrInvalidCharacter, s[i], i)
		case !ok2:
			return nil, fmt.Errorf("%w: %q at %d", ErrInvalidCharacter, s[i+1], i+1)
		}
		buf[i>>1] = hi<<4 | lo
	}
	return buf, nil
}

// EncodeHex renders b as lowercase hexadecimal text.
func EncodeHex(b []byte) string { return hex.EncodeToString(b) }

func fromHexChar(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
