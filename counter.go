package shavanity

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// CounterDigits is the width of the counter field in bytes of hex text.
const CounterDigits = 16

// WriteCounter writes value into buf[offset:offset+16] as lowercase hex, least-significant nibble
// first: nibble i of value lands at buf[offset+i]. So 1 renders as "1000000000000000" and 17 as
// "1100000000000000". This ordering is fixed; already-forged commits depend on it.
func WriteCounter(buf []byte, offset int, value uint64) {
	field := buf[offset : offset+CounterDigits : offset+CounterDigits] /* Bounds check hoisted. */
	for i := range field {
		field[i] = hexTable[(value>>(uint(i)<<2))&0xf]
	}
}

// ReadCounter is the inverse of WriteCounter. It reports false if the field holds anything but
// lowercase hex digits.
func ReadCounter(buf []byte, offset int) (uint64, bool) {
	var value uint64
	for i, c := range buf[offset : offset+CounterDigits] {
		if 'A' <= c && c <= 'F' {
			return 0, false
		}
		n, ok := fromHexChar(c)
		if !ok {
			return 0, false
		}
		value |= uint64(n) << (uint(i) << 2)
	}
	return value, true
}
