package shavanity

import (
	"bytes"
	"fmt"
	"strconv"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const (
	// CounterHeader is the synthetic header line injected after a commit's existing headers. Its
	// zeroes are the counter field rewritten by the search.
	CounterHeader = "\nbruteforce 0000000000000000\n"
	counterLead   = len("\nbruteforce ")
	commitTag     = "commit "
	separator     = "\n\n"
)

// Prepared is a commit object, outer header included, carrying a counter field at Offset.
type Prepared struct {
	Buffer []byte
	Offset int
}

// Prepare rewrites the raw commit object raw, as hashed by git ("commit <len>\x00" then the
// body), inserting CounterHeader between the existing headers and the blank line that precedes
// the message. The outer length is recomputed. raw is not modified and need not be UTF-8.
func Prepare(raw []byte) (Prepared, error) {
	header, body, ok := bytes.Cut(raw, []byte{0})
	if !ok {
		return Prepared{}, fmt.Errorf("%w: no object header terminator", ErrMalformedObject)
	}
	if !bytes.HasPrefix(header, []byte(commitTag)) {
		return Prepared{}, fmt.Errorf("%w: header %q", ErrNotACommit, clip(header, 32))
	}
	headers, message, ok := bytes.Cut(body, []byte(separator))
	if !ok {
		return Prepared{}, fmt.Errorf("%w: no blank line between headers and message",
			ErrMalformedObject)
	}

	length := len(body) + len(CounterHeader)
	buf := make([]byte, 0, len(commitTag)+20+1+length)
	buf = append(buf, commitTag...)
	buf = strconv.AppendInt(buf, int64(length), 10)
	buf = append(buf, 0)
	buf = append(buf, headers...)
	offset := len(buf) + counterLead
	buf = append(buf, CounterHeader...)
	buf = append(buf, separator...)
	buf = append(buf, message...)
	return Prepared{Buffer: buf, Offset: offset}, nil
}

// Clone returns a copy of p that shares no memory with it.
func (p Prepared) Clone() Prepared {
	return Prepared{Buffer: append([]byte(nil), p.Buffer...), Offset: p.Offset}
}

// Counter returns the value currently written in the counter field.
func (p Prepared) Counter() (uint64, bool) { return ReadCounter(p.Buffer, p.Offset) }

func clip(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}
