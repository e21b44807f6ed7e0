package shavanity

import (
	"bytes"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const commitBody = "tree 4b825dc642cb6eb9a060e54bf8d69288fbee4904\n" +
	"author A U Thor <author@example.com> 1112911993 -0700\n" +
	"committer C O Mitter <committer@example.com> 1112911993 -0700\n" +
	"\n" +
	"initial\n\nsecond paragraph\n"

func commitObject(body string) []byte {
	return []byte(fmt.Sprintf("commit %d\x00%s", len(body), body))
}

func TestPrepare(t *testing.T) {
	p, err := Prepare(commitObject(commitBody))
	require.NoError(t, err)

	headers, message, _ := bytes.Cut([]byte(commitBody), []byte("\n\n"))
	body := string(headers) + CounterHeader + "\n\n" + string(message)
	want := "commit " + strconv.Itoa(len(body)) + "\x00" + body
	assert.Equal(t, want, string(p.Buffer))
	assert.Equal(t, len(commitBody)+len(CounterHeader), len(body))

	assert.Equal(t, "0000000000000000", string(p.Buffer[p.Offset:p.Offset+CounterDigits]))
	assert.Equal(t, "\nbruteforce ", string(p.Buffer[p.Offset-len("\nbruteforce "):p.Offset]))
	assert.Equal(t, "\n\n\n", string(p.Buffer[p.Offset+CounterDigits:p.Offset+CounterDigits+3]))
	counter, ok := p.Counter()
	assert.True(t, ok)
	assert.Zero(t, counter)
}

func TestPrepare_Minimal(t *testing.T) {
	p, err := Prepare([]byte("commit 14\x00tree 0000\n\nmsg"))
	require.NoError(t, err)
	assert.Equal(t, "commit 43\x00tree 0000\nbruteforce 0000000000000000\n\n\nmsg", string(p.Buffer))
	assert.Equal(t, len("commit 43\x00tree 0000\nbruteforce "), p.Offset)
}

func TestPrepare_LengthIgnoresStaleHeader(t *testing.T) {
	/* The outer length is always recomputed from the body. */
	p, err := Prepare([]byte("commit 999\x00tree 0000\n\nmsg"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(p.Buffer, []byte("commit 43\x00")))
}

func TestPrepare_SplitsAtFirstBlankLine(t *testing.T) {
	p, err := Prepare(commitObject("tree 0\n\nsubject\n\nbody\n"))
	require.NoError(t, err)
	assert.Equal(t, "tree 0"+CounterHeader+"\n\nsubject\n\nbody\n",
		string(p.Buffer[bytes.IndexByte(p.Buffer, 0)+1:]))
}

func TestPrepare_NonUTF8(t *testing.T) {
	body := "tree 0\nencoding ISO-8859-1\n\nna\xefve\n"
	p, err := Prepare(commitObject(body))
	require.NoError(t, err)
	assert.True(t, bytes.HasSuffix(p.Buffer, []byte("\n\n\nna\xefve\n")))
}

func TestPrepare_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		err  error
	}{
		{"no terminator", "commit 10 tree 0\n\nmsg", ErrMalformedObject},
		{"empty", "", ErrMalformedObject},
		{"blob", "blob 3\x00abc", ErrNotACommit},
		{"tree", "tree 0\x00", ErrNotACommit},
		{"no blank line", "commit 6\x00tree 0", ErrMalformedObject},
		{"message only", "commit 3\x00msg", ErrMalformedObject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Prepare([]byte(tt.raw))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestPrepare_DoesNotModifyInput(t *testing.T) {
	raw := commitObject(commitBody)
	orig := append([]byte(nil), raw...)
	p, err := Prepare(raw)
	require.NoError(t, err)
	WriteCounter(p.Buffer, p.Offset, 0xdead)
	assert.Equal(t, orig, raw)
}

func TestPrepared_Clone(t *testing.T) {
	p, err := Prepare(commitObject(commitBody))
	require.NoError(t, err)
	c := p.Clone()
	WriteCounter(c.Buffer, c.Offset, 42)
	counter, _ := p.Counter()
	assert.Zero(t, counter)
	counter, _ = c.Counter()
	assert.Equal(t, uint64(42), counter)
}
