package shavanity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteCounter(t *testing.T) {
	buf := []byte("xxxxyyyyyyyyyyyyyyyy")
	tests := []struct {
		value uint64
		want  string
	}{
		{0, "xxxx0000000000000000"},
		{1, "xxxx1000000000000000"},
		{17, "xxxx1100000000000000"},
		{0xefff_ffff_ffff_ffff, "xxxxfffffffffffffffe"},
		{0x0123_4567_89ab_cdef, "xxxxfedcba9876543210"},
	}
	for _, tt := range tests {
		WriteCounter(buf, 4, tt.value)
		assert.Equal(t, tt.want, string(buf))
	}
}

func TestWriteCounter_LeavesNeighbours(t *testing.T) {
	buf := []byte("ab" + "................" + "cd")
	WriteCounter(buf, 2, ^uint64(0))
	assert.Equal(t, "abffffffffffffffffcd", string(buf))
}

func TestReadCounter(t *testing.T) {
	buf := make([]byte, 24)
	for _, v := range []uint64{0, 1, 17, 0xefff_ffff_ffff_ffff, 0x0123_4567_89ab_cdef, ^uint64(0)} {
		WriteCounter(buf, 3, v)
		got, ok := ReadCounter(buf, 3)
		assert.True(t, ok)
		assert.Equal(t, v, got)
	}

	copy(buf[3:], "000000000000000G")
	_, ok := ReadCounter(buf, 3)
	assert.False(t, ok)
	copy(buf[3:], "A000000000000000")
	_, ok = ReadCounter(buf, 3)
	assert.False(t, ok)
}

func BenchmarkWriteCounter(b *testing.B) {
	buf := make([]byte, CounterDigits)
	b.ReportAllocs()
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		WriteCounter(buf, 0, uint64(i))
	}
}
