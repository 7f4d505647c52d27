package fibonacci

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fumin/lzwuc/bitstream"
)

func bitString(s *bitstream.Stream) string {
	var sb strings.Builder
	for i := 0; i < s.Len(); i++ {
		b, _ := s.Get(i)
		sb.WriteByte(byte('0' + b))
	}
	return sb.String()
}

func TestCodewords(t *testing.T) {
	var tests = []struct {
		v    uint64
		want string
	}{
		{0, "11"},
		{1, "011"},
		{2, "0011"},
		{3, "1011"},
		{4, "00011"},
		{6, "01011"},
		{10, "001011"},
		{12, "0000011"},
	}
	for _, tt := range tests {
		e := NewEncoder()
		e.Encode(tt.v)
		require.Equal(t, tt.want, bitString(e.Stream()), "value %d", tt.v)
	}
}

func TestTable(t *testing.T) {
	tb := newTable()
	require.Equal(t, uint64(1), tb.weight(1))
	require.Equal(t, uint64(2), tb.weight(2))
	require.Equal(t, uint64(3), tb.weight(3))
	require.Equal(t, uint64(5), tb.weight(4))
	require.Equal(t, uint64(12200160415121876738), tb.weight(maxPosition))

	require.Equal(t, 1, tb.largest(1))
	require.Equal(t, 4, tb.largest(7))
	require.Equal(t, 5, tb.largest(8))
	require.Equal(t, maxPosition, tb.largest(1<<64-1))
}

func TestNoAdjacentOnes(t *testing.T) {
	e := NewEncoder()
	for v := uint64(0); v < 2000; v++ {
		e.Encode(v)
	}
	all := bitString(e.Stream())
	d := NewDecoder(e.Stream())
	for v := uint64(0); v < 2000; v++ {
		start := d.Index()
		got, ok := d.Decode()
		require.True(t, ok)
		require.Equal(t, v, got)

		code := all[start:d.Index()]
		require.True(t, strings.HasSuffix(code, "11"))
		require.NotContains(t, code[:len(code)-1], "11", "value %d", v)
	}
}

func TestOverflow(t *testing.T) {
	s := bitstream.New()
	for i := 0; i < maxPosition; i++ {
		s.Push(0)
	}
	s.Push(1)
	s.Push(1)

	d := NewDecoder(s)
	_, ok := d.Decode()
	require.False(t, ok)
	require.ErrorIs(t, d.Err(), bitstream.ErrOverflow)
}
