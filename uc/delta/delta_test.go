package delta

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fumin/lzwuc/bitstream"
	"github.com/fumin/lzwuc/uc/gamma"
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
		{0, "1"},
		{1, "0100"},
		{2, "0101"},
		{3, "01100"},
		{9, "00100010"},
		{16, "001010001"},
	}
	for _, tt := range tests {
		e := NewEncoder()
		e.Encode(tt.v)
		require.Equal(t, tt.want, bitString(e.Stream()), "value %d", tt.v)
	}
}

func TestLengthFieldOverflow(t *testing.T) {
	// A length field of 65 cannot describe a 64 bit value.
	s := bitstream.New()
	gamma.Append(s, 65)
	s.PushBits(0, 64)

	d := NewDecoder(s)
	_, ok := d.Decode()
	require.False(t, ok)
	require.ErrorIs(t, d.Err(), bitstream.ErrOverflow)
}

func TestHighBit(t *testing.T) {
	for _, v := range []uint64{1<<63 - 1, 1 << 63, 1<<64 - 2} {
		e := NewEncoder()
		e.Encode(v)
		d := NewDecoder(e.Stream())
		got, ok := d.Decode()
		require.True(t, ok)
		require.Equal(t, v, got)
	}
}
