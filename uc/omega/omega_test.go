package omega

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fumin/lzwuc/bitstream"
)

func bitString(s *bitstream.Stream, n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
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
		{0, "0"},
		{1, "100"},
		{2, "110"},
		{3, "101000"},
		{6, "101110"},
		{7, "1110000"},
		{16, "10100100010"},
	}
	for _, tt := range tests {
		e := NewEncoder()
		e.Encode(tt.v)
		require.Equal(t, len(tt.want), e.Len(), "value %d", tt.v)
		require.Equal(t, tt.want, bitString(e.Stream(), e.Len()), "value %d", tt.v)
	}
}

func TestPaddingWithOnes(t *testing.T) {
	e := NewEncoder()
	e.Encode(0)
	e.Encode(0)
	require.Equal(t, 2, e.Len())
	require.Equal(t, []byte{0x3f}, e.Stream().Bytes())

	// Zero padding would read back as six more zeros.
	d := NewDecoder(bitstream.FromBytes([]byte{0x3f}))
	for i := 0; i < 2; i++ {
		v, ok := d.Decode()
		require.True(t, ok)
		require.Zero(t, v)
	}
	_, ok := d.Decode()
	require.False(t, ok)
	require.NoError(t, d.Err())

	// Encoding continues normally after the padded form has been taken.
	e.Encode(1)
	require.Equal(t, "00100", bitString(e.Stream(), e.Len()))
}

func TestOverflow(t *testing.T) {
	// Groups 3, 15 and 65535 followed by another group whose length is beyond 64 bits.
	s := bitstream.New()
	s.PushBits(0x3, 2)
	s.PushBits(0xf, 4)
	s.PushBits(0xffff, 16)
	s.PushBits(1, 1)
	s.PushBits(0, 8)

	d := NewDecoder(s)
	_, ok := d.Decode()
	require.False(t, ok)
	require.ErrorIs(t, d.Err(), bitstream.ErrOverflow)
}
