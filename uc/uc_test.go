package uc

import (
	"bytes"
	"math"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/fumin/lzwuc/bitstream"
)

var roundTripValues = []uint64{
	0, 1, 2, 3, 6, 7, 14, 15, 16, 31, 255, 256, 1000,
	1<<31 - 1, 1323123213123, 3312312345324423,
	1<<63 - 1, 1 << 63, 1<<63 + 1, math.MaxUint64 - 1,
}

func TestRoundTrip(t *testing.T) {
	for _, k := range Kinds {
		t.Run(k.String(), func(t *testing.T) {
			for _, v := range roundTripValues {
				enc := NewEncoder(k)
				enc.Encode(v)

				dec := NewDecoder(k, enc.Stream())
				got, ok := dec.Decode()
				require.True(t, ok, "value %d", v)
				require.Equal(t, v, got)
				require.Equal(t, enc.Len(), dec.Index(), "value %d", v)

				_, ok = dec.Decode()
				require.False(t, ok)
				require.NoError(t, dec.Err())
			}
		})
	}
}

func TestSequential(t *testing.T) {
	for _, k := range Kinds {
		t.Run(k.String(), func(t *testing.T) {
			enc := NewEncoder(k)
			enc.Encode(15)
			enc.Encode(31)

			dec := NewDecoder(k, enc.Stream())
			v, ok := dec.Decode()
			require.True(t, ok)
			require.Equal(t, uint64(15), v)
			v, ok = dec.Decode()
			require.True(t, ok)
			require.Equal(t, uint64(31), v)
			_, ok = dec.Decode()
			require.False(t, ok)
			require.NoError(t, dec.Err())
		})
	}
}

func TestPrefixFree(t *testing.T) {
	for _, k := range Kinds {
		t.Run(k.String(), func(t *testing.T) {
			enc := NewEncoder(k)
			for _, v := range roundTripValues {
				enc.Encode(v)
			}
			for i := len(roundTripValues) - 1; i >= 0; i-- {
				enc.Encode(roundTripValues[i])
			}

			dec := NewDecoder(k, enc.Stream())
			for _, v := range roundTripValues {
				got, ok := dec.Decode()
				require.True(t, ok)
				require.Equal(t, v, got)
			}
			for i := len(roundTripValues) - 1; i >= 0; i-- {
				got, ok := dec.Decode()
				require.True(t, ok)
				require.Equal(t, roundTripValues[i], got)
			}
			_, ok := dec.Decode()
			require.False(t, ok)
			require.NoError(t, dec.Err())
		})
	}
}

// TestPersistRestore checks that byte padding never decodes as an extra value.
func TestPersistRestore(t *testing.T) {
	for _, k := range Kinds {
		t.Run(k.String(), func(t *testing.T) {
			for count := 1; count <= 16; count++ {
				enc := NewEncoder(k)
				for v := 0; v < count; v++ {
					enc.Encode(uint64(v % 3))
				}

				path := filepath.Join(t.TempDir(), "codes")
				require.NoError(t, enc.Save(path))

				dec, err := Restore(k, path)
				require.NoError(t, err)
				require.Zero(t, dec.Len()%8)
				require.GreaterOrEqual(t, dec.Len(), enc.Len())
				require.Less(t, dec.Len()-enc.Len(), 8)

				for v := 0; v < count; v++ {
					got, ok := dec.Decode()
					require.True(t, ok, "count %d value %d", count, v)
					require.Equal(t, uint64(v%3), got)
				}
				_, ok := dec.Decode()
				require.False(t, ok, "count %d", count)
				require.NoError(t, dec.Err())
			}
		})
	}
}

func TestWriteTo(t *testing.T) {
	for _, k := range Kinds {
		enc := NewEncoder(k)
		enc.Encode(42)
		enc.Encode(7)

		var buf bytes.Buffer
		n, err := enc.WriteTo(&buf)
		require.NoError(t, err)
		require.Equal(t, int64((enc.Len()+7)/8), n)
		require.Equal(t, enc.Stream().Bytes(), buf.Bytes())
		require.Equal(t, bitstream.Entropy(buf.Bytes()), enc.Entropy())
	}
}

func TestTruncated(t *testing.T) {
	for _, k := range Kinds {
		t.Run(k.String(), func(t *testing.T) {
			enc := NewEncoder(k)
			enc.Encode(1 << 40)
			enc.Encode(1 << 40)

			full := enc.Stream().Bytes()
			dec := NewDecoder(k, bitstream.FromBytes(full[:len(full)-2]))
			v, ok := dec.Decode()
			require.True(t, ok)
			require.Equal(t, uint64(1<<40), v)
			index := dec.Index()

			_, ok = dec.Decode()
			require.False(t, ok)
			require.True(t, errors.Is(dec.Err(), bitstream.ErrTruncated))
			require.Equal(t, index, dec.Index())

			// Once damaged, the decoder stays stopped.
			_, ok = dec.Decode()
			require.False(t, ok)
		})
	}
}

func TestEncodeOutOfRange(t *testing.T) {
	for _, k := range Kinds {
		enc := NewEncoder(k)
		require.Panics(t, func() { enc.Encode(math.MaxUint64) }, k.String())
	}
}

func TestEmptyStream(t *testing.T) {
	for _, k := range Kinds {
		dec := NewDecoder(k, bitstream.New())
		_, ok := dec.Decode()
		require.False(t, ok)
		require.NoError(t, dec.Err())
		require.Equal(t, 0.0, dec.Entropy())
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		require.Equal(t, k, got)
	}
	got, err := ParseKind("Fibonacci")
	require.NoError(t, err)
	require.Equal(t, Fibonacci, got)

	_, err = ParseKind("rice")
	require.True(t, errors.Is(err, ErrUnknownKind))
	require.Equal(t, "Kind(9)", Kind(9).String())
}
