// Package omega implements the Elias omega code.
//
// A positive integer n is written as a chain of groups, each holding the binary representation of the
// next group's length minus one, ending with n itself and a terminating zero bit.
//
// Because the single bit 0 is the codeword of the smallest value, the persisted form of an omega stream
// is padded with one bits. A run of ones shorter than a byte never completes a codeword.
package omega

import (
	"fmt"
	"io"
	"math"
	"math/bits"

	"github.com/fumin/lzwuc/bitstream"
)

// padBit fills the last byte of a persisted stream.
const padBit = 1

func appendOmega(s *bitstream.Stream, n uint64) {
	var groups [8]uint64
	g := 0
	for k := n; k > 1; k = uint64(bits.Len64(k) - 1) {
		groups[g] = k
		g++
	}
	for g > 0 {
		g--
		s.PushBits(groups[g], bits.Len64(groups[g]))
	}
	s.Push(0)
}

func readOmega(s *bitstream.Stream, i int) (uint64, int, bool, error) {
	n := uint64(1)
	for {
		bit, more := s.Get(i)
		if !more {
			return 0, i, false, nil
		}
		i++
		if bit == 0 {
			return n, i, true, nil
		}
		if n > 63 {
			return 0, i, false, bitstream.ErrOverflow
		}

		next := uint64(1)
		for k := uint64(0); k < n; k++ {
			bit, more := s.Get(i)
			if !more {
				return 0, i, false, nil
			}
			next = next<<1 | uint64(bit)
			i++
		}
		n = next
	}
}

// An Encoder appends omega codewords to a bit stream.
type Encoder struct {
	s *bitstream.Stream
}

func NewEncoder() *Encoder {
	return &Encoder{s: bitstream.New()}
}

// Encode appends the codeword of v. v must be less than math.MaxUint64.
func (e *Encoder) Encode(v uint64) {
	if v == math.MaxUint64 {
		panic(fmt.Sprintf("omega: value %d out of range", v))
	}
	appendOmega(e.s, v+1)
}

// Len returns the number of codeword bits written so far, excluding padding.
func (e *Encoder) Len() int {
	return e.s.Len()
}

// Stream returns a copy of the stream padded to a byte boundary with one bits.
func (e *Encoder) Stream() *bitstream.Stream {
	return e.s.Padded(padBit)
}

func (e *Encoder) Entropy() float64 {
	return e.Stream().Entropy()
}

func (e *Encoder) WriteTo(w io.Writer) (int64, error) {
	return e.Stream().WriteTo(w)
}

func (e *Encoder) Save(path string) error {
	return e.Stream().Save(path)
}

// A Decoder reads omega codewords from a bit stream.
type Decoder struct {
	s     *bitstream.Stream
	index int
	err   error
}

func NewDecoder(s *bitstream.Stream) *Decoder {
	return &Decoder{s: s}
}

// Decode returns the next value, or false at the end of the stream.
func (d *Decoder) Decode() (uint64, bool) {
	if d.err != nil {
		return 0, false
	}
	n, next, ok, err := readOmega(d.s, d.index)
	if err != nil {
		d.err = err
		return 0, false
	}
	if !ok {
		if d.s.Len()-d.index >= 8 || !d.s.Uniform(d.index, padBit) {
			d.err = bitstream.ErrTruncated
		}
		return 0, false
	}
	d.index = next
	return n - 1, true
}

func (d *Decoder) Index() int {
	return d.index
}

func (d *Decoder) Len() int {
	return d.s.Len()
}

func (d *Decoder) Entropy() float64 {
	return d.s.Entropy()
}

func (d *Decoder) Err() error {
	return d.err
}
