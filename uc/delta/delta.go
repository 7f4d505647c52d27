// Package delta implements the Elias delta code.
//
// The bit length b of a positive integer n is written with the gamma code,
// followed by the b-1 low order bits of n. The leading one of n is implied.
package delta

import (
	"fmt"
	"io"
	"math"
	"math/bits"

	"github.com/fumin/lzwuc/bitstream"
	"github.com/fumin/lzwuc/uc/gamma"
)

func appendDelta(s *bitstream.Stream, n uint64) {
	b := bits.Len64(n)
	gamma.Append(s, uint64(b))
	s.PushBits(n, b-1)
}

func readDelta(s *bitstream.Stream, i int) (uint64, int, bool, error) {
	b, i, ok, err := gamma.Read(s, i)
	if err != nil || !ok {
		return 0, i, false, err
	}
	if b > 64 {
		return 0, i, false, bitstream.ErrOverflow
	}

	n := uint64(1)
	for k := uint64(1); k < b; k++ {
		bit, more := s.Get(i)
		if !more {
			return 0, i, false, nil
		}
		n = n<<1 | uint64(bit)
		i++
	}
	return n, i, true, nil
}

// An Encoder appends delta codewords to a bit stream.
type Encoder struct {
	s *bitstream.Stream
}

func NewEncoder() *Encoder {
	return &Encoder{s: bitstream.New()}
}

// Encode appends the codeword of v. v must be less than math.MaxUint64.
func (e *Encoder) Encode(v uint64) {
	if v == math.MaxUint64 {
		panic(fmt.Sprintf("delta: value %d out of range", v))
	}
	appendDelta(e.s, v+1)
}

func (e *Encoder) Len() int {
	return e.s.Len()
}

func (e *Encoder) Stream() *bitstream.Stream {
	return e.s
}

func (e *Encoder) Entropy() float64 {
	return e.s.Entropy()
}

func (e *Encoder) WriteTo(w io.Writer) (int64, error) {
	return e.s.WriteTo(w)
}

func (e *Encoder) Save(path string) error {
	return e.s.Save(path)
}

// A Decoder reads delta codewords from a bit stream.
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
	n, next, ok, err := readDelta(d.s, d.index)
	if err != nil {
		d.err = err
		return 0, false
	}
	if !ok {
		if d.s.Len()-d.index >= 8 || !d.s.Uniform(d.index, 0) {
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
