// Package gamma implements the Elias gamma code.
//
// A positive integer n with bit length b is written as b-1 zero bits followed by the b bits of n.
// Values are shifted by one before encoding so that zero is representable.
package gamma

import (
	"fmt"
	"io"
	"math"
	"math/bits"

	"github.com/fumin/lzwuc/bitstream"
)

// Append writes the gamma codeword of n, which must be positive, to s.
func Append(s *bitstream.Stream, n uint64) {
	b := bits.Len64(n)
	for i := 1; i < b; i++ {
		s.Push(0)
	}
	s.PushBits(n, b)
}

// Read parses the gamma codeword starting at bit i of s.
// It returns the decoded positive integer and the index just past the codeword.
// ok is false if s ends before the codeword does.
func Read(s *bitstream.Stream, i int) (n uint64, next int, ok bool, err error) {
	zeros := 0
	for {
		bit, more := s.Get(i)
		if !more {
			return 0, i, false, nil
		}
		if bit == 1 {
			break
		}
		zeros++
		i++
	}
	if zeros > 63 {
		return 0, i, false, bitstream.ErrOverflow
	}

	for k := 0; k <= zeros; k++ {
		bit, more := s.Get(i)
		if !more {
			return 0, i, false, nil
		}
		n = n<<1 | uint64(bit)
		i++
	}
	return n, i, true, nil
}

// An Encoder appends gamma codewords to a bit stream.
type Encoder struct {
	s *bitstream.Stream
}

// NewEncoder returns an encoder over an empty stream.
func NewEncoder() *Encoder {
	return &Encoder{s: bitstream.New()}
}

// Encode appends the codeword of v. v must be less than math.MaxUint64.
func (e *Encoder) Encode(v uint64) {
	if v == math.MaxUint64 {
		panic(fmt.Sprintf("gamma: value %d out of range", v))
	}
	Append(e.s, v+1)
}

// Len returns the number of bits written so far.
func (e *Encoder) Len() int {
	return e.s.Len()
}

// Stream returns the stream in its persisted form.
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

// A Decoder reads gamma codewords from a bit stream.
type Decoder struct {
	s     *bitstream.Stream
	index int
	err   error
}

// NewDecoder returns a decoder positioned at the start of s.
func NewDecoder(s *bitstream.Stream) *Decoder {
	return &Decoder{s: s}
}

// Decode returns the next value.
// The second return value is false at the end of the stream, after which Err reports whether the stream was damaged.
func (d *Decoder) Decode() (uint64, bool) {
	if d.err != nil {
		return 0, false
	}
	n, next, ok, err := Read(d.s, d.index)
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

// Index returns the position of the next unread bit.
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
