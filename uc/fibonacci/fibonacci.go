// Package fibonacci implements the Fibonacci code, built on the Zeckendorf representation.
//
// Bit p (counting from 1) of a codeword carries the weight F(p+1) of the sequence 1, 2, 3, 5, 8, ...
// No two adjacent weights are ever both used, so an extra one bit after the highest weight terminates the codeword.
package fibonacci

import (
	"fmt"
	"io"
	"math"
	"math/bits"

	"github.com/fumin/lzwuc/bitstream"
)

// maxPosition is the largest position whose weight fits in 64 bits.
const maxPosition = 92

// table is a lazily extended Fibonacci sequence 1, 1, 2, 3, 5, ...
type table struct {
	fib []uint64
}

func newTable() table {
	return table{fib: []uint64{1, 1}}
}

// weight returns the weight of position p, 1 <= p <= maxPosition.
func (t *table) weight(p int) uint64 {
	for len(t.fib) <= p {
		k := len(t.fib)
		t.fib = append(t.fib, t.fib[k-1]+t.fib[k-2])
	}
	return t.fib[p]
}

// largest returns the largest position whose weight does not exceed n, n >= 1.
func (t *table) largest(n uint64) int {
	p := 1
	for p < maxPosition && t.weight(p+1) <= n {
		p++
	}
	return p
}

func (t *table) append(s *bitstream.Stream, n uint64) {
	top := t.largest(n)
	var used [maxPosition + 1]bool
	for p := top; n > 0; p = t.largest(n) {
		used[p] = true
		n -= t.weight(p)
	}
	for p := 1; p <= top; p++ {
		if used[p] {
			s.Push(1)
		} else {
			s.Push(0)
		}
	}
	s.Push(1)
}

func (t *table) read(s *bitstream.Stream, i int) (uint64, int, bool, error) {
	var n uint64
	p := 0
	prev := 0
	for {
		bit, more := s.Get(i)
		if !more {
			return 0, i, false, nil
		}
		i++
		p++
		if bit == 1 {
			if prev == 1 {
				return n, i, true, nil
			}
			if p > maxPosition {
				return 0, i, false, bitstream.ErrOverflow
			}
			var carry uint64
			n, carry = bits.Add64(n, t.weight(p), 0)
			if carry != 0 {
				return 0, i, false, bitstream.ErrOverflow
			}
		}
		prev = bit
	}
}

// An Encoder appends Fibonacci codewords to a bit stream.
type Encoder struct {
	s   *bitstream.Stream
	fib table
}

func NewEncoder() *Encoder {
	return &Encoder{s: bitstream.New(), fib: newTable()}
}

// Encode appends the codeword of v. v must be less than math.MaxUint64.
func (e *Encoder) Encode(v uint64) {
	if v == math.MaxUint64 {
		panic(fmt.Sprintf("fibonacci: value %d out of range", v))
	}
	e.fib.append(e.s, v+1)
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

// A Decoder reads Fibonacci codewords from a bit stream.
type Decoder struct {
	s     *bitstream.Stream
	fib   table
	index int
	err   error
}

func NewDecoder(s *bitstream.Stream) *Decoder {
	return &Decoder{s: s, fib: newTable()}
}

// Decode returns the next value, or false at the end of the stream.
func (d *Decoder) Decode() (uint64, bool) {
	if d.err != nil {
		return 0, false
	}
	n, next, ok, err := d.fib.read(d.s, d.index)
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
