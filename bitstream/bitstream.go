// Package bitstream provides an append-only, bit addressable buffer with byte aligned persistence.
//
// Bits are stored MSB-first: bit i lives in byte i/8 at position 7-(i%8) counted from the most significant bit.
// A Stream that was loaded from bytes has a length that is a multiple of 8,
// so any padding written after the last codeword is read back as ordinary data.
package bitstream

import (
	"bytes"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// A Stream is a sequence of bits backed by a byte slice.
// The unused trailing bits of the last byte are always zero.
type Stream struct {
	data []byte
	size int
}

// New returns an empty stream.
func New() *Stream {
	return &Stream{data: make([]byte, 0)}
}

// FromBytes returns a stream holding all bits of p.
// The stream takes ownership of p.
func FromBytes(p []byte) *Stream {
	return &Stream{data: p, size: len(p) * 8}
}

// Len returns the number of bits in the stream.
func (s *Stream) Len() int {
	return s.size
}

// Bytes returns the underlying buffer. It aliases the stream's storage.
func (s *Stream) Bytes() []byte {
	return s.data
}

// Push appends one bit. Any non-zero bit is treated as 1.
func (s *Stream) Push(bit int) {
	sector := s.size % 8
	if sector == 0 {
		s.data = append(s.data, 0)
	}
	if bit != 0 {
		s.data[s.size/8] |= 0x80 >> sector
	}
	s.size++
}

// PushBits appends the n low order bits of v, most significant first.
func (s *Stream) PushBits(v uint64, n int) {
	for i := n - 1; i >= 0; i-- {
		s.Push(int(v>>uint(i)) & 1)
	}
}

// Get returns the bit at index i.
// The second return value is false when i is past the end of the stream.
func (s *Stream) Get(i int) (int, bool) {
	if i < 0 || i >= s.size {
		return 0, false
	}
	return int(s.data[i/8]>>(7-uint(i%8))) & 1, true
}

// Uniform reports whether every bit in [from, s.Len()) equals bit.
func (s *Stream) Uniform(from int, bit int) bool {
	for i := from; i < s.size; i++ {
		b, _ := s.Get(i)
		if b != bit {
			return false
		}
	}
	return true
}

// Padded returns a copy of the stream extended to the next byte boundary with bit.
func (s *Stream) Padded(bit int) *Stream {
	p := &Stream{data: make([]byte, len(s.data), len(s.data)+1), size: s.size}
	copy(p.data, s.data)
	for p.size%8 != 0 {
		p.Push(bit)
	}
	return p
}

// WriteTo writes the raw byte buffer to w.
func (s *Stream) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(s.data)
	if err != nil {
		return int64(n), errors.Wrap(err, "")
	}
	if n != len(s.data) {
		return int64(n), errors.WithStack(io.ErrShortWrite)
	}
	return int64(n), nil
}

// ReadFrom replaces the contents of the stream with all bytes read from r.
// The resulting length is a multiple of 8.
func (s *Stream) ReadFrom(r io.Reader) (int64, error) {
	buf := bytes.NewBuffer(nil)
	n, err := buf.ReadFrom(r)
	if err != nil {
		return n, errors.Wrap(err, "")
	}
	s.data = buf.Bytes()
	s.size = len(s.data) * 8
	return n, nil
}

// Save persists the stream to path.
// The bytes are written to a temporary file in the same directory, synced, and renamed over path.
func (s *Stream) Save(path string) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fileError(ErrOpen, path, err)
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if _, err := s.WriteTo(f); err != nil {
		f.Close()
		return fileError(ErrWrite, path, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fileError(ErrSync, path, err)
	}
	if err := f.Close(); err != nil {
		return fileError(ErrWrite, path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fileError(ErrWrite, path, err)
	}
	return nil
}

// Load reads the whole file at path into a new stream.
func Load(path string) (*Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fileError(ErrOpen, path, err)
	}
	defer f.Close()

	s := New()
	if _, err := s.ReadFrom(f); err != nil {
		return nil, fileError(ErrRead, path, err)
	}
	return s, nil
}

// Entropy returns the zero-order Shannon entropy of the stream's bytes.
func (s *Stream) Entropy() float64 {
	return Entropy(s.data)
}

// Entropy returns the zero-order Shannon entropy, in bits per byte, of the byte values in p.
// The entropy of an empty slice is 0.
func Entropy(p []byte) float64 {
	if len(p) == 0 {
		return 0
	}
	var counts [256]uint64
	for _, b := range p {
		counts[b]++
	}
	total := float64(len(p))
	var h float64
	for _, c := range counts {
		if c == 0 {
			continue
		}
		q := float64(c) / total
		h -= q * math.Log2(q)
	}
	return h
}
