// Package uc defines the universal integer codes the LZW pipeline writes its symbols with.
// See its subpackages for the individual codes.
package uc

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/fumin/lzwuc/bitstream"
	"github.com/fumin/lzwuc/uc/delta"
	"github.com/fumin/lzwuc/uc/fibonacci"
	"github.com/fumin/lzwuc/uc/gamma"
	"github.com/fumin/lzwuc/uc/omega"
)

// ErrUnknownKind is returned when a code name is not recognised.
var ErrUnknownKind = errors.New("unknown universal code")

// An Encoder appends prefix-free codewords for values in [0, math.MaxUint64) to a bit stream.
type Encoder interface {
	// Encode appends the codeword of v.
	Encode(v uint64)

	// Len returns the number of bits written so far.
	Len() int

	// Entropy returns the Shannon entropy of the persisted bytes.
	Entropy() float64

	// Stream returns the bit stream in the form it is persisted in.
	Stream() *bitstream.Stream

	io.WriterTo

	// Save atomically persists the stream to a file.
	Save(path string) error
}

// A Decoder reads codewords back from a bit stream.
type Decoder interface {
	// Decode returns the next value.
	// It returns false once no complete codeword remains, after which Err reports whether the stream was damaged.
	Decode() (uint64, bool)

	// Index returns the position of the next unread bit.
	Index() int

	// Len returns the number of bits in the stream.
	Len() int

	// Entropy returns the Shannon entropy of the stream's bytes.
	Entropy() float64

	// Err returns bitstream.ErrTruncated or bitstream.ErrOverflow if decoding stopped on a damaged codeword.
	Err() error
}

// A Kind selects one of the universal codes.
type Kind int

const (
	Gamma Kind = iota
	Delta
	Omega
	Fibonacci
)

// Kinds lists every supported code.
var Kinds = []Kind{Gamma, Delta, Omega, Fibonacci}

var kindNames = [...]string{
	Gamma:     "gamma",
	Delta:     "delta",
	Omega:     "omega",
	Fibonacci: "fibonacci",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// ParseKind returns the Kind named s.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(i), nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownKind, "%q", s)
}

// NewEncoder returns an encoder for k over an empty stream.
// Omega, the default code, is used for unknown kinds.
func NewEncoder(k Kind) Encoder {
	switch k {
	case Gamma:
		return gamma.NewEncoder()
	case Delta:
		return delta.NewEncoder()
	case Fibonacci:
		return fibonacci.NewEncoder()
	default:
		return omega.NewEncoder()
	}
}

// NewDecoder returns a decoder for k positioned at the start of s.
func NewDecoder(k Kind, s *bitstream.Stream) Decoder {
	switch k {
	case Gamma:
		return gamma.NewDecoder(s)
	case Delta:
		return delta.NewDecoder(s)
	case Fibonacci:
		return fibonacci.NewDecoder(s)
	default:
		return omega.NewDecoder(s)
	}
}

// Restore loads a stream persisted with Encoder.Save and returns a decoder for it.
func Restore(k Kind, path string) (Decoder, error) {
	s, err := bitstream.Load(path)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	return NewDecoder(k, s), nil
}
