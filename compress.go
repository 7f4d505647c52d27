package lzwuc

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/c2h5oh/datasize"
	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fumin/lzwuc/bitstream"
	"github.com/fumin/lzwuc/uc"
)

// Stats describes one compression session.
type Stats struct {
	Kind uc.Kind

	OriginalSize    int
	OriginalEntropy float64
	Digest          uint64 // xxhash of the original data

	CodedBits    int
	CodedSize    int
	CodedEntropy float64

	Codes       int         // number of symbols written
	CodeLengths map[int]int // codeword length in bits -> number of symbols
}

// Ratio returns the coded size as a percentage of the original size.
func (s Stats) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0
	}
	return float64(s.CodedSize) * 100 / float64(s.OriginalSize)
}

func (s Stats) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Code %s\n", s.Kind)
	fmt.Fprintf(&sb, "Size before %s (%dB)\n", datasize.ByteSize(s.OriginalSize).HumanReadable(), s.OriginalSize)
	fmt.Fprintf(&sb, "Size after %s (%dB)\n", datasize.ByteSize(s.CodedSize).HumanReadable(), s.CodedSize)
	fmt.Fprintf(&sb, "Compression ratio %.2f%%\n", s.Ratio())
	fmt.Fprintf(&sb, "Entropy before %f\n", s.OriginalEntropy)
	fmt.Fprintf(&sb, "Entropy after %f", s.CodedEntropy)
	return sb.String()
}

func (s Stats) logFields() []zap.Field {
	return []zap.Field{
		zap.Stringer("kind", s.Kind),
		zap.Int("original", s.OriginalSize),
		zap.Int("coded", s.CodedSize),
		zap.Int("codes", s.Codes),
		zap.Float64("ratio", s.Ratio()),
	}
}

// recorder counts the codewords passing through an Encoder.
type recorder struct {
	uc.Encoder
	codes   int
	lengths map[int]int
}

func (r *recorder) Encode(v uint64) {
	before := r.Encoder.Len()
	r.Encoder.Encode(v)
	r.codes++
	r.lengths[r.Encoder.Len()-before]++
}

// encode runs a session over data and returns the filled encoder.
func encode(data []byte, kind uc.Kind, opts []Option) (uc.Encoder, Stats) {
	rec := &recorder{Encoder: uc.NewEncoder(kind), lengths: make(map[int]int)}
	Encode(rec, data, opts...)

	coded := rec.Stream()
	stats := Stats{
		Kind:            kind,
		OriginalSize:    len(data),
		OriginalEntropy: bitstream.Entropy(data),
		Digest:          xxhash.Sum64(data),
		CodedBits:       rec.Len(),
		CodedSize:       len(coded.Bytes()),
		CodedEntropy:    coded.Entropy(),
		Codes:           rec.codes,
		CodeLengths:     rec.lengths,
	}
	return rec.Encoder, stats
}

// Compress compresses the file name with the code kind and writes the bit stream to w.
func Compress(w io.Writer, name string, kind uc.Kind, opts ...Option) (Stats, error) {
	data, err := readFile(name)
	if err != nil {
		return Stats{}, errors.Wrap(err, "")
	}
	enc, stats := encode(data, kind, opts)
	if _, err := enc.WriteTo(w); err != nil {
		return stats, errors.Wrap(err, "")
	}
	newConfig(opts).log.Debug("compressed", append(stats.logFields(), zap.String("src", name))...)
	return stats, nil
}

// CompressFile compresses src into dst. dst is replaced atomically and synced to disk.
func CompressFile(dst, src string, kind uc.Kind, opts ...Option) (Stats, error) {
	data, err := readFile(src)
	if err != nil {
		return Stats{}, errors.Wrap(err, "")
	}
	enc, stats := encode(data, kind, opts)
	if err := enc.Save(dst); err != nil {
		return stats, errors.Wrap(err, "")
	}
	newConfig(opts).log.Debug("compressed", append(stats.logFields(), zap.String("src", src), zap.String("dst", dst))...)
	return stats, nil
}

// decode restores the original data from a coded stream.
func decode(s *bitstream.Stream, kind uc.Kind, opts []Option) ([]byte, Stats, error) {
	dec := uc.NewDecoder(kind, s)
	data, err := Decode(dec, opts...)
	stats := Stats{
		Kind:            kind,
		OriginalSize:    len(data),
		OriginalEntropy: bitstream.Entropy(data),
		Digest:          xxhash.Sum64(data),
		CodedBits:       dec.Index(),
		CodedSize:       len(s.Bytes()),
		CodedEntropy:    dec.Entropy(),
	}
	return data, stats, err
}

// Decompress reads a bit stream written with the code kind from r and writes the original data to w.
func Decompress(w io.Writer, r io.Reader, kind uc.Kind, opts ...Option) error {
	s := bitstream.New()
	if _, err := s.ReadFrom(r); err != nil {
		return errors.Wrap(err, "")
	}
	data, stats, err := decode(s, kind, opts)
	if err != nil {
		return errors.Wrap(err, "")
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "")
	}
	newConfig(opts).log.Debug("decompressed", stats.logFields()...)
	return nil
}

// DecompressFile decompresses src into dst. dst is replaced atomically and synced to disk.
func DecompressFile(dst, src string, kind uc.Kind, opts ...Option) (Stats, error) {
	s, err := bitstream.Load(src)
	if err != nil {
		return Stats{}, errors.Wrap(err, "")
	}
	data, stats, err := decode(s, kind, opts)
	if err != nil {
		return stats, errors.Wrap(err, "")
	}
	if err := bitstream.FromBytes(data).Save(dst); err != nil {
		return stats, errors.Wrap(err, "")
	}
	newConfig(opts).log.Debug("decompressed", append(stats.logFields(), zap.String("src", src), zap.String("dst", dst))...)
	return stats, nil
}

// RoundTrip encodes data in memory, decodes the result, and checks that the digests match.
func RoundTrip(data []byte, kind uc.Kind, opts ...Option) (Stats, error) {
	enc, stats := encode(data, kind, opts)
	_, back, err := decode(enc.Stream(), kind, opts)
	if err != nil {
		return stats, errors.Wrap(err, "")
	}
	if back.Digest != stats.Digest || back.OriginalSize != stats.OriginalSize {
		return stats, errors.Wrapf(ErrVerify, "digest %x, want %x", back.Digest, stats.Digest)
	}
	return stats, nil
}

func readFile(name string) ([]byte, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.WithStack(&bitstream.FileError{Kind: bitstream.ErrOpen, Path: name, Err: err})
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.WithStack(&bitstream.FileError{Kind: bitstream.ErrRead, Path: name, Err: err})
	}
	return data, nil
}
