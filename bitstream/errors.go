package bitstream

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrOpen  = errors.New("unable to open file")
	ErrRead  = errors.New("unable to read file")
	ErrWrite = errors.New("unable to write file")
	ErrSync  = errors.New("unable to sync file")
)

var (
	// ErrTruncated is reported by decoders when the stream ends inside a codeword
	// and the remaining bits cannot be byte padding.
	ErrTruncated = errors.New("bit stream ends inside a codeword")

	// ErrOverflow is reported by decoders when a codeword describes a value wider than 64 bits.
	ErrOverflow = errors.New("codeword exceeds 64 bits")
)

// A FileError records a failed file operation on a persisted stream.
// Kind is one of ErrOpen, ErrRead, ErrWrite or ErrSync.
type FileError struct {
	Kind error
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%v %s: %v", e.Kind, e.Path, e.Err)
}

func (e *FileError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func fileError(kind error, path string, err error) error {
	return errors.WithStack(&FileError{Kind: kind, Path: path, Err: err})
}
