package lzwuc

import "github.com/pkg/errors"

var (
	// ErrCorruptCode is returned when a decoded symbol does not name a dictionary entry.
	ErrCorruptCode = errors.New("symbol is not in the dictionary")

	// ErrVerify is returned when a round trip does not reproduce its input.
	ErrVerify = errors.New("decoded data differs from the original")
)
