package lzwuc

import (
	"go.uber.org/zap"
)

// MaxEntries is the default dictionary capacity, including the 256 single-byte entries.
const MaxEntries = 4194304

type config struct {
	log        *zap.Logger
	maxEntries int
}

func newConfig(opts []Option) config {
	c := config{log: zap.NewNop(), maxEntries: MaxEntries}
	for _, o := range opts {
		o(&c)
	}
	return c
}

// Option is a functional option for configuring a compression session.
type Option func(*config)

// WithLogger sets the logger session summaries are written to.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

// WithMaxEntries sets the dictionary capacity.
// Values below 256 are raised to 256. Streams must be decoded with the capacity they were encoded with.
func WithMaxEntries(n int) Option {
	return func(c *config) {
		if n < 256 {
			n = 256
		}
		c.maxEntries = n
	}
}
