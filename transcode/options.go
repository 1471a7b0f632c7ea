package transcode

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBufferSize is returned when the buffer size is not positive.
	ErrInvalidBufferSize = errors.New("bufferSize must be greater than 0")

	// ErrInvalidBaseOffset is returned when the base offset is negative.
	ErrInvalidBaseOffset = errors.New("baseOffset must not be negative")
)

// Option configures a Reader.
type Option func(*config) error

type config struct {
	replace    bool
	bufferSize int
	baseOffset int
}

// WithReplacement makes the reader lossy: ill-formed input is replaced by
// U+FFFD instead of failing the read.
func WithReplacement() Option {
	return func(c *config) error {
		c.replace = true
		return nil
	}
}

// WithBufferSize reads the underlying reader through a buffer of n bytes.
// Without it, reads go straight to the source in the transformer's own
// buffer size.
func WithBufferSize(n int) Option {
	return func(c *config) error {
		if n <= 0 {
			return fmt.Errorf("%w: got %d", ErrInvalidBufferSize, n)
		}
		c.bufferSize = n
		return nil
	}
}

// WithBaseOffset adds off to the offsets of reported errors, for readers
// that resume a stream part way through.
func WithBaseOffset(off int) Option {
	return func(c *config) error {
		if off < 0 {
			return fmt.Errorf("%w: got %d", ErrInvalidBaseOffset, off)
		}
		c.baseOffset = off
		return nil
	}
}
