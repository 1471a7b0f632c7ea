package utf8valid

import (
	"fmt"

	"github.com/coregx/utf8valid/simd"
)

// Config configures the one-shot validator's ASCII fast path.
//
// The configuration never changes results, only speed: every Config that
// passes Validate accepts and rejects exactly the same inputs with the same
// cursors.
type Config struct {
	// BlockSize is the width, in bytes, of the blocks tested for pure ASCII
	// while the automaton is between sequences. Must be 8, 16, 32 or 64.
	//
	// Default: 16
	BlockSize int

	// ASCIIFastPath enables skipping pure-ASCII blocks without running the
	// automaton. When false every byte goes through the transition table.
	//
	// Default: true
	ASCIIFastPath bool
}

// DefaultConfig returns the configuration used by the package-level
// functions.
func DefaultConfig() Config {
	return Config{
		BlockSize:     simd.BlockSize16,
		ASCIIFastPath: true,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !simd.ValidBlockWidth(c.BlockSize) {
		return &Error{
			Kind:    InvalidConfig,
			Message: fmt.Sprintf("BlockSize must be 8, 16, 32 or 64, got %d", c.BlockSize),
		}
	}
	return nil
}
