// Package utf8valid validates UTF-8 with a shift-based DFA.
//
// The package answers three questions about a byte sequence without
// allocating or decoding code points:
//   - Is it well-formed UTF-8? (Valid, Check)
//   - If not, where does the first ill-formed subsequence start? (Check,
//     MaximalPrefix)
//   - How many bytes should one U+FFFD replace there? (MaximalSubpart)
//
// Stream validates input that arrives in chunks, carrying a partial
// sequence across chunk boundaries.
//
// Basic usage:
//
//	ok, cursor := utf8valid.Check(data)
//	if !ok {
//	    n := utf8valid.MaximalSubpart(data[cursor:])
//	    fmt.Printf("ill-formed bytes % X at offset %d\n", data[cursor:cursor+n], cursor)
//	}
//
// Streaming usage:
//
//	s := utf8valid.NewStream()
//	for i, chunk := range chunks {
//	    if _, err := s.Check(chunk, i == len(chunks)-1); err != nil {
//	        return err
//	    }
//	}
//
// Well-formed means the Unicode encoding form: shortest encodings only, no
// surrogates (U+D800..U+DFFF), nothing above U+10FFFF. All functions are
// safe for concurrent use; a Stream is not.
package utf8valid

import (
	"unsafe"

	"github.com/coregx/utf8valid/dfa"
	"github.com/coregx/utf8valid/simd"
)

// Validator is a one-shot validator with a fixed Config.
//
// A Validator is immutable and safe to use concurrently from multiple
// goroutines.
type Validator struct {
	blockSize int
	fastPath  bool
}

// New returns a Validator for the given configuration.
func New(cfg Config) (*Validator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Validator{
		blockSize: cfg.BlockSize,
		fastPath:  cfg.ASCIIFastPath,
	}, nil
}

// MustNew is like New but panics if the configuration is invalid.
func MustNew(cfg Config) *Validator {
	v, err := New(cfg)
	if err != nil {
		panic("utf8valid: " + err.Error())
	}
	return v
}

var defaultValidator = MustNew(DefaultConfig())

// Config returns the validator's configuration.
func (v *Validator) Config() Config {
	return Config{BlockSize: v.blockSize, ASCIIFastPath: v.fastPath}
}

// Check reports whether p is well-formed UTF-8. On success cursor is
// len(p). Otherwise cursor is the length of the longest well-formed prefix
// of p, which is where the first ill-formed subsequence begins.
//
// The cursor is never the offset of the offending byte inside a sequence:
// for "\xE2\x82\x41" it is 0, not 2.
func (v *Validator) Check(p []byte) (ok bool, cursor int) {
	if v.run(p) == dfa.Accept {
		return true, len(p)
	}
	return false, MaximalPrefix(p)
}

// Valid reports whether p is well-formed UTF-8.
func (v *Validator) Valid(p []byte) bool {
	return v.run(p) == dfa.Accept
}

// CheckString is like Check but takes a string.
func (v *Validator) CheckString(s string) (ok bool, cursor int) {
	return v.Check(stringBytes(s))
}

// ValidString is like Valid but takes a string.
func (v *Validator) ValidString(s string) bool {
	return v.Valid(stringBytes(s))
}

// run scans p from Accept and returns the final state.
//
// Input is consumed in blocks. While the automaton sits in Accept, runs of
// pure-ASCII blocks are skipped: an ASCII byte maps Accept to Accept, so
// skipping them cannot change the state. Any other block, and the final
// partial block, goes through the table. Error is absorbing, so the scan
// stops as soon as it is reached.
func (v *Validator) run(p []byte) dfa.State {
	state := dfa.Accept
	width := v.blockSize
	i := 0

	for len(p)-i >= width {
		if v.fastPath && state == dfa.Accept {
			if n := simd.ASCIIBlockRun(p[i:], width); n > 0 {
				i += n
				continue
			}
		}
		state = dfa.Run(state, p[i:i+width])
		if state == dfa.Error {
			return dfa.Error
		}
		i += width
	}

	return dfa.Run(state, p[i:])
}

// Check reports whether p is well-formed UTF-8 and, if not, where the first
// ill-formed subsequence starts. See Validator.Check.
func Check(p []byte) (ok bool, cursor int) {
	return defaultValidator.Check(p)
}

// CheckString is like Check but takes a string.
func CheckString(s string) (ok bool, cursor int) {
	return defaultValidator.Check(stringBytes(s))
}

// Valid reports whether p is well-formed UTF-8.
func Valid(p []byte) bool {
	return defaultValidator.Valid(p)
}

// ValidString reports whether s is well-formed UTF-8.
func ValidString(s string) bool {
	return defaultValidator.Valid(stringBytes(s))
}

// MaximalSubpart returns the number of bytes at the start of p that Unicode's
// recommended practice replaces with a single U+FFFD.
//
// Scanning from a fresh state, it returns i+1 when the first complete
// sequence ends at offset i, max(i, 1) when the automaton fails at offset i,
// and len(p) when p ends inside a sequence. The result is in [1, len(p)],
// or 0 for empty input.
func MaximalSubpart(p []byte) int {
	state := dfa.Accept
	for i, b := range p {
		state = dfa.Step(state, b)
		switch state {
		case dfa.Accept:
			return i + 1
		case dfa.Error:
			return max(i, 1)
		}
	}
	return len(p)
}

// MaximalPrefix returns the length of the longest prefix of p that is
// well-formed UTF-8.
func MaximalPrefix(p []byte) int {
	state := dfa.Accept
	prefix := 0
	for i, b := range p {
		state = dfa.Step(state, b)
		if state == dfa.Accept {
			prefix = i + 1
		} else if state == dfa.Error {
			break
		}
	}
	return prefix
}

// MaximalSubpartString is like MaximalSubpart but takes a string.
func MaximalSubpartString(s string) int {
	return MaximalSubpart(stringBytes(s))
}

// MaximalPrefixString is like MaximalPrefix but takes a string.
func MaximalPrefixString(s string) int {
	return MaximalPrefix(stringBytes(s))
}

// stringBytes returns a read-only view of s. The result must not be written.
func stringBytes(s string) []byte {
	if s == "" {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
