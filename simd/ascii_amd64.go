//go:build amd64

// Package simd provides the vectorized ASCII checks behind the validator's
// fast path. On x86-64 with AVX2 the long-run scans use 256-bit loads; every
// other platform, and short inputs, use SWAR over uint64 words.
package simd

import "golang.org/x/sys/cpu"

var (
	// hasAVX2 indicates whether the CPU supports AVX2 instructions (256-bit SIMD).
	hasAVX2 = cpu.X86.HasAVX2 && cpu.X86.HasAVX
)

// HasAVX2 reports whether the vectorized ASCII paths are in use.
func HasAVX2() bool {
	return hasAVX2
}

// Assembly function declarations for AVX2 ASCII detection.
// These are implemented in ascii_amd64.s and use 256-bit vector operations.
//
//go:noescape
func isASCIIAVX2(data []byte) bool

// asciiBlocksAVX2 returns the length of the longest prefix of data made of
// whole 32-byte ASCII blocks.
//
//go:noescape
func asciiBlocksAVX2(data []byte) int

// IsASCII checks if all bytes in the slice are ASCII (< 0x80).
// Returns true if all bytes have the high bit clear (values 0x00-0x7F).
//
// Performance characteristics (on x86-64 with AVX2):
//   - Small inputs (< 32 bytes): SWAR (8 bytes at a time)
//   - Larger inputs: 32 bytes per iteration with VPMOVMSKB
//
// Example:
//
//	data := []byte("hello world")
//	if simd.IsASCII(data) {
//	    // every byte is its own UTF-8 sequence
//	}
func IsASCII(data []byte) bool {
	if len(data) == 0 {
		return true
	}

	// For small inputs (< 32 bytes), the setup cost of SIMD outweighs the benefits.
	if hasAVX2 && len(data) >= 32 {
		return isASCIIAVX2(data)
	}

	return isASCIIGeneric(data)
}

// ASCIIBlockRun returns the length of the longest prefix of data that
// consists of whole width-byte blocks of ASCII bytes. The result is always a
// multiple of width. Panics unless ValidBlockWidth(width).
//
// With AVX2 the bulk of the run is measured in 32-byte steps; the remainder
// (and any width-64 alignment) is finished with SWAR.
func ASCIIBlockRun(data []byte, width int) int {
	checkWidth(width)

	n := 0
	if hasAVX2 && len(data) >= 32 {
		n = asciiBlocksAVX2(data)
		// 32-byte steps are already multiples of 8, 16 and 32.
		n -= n % width
	}
	return n + asciiBlockRunGeneric(data[n:], width)
}
