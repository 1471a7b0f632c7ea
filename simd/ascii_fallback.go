//go:build !amd64

package simd

// HasAVX2 reports whether the vectorized ASCII paths are in use. It is
// always false outside amd64.
func HasAVX2() bool {
	return false
}

// IsASCII checks if all bytes in the slice are ASCII (< 0x80).
//
// On non-AMD64 platforms, this function uses the pure Go SWAR implementation,
// which processes 8 bytes at a time using uint64 bitwise operations.
func IsASCII(data []byte) bool {
	return isASCIIGeneric(data)
}

// ASCIIBlockRun returns the length of the longest prefix of data that
// consists of whole width-byte blocks of ASCII bytes. The result is always a
// multiple of width. Panics unless ValidBlockWidth(width).
func ASCIIBlockRun(data []byte, width int) int {
	checkWidth(width)
	return asciiBlockRunGeneric(data, width)
}
