package simd

import (
	"encoding/binary"
)

// hi8 has the high bit of every byte lane set. A word ANDed with hi8 is
// zero iff all eight bytes are ASCII.
const hi8 = uint64(0x8080808080808080)

// BlockSize16 is the block width used by the validator's ASCII fast path
// unless configured otherwise.
const BlockSize16 = 16

// ValidBlockWidth reports whether width is a supported block width for
// ASCIIBlockRun (8, 16, 32 or 64 bytes).
func ValidBlockWidth(width int) bool {
	switch width {
	case 8, 16, 32, 64:
		return true
	default:
		return false
	}
}

func checkWidth(width int) {
	if !ValidBlockWidth(width) {
		panic("simd: unsupported ASCII block width")
	}
}

// isASCIIGeneric implements pure Go ASCII detection using SWAR (SIMD Within A Register)
// technique. It processes 8 bytes at a time using uint64 bitwise operations.
//
// This function is used as a fallback on all platforms:
//   - On amd64: fallback for small inputs (< 32 bytes) or when AVX2 is not available
//   - On other platforms: primary implementation
func isASCIIGeneric(data []byte) bool {
	dataLen := len(data)

	// For small inputs, byte-by-byte is simpler and has no setup overhead
	if dataLen < 8 {
		for i := 0; i < dataLen; i++ {
			if data[i] >= 0x80 {
				return false
			}
		}
		return true
	}

	idx := 0
	for idx+8 <= dataLen {
		if binary.LittleEndian.Uint64(data[idx:])&hi8 != 0 {
			return false
		}
		idx += 8
	}

	for idx < dataLen {
		if data[idx] >= 0x80 {
			return false
		}
		idx++
	}

	return true
}

// IsASCIIBlock16 reports whether the first 16 bytes of block are all ASCII.
// The two halves are ORed together and tested once, so the check costs two
// loads and a single branch. Panics if len(block) < 16.
func IsASCIIBlock16(block []byte) bool {
	_ = block[15] // bounds check hint
	v1 := binary.LittleEndian.Uint64(block)
	v2 := binary.LittleEndian.Uint64(block[8:])
	return (v1|v2)&hi8 == 0
}

// asciiBlockRunGeneric returns the length of the longest prefix of data made
// of whole width-byte blocks containing only ASCII bytes.
func asciiBlockRunGeneric(data []byte, width int) int {
	n := 0
	if width == BlockSize16 {
		for len(data)-n >= BlockSize16 && IsASCIIBlock16(data[n:]) {
			n += BlockSize16
		}
		return n
	}

	for len(data)-n >= width {
		var acc uint64
		for i := n; i < n+width; i += 8 {
			acc |= binary.LittleEndian.Uint64(data[i:])
		}
		if acc&hi8 != 0 {
			break
		}
		n += width
	}
	return n
}
