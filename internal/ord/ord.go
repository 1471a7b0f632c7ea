// Package ord encodes arbitrary ordinals with the UTF-8 bit layout, including
// forms that are not well-formed: non-shortest encodings, surrogates, values
// above U+10FFFF, and the obsolete 5- and 6-byte sequences. It exists to
// generate exhaustive validator inputs.
package ord

// MaxLen is the longest sequence length Encode produces.
const MaxLen = 6

var (
	leadMark = [MaxLen]byte{0x00, 0xC0, 0xE0, 0xF0, 0xF8, 0xFC}
	limit    = [MaxLen]uint32{1 << 7, 1 << 11, 1 << 16, 1 << 21, 1 << 26, 1 << 31}
)

// Fits reports whether ord can be represented in a sequence of n bytes.
func Fits(ord uint32, n int) bool {
	return n >= 1 && n <= MaxLen && ord < limit[n-1]
}

// Encode writes ord as an n-byte sequence into dst and returns dst[:n].
// Continuation bytes carry six bits each, the lead byte carries the rest.
// Panics if !Fits(ord, n) or len(dst) < n.
//
// Well-formed output requires the shortest length for ord:
//
//	U+0000..U+007F      1
//	U+0080..U+07FF      2
//	U+0800..U+FFFF      3 (excluding U+D800..U+DFFF)
//	U+10000..U+10FFFF   4
func Encode(ord uint32, n int, dst []byte) []byte {
	if !Fits(ord, n) {
		panic("ord: ordinal does not fit in requested length")
	}
	dst = dst[:n]
	for i := n - 1; i > 0; i-- {
		dst[i] = byte(ord&0x3F) | 0x80
		ord >>= 6
	}
	dst[0] = byte(ord) | leadMark[n-1]
	return dst
}

// ShortestLen returns the length of the well-formed encoding of a scalar
// value, or 0 when ord is a surrogate or above U+10FFFF.
func ShortestLen(ord uint32) int {
	switch {
	case ord < 0x80:
		return 1
	case ord < 0x800:
		return 2
	case ord >= 0xD800 && ord <= 0xDFFF:
		return 0
	case ord < 0x10000:
		return 3
	case ord <= 0x10FFFF:
		return 4
	default:
		return 0
	}
}
