package ord

import (
	"bytes"
	"testing"
	"unicode/utf8"
)

func TestEncodeMatchesStdlib(t *testing.T) {
	var want [utf8.UTFMax]byte
	var got [MaxLen]byte
	for r := rune(0); r <= utf8.MaxRune; r += 3 {
		n := ShortestLen(uint32(r))
		if n == 0 {
			continue
		}
		m := utf8.EncodeRune(want[:], r)
		if m != n {
			t.Fatalf("ShortestLen(%U) = %d, stdlib encodes %d bytes", r, n, m)
		}
		if enc := Encode(uint32(r), n, got[:]); !bytes.Equal(enc, want[:m]) {
			t.Fatalf("Encode(%U, %d) = % X, want % X", r, n, enc, want[:m])
		}
	}
}

func TestEncodeIllFormed(t *testing.T) {
	tests := []struct {
		name string
		ord  uint32
		n    int
		want []byte
	}{
		{"overlong NUL", 0x00, 2, []byte{0xC0, 0x80}},
		{"overlong slash", 0x2F, 3, []byte{0xE0, 0x80, 0xAF}},
		{"surrogate", 0xD800, 3, []byte{0xED, 0xA0, 0x80}},
		{"above max", 0x110000, 4, []byte{0xF4, 0x90, 0x80, 0x80}},
		{"five byte", 0x200000, 5, []byte{0xF8, 0x88, 0x80, 0x80, 0x80}},
		{"six byte", 0x4000000, 6, []byte{0xFC, 0x84, 0x80, 0x80, 0x80, 0x80}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf [MaxLen]byte
			if got := Encode(tt.ord, tt.n, buf[:]); !bytes.Equal(got, tt.want) {
				t.Errorf("Encode(%#x, %d) = % X, want % X", tt.ord, tt.n, got, tt.want)
			}
		})
	}
}

func TestFits(t *testing.T) {
	tests := []struct {
		ord  uint32
		n    int
		want bool
	}{
		{0x7F, 1, true},
		{0x80, 1, false},
		{0x7FF, 2, true},
		{0x800, 2, false},
		{0x1FFFFF, 4, true},
		{0x200000, 4, false},
		{0x7FFFFFFF, 6, true},
		{0x80000000, 6, false},
		{0, 0, false},
		{0, 7, false},
	}

	for _, tt := range tests {
		if got := Fits(tt.ord, tt.n); got != tt.want {
			t.Errorf("Fits(%#x, %d) = %v, want %v", tt.ord, tt.n, got, tt.want)
		}
	}
}

func TestEncodePanicsWhenTooLarge(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Encode(0x80, 1) did not panic")
		}
	}()
	var buf [MaxLen]byte
	Encode(0x80, 1, buf[:])
}
