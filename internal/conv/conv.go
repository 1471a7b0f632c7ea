// Package conv provides checked integer conversions for byte counts and
// stream offsets.
//
// Sizes come from user input (chunk sizes) and from io counters (int64).
// Converting them silently would wrap on overflow, so these helpers panic
// instead. Callers validate ranges first; a panic here is a programming
// error.
package conv

import "math"

// Uint64ToInt converts a uint64 to int.
// Panics if n > math.MaxInt.
//
//go:inline
func Uint64ToInt(n uint64) int {
	if n > math.MaxInt {
		panic("integer overflow: uint64 value out of int range")
	}
	return int(n)
}

// IntToUint64 converts a non-negative int to uint64.
// Panics if n < 0.
//
//go:inline
func IntToUint64(n int) uint64 {
	if n < 0 {
		panic("integer overflow: negative int has no uint64 value")
	}
	return uint64(n)
}

// Int64ToUint64 converts a non-negative int64 to uint64.
// Panics if n < 0.
//
//go:inline
func Int64ToUint64(n int64) uint64 {
	if n < 0 {
		panic("integer overflow: negative int64 has no uint64 value")
	}
	return uint64(n)
}
