// Package conv provides checked integer conversions for state arena indices.
//
// The arena stores states in a slice indexed by int, while edges and sparse
// sets store uint32 IDs. A narrowing conversion that overflows would silently
// alias two states, so these helpers panic instead: reaching the limit is a
// programming error (the builder enforces a much smaller MaxStates).
package conv

import "math"

// IntToUint32 converts an int to uint32.
// Panics if n < 0 or n > math.MaxUint32.
func IntToUint32(n int) uint32 {
	// Compare as uint so 32-bit platforms never overflow the constant.
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}

// Uint32ToInt converts a uint32 to int.
// Panics on 32-bit platforms when n does not fit in int.
func Uint32ToInt(n uint32) int {
	if uint64(n) > uint64(math.MaxInt) {
		panic("integer overflow: uint32 value out of int range")
	}
	return int(n)
}
