// Package simd provides the byte scans used by the prefilters to jump to
// candidate match positions.
//
// Scans for one, two or three needle bytes (Memchr, Memchr2, Memchr3) go
// through the runtime's vectorized bytes.IndexByte, which has assembly
// implementations on every major architecture. Haystacks shorter than
// vectorThreshold use a SWAR (SIMD Within A Register) loop that tests 8 bytes
// per iteration instead. The threshold depends on CPU features: AVX2 widens
// the runtime's stride, so its setup cost pays off later. IndexByteSet handles
// arbitrary byte sets with a 256-entry table.
package simd

// Memchr returns the index of the first instance of needle in haystack,
// or -1 if needle is not present.
func Memchr(haystack []byte, needle byte) int {
	if len(haystack) == 0 {
		return -1
	}
	if len(haystack) >= vectorThreshold {
		return memchrVector(haystack, needle)
	}
	return memchrGeneric(haystack, needle)
}

// Memchr2 returns the index of the first instance of either needle in
// haystack, or -1 if neither is present.
func Memchr2(haystack []byte, needle1, needle2 byte) int {
	if len(haystack) == 0 {
		return -1
	}
	if len(haystack) >= vectorThreshold {
		return memchrVectorN(haystack, needle1, needle2)
	}
	return memchr2Generic(haystack, needle1, needle2)
}

// Memchr3 returns the index of the first instance of any of the three needles
// in haystack, or -1 if none is present.
func Memchr3(haystack []byte, needle1, needle2, needle3 byte) int {
	if len(haystack) == 0 {
		return -1
	}
	if len(haystack) >= vectorThreshold {
		return memchrVectorN(haystack, needle1, needle2, needle3)
	}
	return memchr3Generic(haystack, needle1, needle2, needle3)
}

// ByteSet is a 256-entry membership table.
type ByteSet [256]bool

// IndexByteSet returns the index of the first byte of haystack contained in
// set, or -1.
func IndexByteSet(haystack []byte, set *ByteSet) int {
	for i, b := range haystack {
		if set[b] {
			return i
		}
	}
	return -1
}
