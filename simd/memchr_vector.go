package simd

import "bytes"

// memchrVector scans with the runtime's assembly IndexByte.
func memchrVector(haystack []byte, needle byte) int {
	return bytes.IndexByte(haystack, needle)
}

// memchrVectorN finds the earliest of several needles by running one
// vectorized scan per needle, each over the window that ends at the best
// position found so far. Total work stays linear in len(haystack) per needle.
func memchrVectorN(haystack []byte, needles ...byte) int {
	best := -1
	window := haystack
	for _, n := range needles {
		if i := bytes.IndexByte(window, n); i >= 0 {
			best = i
			window = haystack[:i]
		}
	}
	return best
}
