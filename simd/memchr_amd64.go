//go:build amd64

package simd

import "golang.org/x/sys/cpu"

// vectorThreshold is the haystack length below which the SWAR loop beats the
// runtime's IndexByte. With AVX2 the runtime processes 32-byte blocks, so
// short inputs stay on SWAR longer.
var vectorThreshold = func() int {
	if cpu.X86.HasAVX2 {
		return 32
	}
	return 16
}()
