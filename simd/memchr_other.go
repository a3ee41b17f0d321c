//go:build !amd64

package simd

// vectorThreshold is the haystack length below which the SWAR loop beats the
// runtime's IndexByte.
var vectorThreshold = 16
