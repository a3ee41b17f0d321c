package prefilter

import (
	"fmt"

	"github.com/coregx/thompson/simd"
)

// ByteSet finds positions holding one of a fixed set of bytes.
// Sets of up to three bytes use the memchr scans; larger sets use a table.
type ByteSet struct {
	needles []byte
	table   simd.ByteSet
}

// NewByteSet creates a byte-set prefilter. needles must be non-empty.
func NewByteSet(needles []byte) *ByteSet {
	p := &ByteSet{needles: append([]byte(nil), needles...)}
	for _, b := range needles {
		p.table[b] = true
	}
	return p
}

// Find implements Prefilter.
func (p *ByteSet) Find(haystack []byte, start int) int {
	if start >= len(haystack) {
		return -1
	}
	h := haystack[start:]
	var i int
	switch len(p.needles) {
	case 1:
		i = simd.Memchr(h, p.needles[0])
	case 2:
		i = simd.Memchr2(h, p.needles[0], p.needles[1])
	case 3:
		i = simd.Memchr3(h, p.needles[0], p.needles[1], p.needles[2])
	default:
		i = simd.IndexByteSet(h, &p.table)
	}
	if i < 0 {
		return -1
	}
	return start + i
}

// String implements Prefilter.
func (p *ByteSet) String() string {
	return fmt.Sprintf("ByteSet(%q)", p.needles)
}
