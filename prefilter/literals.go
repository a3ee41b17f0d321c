package prefilter

import (
	"fmt"
	"strings"

	"github.com/coregx/ahocorasick"
)

// Literals finds occurrences of any string from a finite set using an
// Aho-Corasick automaton.
//
// The set must be infix-free: no literal occurs inside another at a non-zero
// offset. Then an occurrence that starts earlier also ends earlier, so the
// first occurrence the automaton reports is the one with the leftmost start.
type Literals struct {
	auto  *ahocorasick.Automaton
	count int
}

// NewLiterals builds a literal-set prefilter.
func NewLiterals(lits []string) (*Literals, error) {
	if len(lits) == 0 {
		return nil, fmt.Errorf("prefilter: empty literal set")
	}
	if inner, outer, ok := findInnerLiteral(lits); ok {
		return nil, fmt.Errorf("prefilter: literal %q occurs inside %q", inner, outer)
	}
	builder := ahocorasick.NewBuilder()
	for _, lit := range lits {
		builder.AddPattern([]byte(lit))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("prefilter: building Aho-Corasick automaton: %w", err)
	}
	return &Literals{auto: auto, count: len(lits)}, nil
}

// Find implements Prefilter.
func (p *Literals) Find(haystack []byte, start int) int {
	if start >= len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

// String implements Prefilter.
func (p *Literals) String() string {
	return fmt.Sprintf("AhoCorasick(%d literals)", p.count)
}

// findInnerLiteral reports a pair where inner occurs in outer past its first
// byte. A shared prefix is fine: both occurrences start at the same position.
func findInnerLiteral(lits []string) (inner, outer string, ok bool) {
	for _, o := range lits {
		if len(o) < 2 {
			continue
		}
		for _, in := range lits {
			if in != "" && strings.Contains(o[1:], in) {
				return in, o, true
			}
		}
	}
	return "", "", false
}
