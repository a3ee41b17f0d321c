// Package prefilter finds candidate match start positions before the NFA runs.
//
// A prefilter never decides a match. It only skips positions at which no
// match can start: every position it returns must still be verified by the
// automaton, and every real match start must be returned by some call.
//
// Two strategies are built from a compiled graph:
//   - a finite set of literal strings -> Aho-Corasick multi-pattern search
//   - a small set of possible first bytes -> memchr-style byte scan
//
// Graphs that accept the empty string get no prefilter: a zero-length match
// may start anywhere.
package prefilter

import (
	"unicode/utf8"

	"github.com/coregx/thompson/internal/conv"
	"github.com/coregx/thompson/nfa"
)

// Prefilter is used to quickly find candidate match positions before running
// the full automaton.
type Prefilter interface {
	// Find returns the index of the first candidate at or after start, or -1
	// if no candidate exists. start must be in [0, len(haystack)].
	Find(haystack []byte, start int) int

	// String names the strategy, for diagnostics.
	String() string
}

// Config limits prefilter construction.
type Config struct {
	// MaxLiterals is the largest literal set handed to Aho-Corasick.
	// Default: 64
	MaxLiterals int

	// MaxFirstBytes is the largest first-byte set worth scanning for.
	// Default: 16
	MaxFirstBytes int
}

// DefaultConfig returns the default prefilter limits.
func DefaultConfig() Config {
	return Config{
		MaxLiterals:   64,
		MaxFirstBytes: 16,
	}
}

// New selects a prefilter for g, or returns nil if none applies.
// A literal set that NewLiterals rejects (one literal inside another) falls
// back to the first-byte scan.
func New(g *nfa.Graph, config Config) Prefilter {
	if g.CanMatchEmpty() || hasRuneError(g) {
		return nil
	}
	if lits, ok := g.Literals(config.MaxLiterals); ok && len(lits) > 1 {
		if pf, err := NewLiterals(lits); err == nil {
			return pf
		}
	}
	fb := g.FirstBytes()
	if !fb.IsUseful() || fb.Count() > config.MaxFirstBytes {
		return nil
	}
	return NewByteSet(fb.Bytes())
}

// hasRuneError reports whether some state consumes U+FFFD, which the search
// decodes from every invalid input byte. A byte scan for its encoding would
// miss those positions.
func hasRuneError(g *nfa.Graph) bool {
	for i := 0; i < g.States(); i++ {
		if g.State(nfa.StateID(conv.IntToUint32(i))).Label() == nfa.Label(utf8.RuneError) {
			return true
		}
	}
	return false
}
