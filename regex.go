// Package thompson provides a regular-expression engine built on a Thompson
// NFA.
//
// A pattern is compiled once into an immutable state graph. Searching
// simulates every viable NFA path in parallel, so the cost is O(states) per
// input character and never exponential: there is no backtracking.
//
// Basic usage:
//
//	re, err := thompson.Compile(`a+|Bdg`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	m, ok := re.MatchFirst("xxBdgaaa", 0)
//	fmt.Println(m.Start, m.Text, ok) // 2 Bdg true
//
//	for _, m := range re.MatchAll("Bdgaaa") {
//	    fmt.Println(m.Start, m.Text) // 0 Bdg, then 3 aaa
//	}
//
// Syntax: literal characters, '.' (any character), '*', '+', '?', '|',
// parentheses for grouping, and '\' to take the next character literally.
// There are no character classes, anchors, counted repetition or
// backreferences.
//
// Matching policy: the leftmost start position wins, and from that position
// the longest match is reported (greedy longest, not first alternative).
// Positions are byte offsets; the text is decoded as UTF-8 and each rune is
// one input symbol.
package thompson

import (
	"sync/atomic"
	"unicode/utf8"

	"github.com/coregx/thompson/nfa"
	"github.com/coregx/thompson/prefilter"
)

// Regex represents a compiled regular expression.
//
// A Regex is safe to use concurrently from multiple goroutines, except for
// ResetStats. Each search borrows its own automaton from an internal pool.
//
// Example:
//
//	re := thompson.MustCompile(`(ab)+t`)
//	if re.MatchString("xxababt") {
//	    println("matched!")
//	}
type Regex struct {
	pattern string
	config  Config
	graph   *nfa.Graph
	pf      prefilter.Prefilter
	pool    *searchStatePool
	stats   Stats
}

// Match is one occurrence of a pattern: the byte offset where it starts and
// the matched text.
type Match struct {
	Start int
	Text  string
}

// End returns the byte offset just past the match.
func (m Match) End() int {
	return m.Start + len(m.Text)
}

// Stats holds search counters. All fields are updated atomically.
type Stats struct {
	// Searches counts leftmost-longest searches. MatchAll runs one per
	// match plus a final one that finds nothing.
	Searches uint64

	// AutomatonRuns counts start positions verified by the automaton
	AutomatonRuns uint64

	// PrefilterHits counts prefilter candidates that verified
	PrefilterHits uint64

	// PrefilterMisses counts prefilter candidates that did not verify
	PrefilterMisses uint64

	// PrefilterAbandoned counts searches where the prefilter was retired
	// because of a high false-positive rate
	PrefilterAbandoned uint64
}

// Compile compiles a regular expression pattern with DefaultConfig.
//
// Returns a *nfa.SyntaxError for malformed patterns: unmatched parentheses,
// a trailing '\', or an operator with no operand.
//
// Example:
//
//	re, err := thompson.Compile(`colou?r`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile compiles a regular expression pattern and panics if it fails.
//
// Example:
//
//	var greeting = thompson.MustCompile(`hel+o`)
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("thompson: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles a pattern with a custom configuration.
//
// Example:
//
//	config := thompson.DefaultConfig()
//	config.EnablePrefilter = false
//	re, err := thompson.CompileWithConfig("foo|bar", config)
func CompileWithConfig(pattern string, config Config) (*Regex, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	compiler := nfa.NewCompiler(nfa.CompilerConfig{MaxStates: config.MaxStates})
	graph, err := compiler.Compile(pattern)
	if err != nil {
		return nil, err
	}

	var pf prefilter.Prefilter
	if config.EnablePrefilter {
		pf = prefilter.New(graph, prefilter.Config{
			MaxLiterals:   config.MaxLiterals,
			MaxFirstBytes: config.MaxFirstBytes,
		})
	}

	return &Regex{
		pattern: pattern,
		config:  config,
		graph:   graph,
		pf:      pf,
		pool:    newSearchStatePool(graph, pf),
	}, nil
}

// QuoteMeta returns a string that escapes all metacharacters inside the
// argument text; the returned pattern matches the literal text.
//
// Example:
//
//	escaped := thompson.QuoteMeta("1+1=2?")
//	// escaped = `1\+1=2\?`
func QuoteMeta(s string) string {
	const special = `\.+*?()|`

	n := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	buf := make([]byte, len(s)+n)
	j := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			buf[j] = '\\'
			j++
		}
		buf[j] = s[i]
		j++
	}
	return string(buf)
}

// isSpecial returns true if c is in the special characters string.
func isSpecial(c byte, special string) bool {
	for i := 0; i < len(special); i++ {
		if c == special[i] {
			return true
		}
	}
	return false
}

// MatchFirst returns the first match at or after byte offset searchStart.
//
// Start positions are tried left to right; from the first position where
// the pattern matches, the longest match is returned. ok is false if there
// is no match, if searchStart is outside [0, len(text)], or if searchStart
// falls inside a multi-byte UTF-8 sequence. Bytes of invalid UTF-8 are
// single runes, so any offset into them is a valid start.
//
// Example:
//
//	re := thompson.MustCompile(`a+`)
//	m, _ := re.MatchFirst("xaaab", 0)
//	// m.Start = 1, m.Text = "aaa"
func (r *Regex) MatchFirst(text string, searchStart int) (m Match, ok bool) {
	st := r.pool.get()
	defer r.pool.put(st)

	var haystack []byte
	if r.pf != nil {
		haystack = []byte(text)
	}
	return r.find(st, text, haystack, searchStart)
}

// MatchAll returns all non-overlapping matches, left to right.
//
// Each search resumes where the previous match ended. After a zero-length
// match the search resumes one character later, so every position is
// considered once. Returns nil if there is no match.
//
// Example:
//
//	re := thompson.MustCompile(`a+|Bdg`)
//	ms := re.MatchAll("Bdgaaa")
//	// ms = [{0 Bdg} {3 aaa}]
func (r *Regex) MatchAll(text string) []Match {
	st := r.pool.get()
	defer r.pool.put(st)

	var haystack []byte
	if r.pf != nil {
		haystack = []byte(text)
	}

	var matches []Match
	pos := 0
	for pos <= len(text) {
		m, ok := r.find(st, text, haystack, pos)
		if !ok {
			break
		}
		matches = append(matches, m)
		if len(m.Text) > 0 {
			pos = m.End()
			continue
		}
		if m.Start == len(text) {
			break
		}
		_, w := utf8.DecodeRuneInString(text[m.Start:])
		pos = m.Start + w
	}
	return matches
}

// MatchString reports whether text contains any match of the pattern.
//
// Example:
//
//	re := thompson.MustCompile(`hel+o`)
//	re.MatchString("say hello") // true
func (r *Regex) MatchString(text string) bool {
	_, ok := r.MatchFirst(text, 0)
	return ok
}

// CountString returns the number of matches MatchAll would return.
func (r *Regex) CountString(text string) int {
	return len(r.MatchAll(text))
}

// ReplaceAllLiteralString returns a copy of src with every match replaced by
// repl. The replacement is substituted directly.
//
// Example:
//
//	re := thompson.MustCompile(`a+`)
//	re.ReplaceAllLiteralString("baaad", "A") // "bAd"
func (r *Regex) ReplaceAllLiteralString(src, repl string) string {
	matches := r.MatchAll(src)
	if len(matches) == 0 {
		return src
	}

	result := make([]byte, 0, len(src))
	lastEnd := 0
	for _, m := range matches {
		result = append(result, src[lastEnd:m.Start]...)
		result = append(result, repl...)
		lastEnd = m.End()
	}
	result = append(result, src[lastEnd:]...)
	return string(result)
}

// String returns the source text used to compile the regular expression.
func (r *Regex) String() string {
	return r.pattern
}

// Graph returns the compiled automaton graph.
func (r *Regex) Graph() *nfa.Graph {
	return r.graph
}

// Prefilter returns the name of the candidate scan in use, or "" if none.
func (r *Regex) Prefilter() string {
	if r.pf == nil {
		return ""
	}
	return r.pf.String()
}

// Stats returns a snapshot of the search counters.
func (r *Regex) Stats() Stats {
	return Stats{
		Searches:           atomic.LoadUint64(&r.stats.Searches),
		AutomatonRuns:      atomic.LoadUint64(&r.stats.AutomatonRuns),
		PrefilterHits:      atomic.LoadUint64(&r.stats.PrefilterHits),
		PrefilterMisses:    atomic.LoadUint64(&r.stats.PrefilterMisses),
		PrefilterAbandoned: atomic.LoadUint64(&r.stats.PrefilterAbandoned),
	}
}

// ResetStats zeroes the search counters. It is safe to call concurrently
// with searches, but the counters are cleared one at a time, so a search
// running during the reset may leave a partial count behind.
func (r *Regex) ResetStats() {
	atomic.StoreUint64(&r.stats.Searches, 0)
	atomic.StoreUint64(&r.stats.AutomatonRuns, 0)
	atomic.StoreUint64(&r.stats.PrefilterHits, 0)
	atomic.StoreUint64(&r.stats.PrefilterMisses, 0)
	atomic.StoreUint64(&r.stats.PrefilterAbandoned, 0)
}
