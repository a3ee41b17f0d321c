package thompson

import (
	"sync/atomic"
	"unicode/utf8"

	"github.com/coregx/thompson/nfa"
)

// find returns the leftmost-longest match starting at or after searchStart.
// haystack is text as bytes, needed only when a prefilter is configured.
func (r *Regex) find(st *searchState, text string, haystack []byte, searchStart int) (Match, bool) {
	atomic.AddUint64(&r.stats.Searches, 1)
	if searchStart < 0 || searchStart > len(text) || insideRune(text, searchStart) {
		return Match{}, false
	}

	tracker := st.tracker
	for i := searchStart; i <= len(text); {
		filtered := false
		if tracker != nil && tracker.IsActive() {
			c := tracker.Find(haystack, i)
			if c < 0 {
				// The prefilter only matches non-empty text, so no
				// candidate means no match.
				return Match{}, false
			}
			if !tracker.IsActive() {
				atomic.AddUint64(&r.stats.PrefilterAbandoned, 1)
			}
			i = c
			filtered = true
		}

		atomic.AddUint64(&r.stats.AutomatonRuns, 1)
		end := longestAt(st.automaton, text, i)
		if end > i || (end == i && r.config.AllowEmpty) {
			if filtered {
				tracker.ConfirmMatch()
				atomic.AddUint64(&r.stats.PrefilterHits, 1)
			}
			return Match{Start: i, Text: text[i:end]}, true
		}
		if filtered {
			atomic.AddUint64(&r.stats.PrefilterMisses, 1)
		}

		if i == len(text) {
			break
		}
		_, w := utf8.DecodeRuneInString(text[i:])
		i += w
	}
	return Match{}, false
}

// longestAt runs the automaton from byte offset i and returns the end of the
// longest match starting there, or -1. It stops at the end of the text or at
// the first symbol with no viable continuation.
func longestAt(a *nfa.Automaton, text string, i int) int {
	a.Reset()
	end := -1
	if a.Finished() {
		end = i
	}
	for j := i; j < len(text); {
		c, w := utf8.DecodeRuneInString(text[j:])
		if !a.Advance(c) {
			break
		}
		j += w
		if a.Finished() {
			end = j
		}
	}
	return end
}

// insideRune reports whether offset i splits the encoding of a valid
// multi-byte rune in text.
func insideRune(text string, i int) bool {
	if i == 0 || i >= len(text) || utf8.RuneStart(text[i]) {
		return false
	}
	for j := i - 1; j >= 0 && j >= i-(utf8.UTFMax-1); j-- {
		if utf8.RuneStart(text[j]) {
			_, size := utf8.DecodeRuneInString(text[j:])
			return size > i-j
		}
	}
	return false
}
