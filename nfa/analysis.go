package nfa

import (
	"sort"
	"unicode/utf8"

	"github.com/bits-and-blooms/bitset"
)

// successors calls f for every target of every transition of id.
func (g *Graph) successors(id StateID, f func(StateID)) {
	for _, tr := range g.states[id].trans {
		for _, t := range tr.Next {
			f(t)
		}
	}
}

// reachable returns the states reachable from start by any edges.
func (g *Graph) reachable() *bitset.BitSet {
	seen := bitset.New(uint(len(g.states)))
	work := []StateID{g.start}
	seen.Set(uint(g.start))
	for len(work) > 0 {
		id := work[len(work)-1]
		work = work[:len(work)-1]
		g.successors(id, func(t StateID) {
			if !seen.Test(uint(t)) {
				seen.Set(uint(t))
				work = append(work, t)
			}
		})
	}
	return seen
}

// coReachable returns the states from which some terminal state is reachable.
func (g *Graph) coReachable() *bitset.BitSet {
	n := len(g.states)
	preds := make([][]StateID, n)
	for i := range g.states {
		from := StateID(i) //nolint:gosec // arena size fits in StateID
		g.successors(from, func(t StateID) {
			preds[t] = append(preds[t], from)
		})
	}

	live := bitset.New(uint(n))
	var work []StateID
	for i := range g.states {
		if g.states[i].terminal {
			live.Set(uint(i))
			work = append(work, StateID(i)) //nolint:gosec // arena size fits in StateID
		}
	}
	for len(work) > 0 {
		id := work[len(work)-1]
		work = work[:len(work)-1]
		for _, p := range preds[id] {
			if !live.Test(uint(p)) {
				live.Set(uint(p))
				work = append(work, p)
			}
		}
	}
	return live
}

// Live returns the states that are both reachable from START and able to
// reach a terminal state. Every other state can never contribute to a match.
func (g *Graph) Live() *bitset.BitSet {
	return g.reachable().Intersection(g.coReachable())
}

// startClosure returns the epsilon-closure of START.
func (g *Graph) startClosure() *bitset.BitSet {
	seen := bitset.New(uint(len(g.states)))
	work := []StateID{g.start}
	seen.Set(uint(g.start))
	for len(work) > 0 {
		id := work[len(work)-1]
		work = work[:len(work)-1]
		for _, t := range g.states[id].Next(LabelEpsilon) {
			if !seen.Test(uint(t)) {
				seen.Set(uint(t))
				work = append(work, t)
			}
		}
	}
	return seen
}

// CanMatchEmpty returns true if the graph accepts the empty string.
func (g *Graph) CanMatchEmpty() bool {
	closure := g.startClosure()
	for i, ok := closure.NextSet(0); ok; i, ok = closure.NextSet(i + 1) {
		if g.states[i].terminal {
			return true
		}
	}
	return false
}

// FirstByteSet represents the set of bytes that can start a match.
// For a multi-byte rune only its leading UTF-8 byte is recorded, which is
// enough to find candidate positions in valid UTF-8 input.
type FirstByteSet struct {
	// bytes is a 256-bit lookup table for O(1) membership test
	bytes [256]bool
	// count is the number of valid first bytes (0-256)
	count int
	// complete is true if no match can start with a byte outside the set
	complete bool
}

// Contains returns true if b can be the first byte of a match.
func (f *FirstByteSet) Contains(b byte) bool {
	return f.bytes[b]
}

// Count returns the number of possible first bytes.
func (f *FirstByteSet) Count() int {
	return f.count
}

// IsComplete returns true if this set is exhaustive.
func (f *FirstByteSet) IsComplete() bool {
	return f.complete
}

// IsUseful returns true if the set can be used to skip start positions.
func (f *FirstByteSet) IsUseful() bool {
	return f.complete && f.count > 0 && f.count < 256
}

// Bytes returns the members in ascending order.
func (f *FirstByteSet) Bytes() []byte {
	out := make([]byte, 0, f.count)
	for i := 0; i < 256; i++ {
		if f.bytes[i] {
			out = append(out, byte(i))
		}
	}
	return out
}

func (f *FirstByteSet) add(b byte) {
	if !f.bytes[b] {
		f.bytes[b] = true
		f.count++
	}
}

// FirstBytes computes the set of bytes a match can start with.
//
// The set is incomplete when a match can begin with '.', or when the graph
// accepts the empty string (a zero-length match may start anywhere).
func (g *Graph) FirstBytes() *FirstByteSet {
	result := &FirstByteSet{complete: true}
	if g.CanMatchEmpty() {
		result.complete = false
		return result
	}

	live := g.Live()
	var buf [utf8.UTFMax]byte
	closure := g.startClosure()
	for i, ok := closure.NextSet(0); ok; i, ok = closure.NextSet(i + 1) {
		for _, tr := range g.states[i].trans {
			if tr.Label == LabelEpsilon {
				continue
			}
			if !anyLive(live, tr.Next) {
				continue
			}
			if tr.Label == LabelAny {
				result.complete = false
				return result
			}
			utf8.EncodeRune(buf[:], rune(tr.Label))
			result.add(buf[0])
		}
	}
	return result
}

func anyLive(live *bitset.BitSet, ids []StateID) bool {
	for _, id := range ids {
		if live.Test(uint(id)) {
			return true
		}
	}
	return false
}

// maxLiteralSteps bounds the path enumeration in Literals relative to the
// requested literal count. Epsilon diamonds (e.g. from chained '?') produce
// many paths spelling the same string.
const maxLiteralSteps = 256

// Literals returns the complete, sorted set of strings the graph accepts,
// provided that set is finite, non-empty, contains no empty string, needs no
// '.', and has at most limit members. Otherwise ok is false.
// Any cycle among live states disqualifies the graph, even a pure epsilon
// cycle such as the one in "()*".
func (g *Graph) Literals(limit int) (lits []string, ok bool) {
	if limit <= 0 {
		return nil, false
	}
	live := g.Live()
	if !live.Test(uint(g.start)) {
		return nil, false
	}

	found := make(map[string]struct{})
	onPath := bitset.New(uint(len(g.states)))
	budget := limit * maxLiteralSteps
	var path []rune
	aborted := false

	var walk func(id StateID)
	walk = func(id StateID) {
		if aborted {
			return
		}
		budget--
		if budget < 0 || onPath.Test(uint(id)) {
			aborted = true
			return
		}
		s := &g.states[id]
		if s.label == LabelAny {
			aborted = true
			return
		}
		if s.label.IsSymbol() {
			path = append(path, rune(s.label))
			defer func() { path = path[:len(path)-1] }()
		}
		if s.terminal {
			found[string(path)] = struct{}{}
			if len(found) > limit || len(path) == 0 {
				aborted = true
				return
			}
		}
		onPath.Set(uint(id))
		g.successors(id, func(t StateID) {
			if live.Test(uint(t)) {
				walk(t)
			}
		})
		onPath.Clear(uint(id))
	}
	walk(g.start)

	if aborted || len(found) == 0 {
		return nil, false
	}
	lits = make([]string, 0, len(found))
	for s := range found {
		lits = append(lits, s)
	}
	sort.Strings(lits)
	return lits, true
}

// IsLiteral returns the single string the graph accepts, if it accepts
// exactly one non-empty string built from literals.
func (g *Graph) IsLiteral() (string, bool) {
	lits, ok := g.Literals(1)
	if !ok || len(lits) != 1 {
		return "", false
	}
	return lits[0], true
}
