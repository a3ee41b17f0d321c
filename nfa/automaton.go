package nfa

import (
	"github.com/coregx/thompson/internal/conv"
	"github.com/coregx/thompson/internal/sparse"
)

// Automaton simulates a Graph over an input sequence, one symbol at a time.
//
// It tracks every state the NFA could be in simultaneously. After each step
// the active set is replaced by its epsilon-closure, so it never contains a
// state whose epsilon successors are missing.
//
// An Automaton is NOT safe for concurrent use. The Graph it reads may be
// shared; give each goroutine its own Automaton.
type Automaton struct {
	graph *Graph

	active *sparse.SparseSet
	next   *sparse.SparseSet

	// finished caches whether active holds a terminal state.
	finished bool
}

// NewAutomaton creates an automaton over g, already reset.
func NewAutomaton(g *Graph) *Automaton {
	capacity := conv.IntToUint32(g.States())
	a := &Automaton{
		graph:  g,
		active: sparse.NewSparseSet(capacity),
		next:   sparse.NewSparseSet(capacity),
	}
	a.Reset()
	return a
}

// Graph returns the compiled graph this automaton runs over
func (a *Automaton) Graph() *Graph {
	return a.graph
}

// Reset sets the active set to the epsilon-closure of the START state.
func (a *Automaton) Reset() {
	a.active.Clear()
	a.active.Insert(uint32(a.graph.start))
	a.finished = a.epsilonClosure(a.active)
}

// Advance consumes one input symbol.
//
// The successors of every active state on LabelAny and on the symbol itself
// are collected. If there are none, the active set is left unchanged and
// false is returned: there is no viable continuation and the caller must
// Reset before starting a new search. Otherwise the active set becomes the
// epsilon-closure of the successors and true is returned.
func (a *Automaton) Advance(symbol rune) bool {
	label := Label(symbol)
	if !label.IsSymbol() {
		return false
	}

	a.next.Clear()
	for _, id := range a.active.Values() {
		s := &a.graph.states[id]
		for i := range s.trans {
			tr := &s.trans[i]
			if tr.Label != label && tr.Label != LabelAny {
				continue
			}
			for _, t := range tr.Next {
				a.next.Insert(uint32(t))
			}
		}
	}
	if a.next.IsEmpty() {
		return false
	}

	a.finished = a.epsilonClosure(a.next)
	a.active, a.next = a.next, a.active
	return true
}

// Finished returns true if any active state is terminal.
func (a *Automaton) Finished() bool {
	return a.finished
}

// Active returns a snapshot of the active state IDs in discovery order.
func (a *Automaton) Active() []StateID {
	values := a.active.Values()
	ids := make([]StateID, len(values))
	for i, v := range values {
		ids[i] = StateID(v)
	}
	return ids
}

// epsilonClosure grows set in place with every state reachable through
// epsilon edges and reports whether the result holds a terminal state.
//
// The set doubles as the worklist: members appended during the loop are
// visited by later iterations. Insert ignores states already present, so
// epsilon cycles cannot make the set grow forever and the loop ends once an
// iteration reaches the last member without adding any.
func (a *Automaton) epsilonClosure(set *sparse.SparseSet) bool {
	terminal := false
	for i := 0; i < set.Len(); i++ {
		s := &a.graph.states[set.At(i)]
		if s.terminal {
			terminal = true
		}
		for _, t := range s.Next(LabelEpsilon) {
			set.Insert(uint32(t))
		}
	}
	return terminal
}
