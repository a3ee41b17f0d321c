package thompson

import (
	"sync"

	"github.com/coregx/thompson/nfa"
	"github.com/coregx/thompson/prefilter"
)

// searchState holds per-search mutable state so that one compiled Regex can
// be searched from many goroutines. The automaton's active set and the
// prefilter tracker are both mutated on every step.
//
// Usage pattern:
//
//	st := r.pool.get()
//	defer r.pool.put(st)
type searchState struct {
	automaton *nfa.Automaton
	tracker   *prefilter.Tracker
}

func newSearchState(graph *nfa.Graph, pf prefilter.Prefilter) *searchState {
	return &searchState{
		automaton: nfa.NewAutomaton(graph),
		tracker:   prefilter.NewTracker(pf), // nil when pf is nil
	}
}

// reset prepares the state for reuse by another search.
func (s *searchState) reset() {
	s.automaton.Reset()
	if s.tracker != nil {
		s.tracker.Reset()
	}
}

// searchStatePool manages searchState instances for thread-safe reuse.
// This follows the stdlib regexp pattern of using sync.Pool.
type searchStatePool struct {
	pool sync.Pool
}

func newSearchStatePool(graph *nfa.Graph, pf prefilter.Prefilter) *searchStatePool {
	p := &searchStatePool{}
	p.pool = sync.Pool{
		New: func() any {
			return newSearchState(graph, pf)
		},
	}
	return p
}

func (p *searchStatePool) get() *searchState {
	return p.pool.Get().(*searchState)
}

func (p *searchStatePool) put(state *searchState) {
	if state == nil {
		return
	}
	state.reset()
	p.pool.Put(state)
}
