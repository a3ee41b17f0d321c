package nfa

import "github.com/coregx/thompson/internal/conv"

// StateSpec is the portable form of one state: its label, terminal flag and
// successor IDs. Edge keys are not stored; they are the successors' labels.
// A []StateSpec indexed by StateID describes a whole Graph.
type StateSpec struct {
	Label    Label
	Terminal bool
	Next     []StateID
}

// Export returns the graph as a state table indexed by StateID.
func (g *Graph) Export() []StateSpec {
	specs := make([]StateSpec, len(g.states))
	for i := range g.states {
		s := &g.states[i]
		spec := StateSpec{Label: s.label, Terminal: s.terminal}
		for _, tr := range s.trans {
			spec.Next = append(spec.Next, tr.Next...)
		}
		specs[i] = spec
	}
	return specs
}

// Load rebuilds a Graph from a state table produced by Export (or by
// generated code). The table must contain exactly one START state, no SPLIT
// states, no edges into START, and only in-range successor IDs.
func Load(pattern string, specs []StateSpec) (*Graph, error) {
	start := InvalidState
	for i, spec := range specs {
		id := StateID(conv.IntToUint32(i))
		switch {
		case spec.Label == LabelStart:
			if start != InvalidState {
				return nil, &BuildError{Message: "more than one START state", StateID: id}
			}
			start = id
		case spec.Label == LabelSplit:
			return nil, &BuildError{Message: "SPLIT is a construction-only label", StateID: id}
		case !spec.Label.IsSymbol() && spec.Label != LabelEpsilon && spec.Label != LabelAny:
			return nil, &BuildError{Message: "unknown label " + spec.Label.String(), StateID: id}
		}
		for _, t := range spec.Next {
			if int(t) >= len(specs) {
				return nil, &BuildError{Message: "successor out of bounds", StateID: id}
			}
			if specs[t].Label == LabelStart {
				return nil, &BuildError{Message: "edge into START state", StateID: id}
			}
		}
	}
	if start == InvalidState {
		return nil, &BuildError{Message: "no START state", StateID: InvalidState}
	}

	b := NewBuilderWithCapacity(len(specs))
	for _, spec := range specs {
		id := b.AddState(spec.Label)
		if spec.Terminal {
			b.SetTerminal(id)
		}
	}
	for i, spec := range specs {
		for _, t := range spec.Next {
			b.AddEdge(StateID(conv.IntToUint32(i)), t)
		}
	}
	return b.Build(start, pattern)
}

// MustLoad is like Load but panics on an invalid table.
// It is intended for tables emitted by the codegen package.
func MustLoad(pattern string, specs []StateSpec) *Graph {
	g, err := Load(pattern, specs)
	if err != nil {
		panic("nfa: Load: " + err.Error())
	}
	return g
}
