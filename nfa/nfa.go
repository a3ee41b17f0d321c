package nfa

import (
	"fmt"
	"strings"
)

// StateID uniquely identifies a state within a Graph.
// This is a 32-bit unsigned integer for compact representation.
type StateID uint32

// InvalidState represents an invalid/uninitialized state ID
const InvalidState StateID = 0xFFFFFFFF

// Label is what a state consumes when it is entered: an ordinary input
// symbol (any non-negative rune) or one of the reserved markers below.
//
// An edge is keyed by the label of its target, so the successors of a state
// reachable on symbol c are exactly its targets labeled c.
type Label int32

// Reserved labels. They are negative so they never collide with a rune.
const (
	// LabelEpsilon marks a state entered without consuming input
	LabelEpsilon Label = -1 - iota

	// LabelAny marks a state entered on any single ordinary symbol
	LabelAny

	// LabelSplit marks a pending alternation during construction.
	// It never appears in a compiled Graph.
	LabelSplit

	// LabelStart marks the unique entry state of a Graph
	LabelStart
)

// IsSymbol returns true if the label is an ordinary input symbol
func (l Label) IsSymbol() bool {
	return l >= 0
}

// String returns a human-readable representation of the label
func (l Label) String() string {
	switch l {
	case LabelEpsilon:
		return "ε"
	case LabelAny:
		return "ANY"
	case LabelSplit:
		return "SPLIT"
	case LabelStart:
		return "START"
	}
	if l.IsSymbol() {
		return fmt.Sprintf("%q", rune(l))
	}
	return fmt.Sprintf("Label(%d)", int32(l))
}

// Transition groups the successors of a state that share one label.
type Transition struct {
	Label Label
	Next  []StateID
}

// State is a single automaton node.
// States are compared by ID only: two states with identical labels and
// transitions remain distinct.
type State struct {
	id       StateID
	label    Label
	terminal bool

	// Keys are unique; insertion order is kept for deterministic output.
	trans []Transition
}

// ID returns the state's unique identifier
func (s *State) ID() StateID {
	return s.id
}

// Label returns what the state consumes when entered
func (s *State) Label() Label {
	return s.label
}

// IsTerminal returns true if reaching this state is a successful match
func (s *State) IsTerminal() bool {
	return s.terminal
}

// Transitions returns the outgoing transitions grouped by label.
// The returned slice must not be modified.
func (s *State) Transitions() []Transition {
	return s.trans
}

// Next returns the successors reachable on label, or nil.
func (s *State) Next(label Label) []StateID {
	for i := range s.trans {
		if s.trans[i].Label == label {
			return s.trans[i].Next
		}
	}
	return nil
}

// String returns a human-readable representation of the state
func (s *State) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "State(%d, %s", s.id, s.label)
	if s.terminal {
		sb.WriteString(", terminal")
	}
	for _, tr := range s.trans {
		fmt.Fprintf(&sb, ", %s -> %v", tr.Label, tr.Next)
	}
	sb.WriteByte(')')
	return sb.String()
}

// Graph is a compiled automaton: an immutable arena of states and the ID of
// its START state. A Graph is safe for concurrent use; simulation state lives
// in Automaton.
type Graph struct {
	states  []State
	start   StateID
	pattern string
}

// Start returns the ID of the START state
func (g *Graph) Start() StateID {
	return g.start
}

// State returns the state with the given ID.
// Returns nil if the ID is invalid.
func (g *Graph) State(id StateID) *State {
	if id == InvalidState || int(id) >= len(g.states) {
		return nil
	}
	return &g.states[id]
}

// States returns the total number of states in the graph
func (g *Graph) States() int {
	return len(g.states)
}

// Pattern returns the source pattern the graph was built from
func (g *Graph) Pattern() string {
	return g.pattern
}

// IsTerminal returns true if the given state is terminal
func (g *Graph) IsTerminal(id StateID) bool {
	if s := g.State(id); s != nil {
		return s.terminal
	}
	return false
}

// String returns a human-readable representation of the graph
func (g *Graph) String() string {
	return fmt.Sprintf("Graph{pattern: %q, states: %d, start: %d}", g.pattern, len(g.states), g.start)
}

// Dump returns one line per state, for debugging and golden tests.
func (g *Graph) Dump() string {
	var sb strings.Builder
	sb.WriteString(g.String())
	sb.WriteByte('\n')
	for i := range g.states {
		sb.WriteString("  ")
		sb.WriteString(g.states[i].String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
