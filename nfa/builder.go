package nfa

import (
	"github.com/coregx/thompson/internal/conv"
)

// Builder constructs a Graph incrementally using a low-level API.
// It is used by the Compiler and by Load.
type Builder struct {
	states []State
}

// NewBuilder creates a new builder with default capacity
func NewBuilder() *Builder {
	return NewBuilderWithCapacity(16)
}

// NewBuilderWithCapacity creates a new builder with specified initial capacity
func NewBuilderWithCapacity(capacity int) *Builder {
	return &Builder{
		states: make([]State, 0, capacity),
	}
}

// AddState adds a state with the given label and returns its ID
func (b *Builder) AddState(label Label) StateID {
	id := StateID(conv.IntToUint32(len(b.states)))
	b.states = append(b.states, State{
		id:    id,
		label: label,
	})
	return id
}

// AddEdge adds a transition from -> to, keyed by the label of to.
// Adding an existing edge is a no-op.
func (b *Builder) AddEdge(from, to StateID) {
	s := &b.states[from]
	label := b.states[to].label
	for i := range s.trans {
		tr := &s.trans[i]
		if tr.Label != label {
			continue
		}
		for _, n := range tr.Next {
			if n == to {
				return
			}
		}
		tr.Next = append(tr.Next, to)
		return
	}
	s.trans = append(s.trans, Transition{Label: label, Next: []StateID{to}})
}

// SetTerminal marks a state as terminal
func (b *Builder) SetTerminal(id StateID) {
	b.states[id].terminal = true
}

// Label returns the label of a state added earlier
func (b *Builder) Label(id StateID) Label {
	return b.states[id].label
}

// Len returns the number of states added so far
func (b *Builder) Len() int {
	return len(b.states)
}

// Build finalizes the graph with the given START state.
// The builder must not be used afterwards.
func (b *Builder) Build(start StateID, pattern string) (*Graph, error) {
	if int(start) >= len(b.states) {
		return nil, &BuildError{Message: "start state out of bounds", StateID: start}
	}
	if b.states[start].label != LabelStart {
		return nil, &BuildError{Message: "start state must be labeled START", StateID: start}
	}
	g := &Graph{
		states:  b.states,
		start:   start,
		pattern: pattern,
	}
	b.states = nil
	return g, nil
}
