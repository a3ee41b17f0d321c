package nfa

// Fragment is a partially built automaton: the states a predecessor links
// into (Entry) and the states a successor is linked from (Exit).
// Fragments exist only while compiling; their states live on in the Graph.
//
// Every composition adds O(1) states plus edges proportional to the entry
// and exit sets, which keeps the Graph linear in the pattern length.
type Fragment struct {
	Entry []StateID
	Exit  []StateID
}

// symbolFragment creates a one-state fragment used as both entry and exit.
func symbolFragment(b *Builder, label Label) Fragment {
	id := b.AddState(label)
	return Fragment{Entry: []StateID{id}, Exit: []StateID{id}}
}

// emptyFragment matches the empty string: a lone epsilon state.
func emptyFragment(b *Builder) Fragment {
	return symbolFragment(b, LabelEpsilon)
}

// link adds an edge from every state in from to every state in to.
func link(b *Builder, from, to []StateID) {
	for _, f := range from {
		for _, t := range to {
			b.AddEdge(f, t)
		}
	}
}

// sequence concatenates f and other: every exit of f is linked directly to
// every entry of other. The edge key is the entry's own label, so no extra
// epsilon state is needed.
func (f Fragment) sequence(b *Builder, other Fragment) Fragment {
	link(b, f.Exit, other.Entry)
	return Fragment{Entry: f.Entry, Exit: other.Exit}
}

// makeOptionalPrefix prepends a fresh epsilon state leading into f.
func (f Fragment) makeOptionalPrefix(b *Builder) (Fragment, StateID) {
	prefix := b.AddState(LabelEpsilon)
	link(b, []StateID{prefix}, f.Entry)
	return Fragment{Entry: []StateID{prefix}, Exit: f.Exit}, prefix
}

// optional implements '?': the prefix state is also an exit, so a successor
// can be reached without entering f at all.
func (f Fragment) optional(b *Builder) Fragment {
	g, prefix := f.makeOptionalPrefix(b)
	g.Exit = append(append(make([]StateID, 0, len(f.Exit)+1), f.Exit...), prefix)
	return g
}

// loopBack implements repetition through a fresh epsilon hub: every exit
// reaches the hub without input, and the hub leads back into every entry.
// The hub is the only exit. With bypass ('*') the hub is also the entry,
// so zero occurrences are accepted; without it ('+') f must be entered once.
func (f Fragment) loopBack(b *Builder, bypass bool) Fragment {
	hub := b.AddState(LabelEpsilon)
	link(b, f.Exit, []StateID{hub})
	link(b, []StateID{hub}, f.Entry)
	if bypass {
		return Fragment{Entry: []StateID{hub}, Exit: []StateID{hub}}
	}
	return Fragment{Entry: f.Entry, Exit: []StateID{hub}}
}

// union implements alternation over any number of branches at once: a shared
// epsilon entry leads into every branch and the exits are concatenated in
// branch order.
func union(b *Builder, branches []Fragment) Fragment {
	if len(branches) == 1 {
		return branches[0]
	}
	entry := b.AddState(LabelEpsilon)
	var exit []StateID
	for _, br := range branches {
		link(b, []StateID{entry}, br.Entry)
		exit = append(exit, br.Exit...)
	}
	return Fragment{Entry: []StateID{entry}, Exit: exit}
}
