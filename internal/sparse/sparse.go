// Package sparse provides the sparse set used to track active automaton states.
//
// A sparse set supports O(1) insertion, membership testing and clearing while
// keeping a dense, insertion-ordered list of members. The simulation clears
// and refills the active set once per input symbol, so O(1) Clear matters more
// than memory: both arrays are sized to the number of states in the graph.
package sparse

// SparseSet is a set of uint32 values drawn from [0, capacity).
//
// The sparse array maps a value to its index in dense. Stale entries in
// sparse are harmless: membership also checks that dense points back.
type SparseSet struct {
	sparse []uint32
	dense  []uint32
}

// NewSparseSet creates a set able to hold values in [0, capacity).
func NewSparseSet(capacity uint32) *SparseSet {
	return &SparseSet{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds value to the set and reports whether it was newly added.
// Panics if value >= capacity.
func (s *SparseSet) Insert(value uint32) bool {
	if s.Contains(value) {
		return false
	}
	s.sparse[value] = uint32(len(s.dense)) //nolint:gosec // len(dense) < capacity
	s.dense = append(s.dense, value)
	return true
}

// Contains reports whether value is in the set.
func (s *SparseSet) Contains(value uint32) bool {
	if uint64(value) >= uint64(len(s.sparse)) {
		return false
	}
	idx := s.sparse[value]
	return uint64(idx) < uint64(len(s.dense)) && s.dense[idx] == value
}

// Clear removes all elements in O(1).
func (s *SparseSet) Clear() {
	s.dense = s.dense[:0]
}

// Len returns the number of elements.
func (s *SparseSet) Len() int {
	return len(s.dense)
}

// IsEmpty reports whether the set has no elements.
func (s *SparseSet) IsEmpty() bool {
	return len(s.dense) == 0
}

// Capacity returns the exclusive upper bound on storable values.
func (s *SparseSet) Capacity() uint32 {
	return uint32(len(s.sparse)) //nolint:gosec // set at construction from uint32
}

// Values returns the members in insertion order.
// The returned slice is only valid until the next mutation.
func (s *SparseSet) Values() []uint32 {
	return s.dense
}

// At returns the i-th member in insertion order.
// Iterating with At and Len sees members appended during the iteration,
// which is what worklist algorithms need.
func (s *SparseSet) At(i int) uint32 {
	return s.dense[i]
}
