package chudnovsky

import "fmt"

// State is the cumulative series accumulator for terms [0, Terms),
// together with the count of fractional digits already finalized. A
// State is owned by exactly one goroutine; it is never shared or
// mutated concurrently.
type State struct {
	node Node

	// Terms is the number of series terms consumed so far.
	Terms uint64

	// DigitsEmitted is the number of fractional decimal digits already
	// finalized by ExtractNew. Finalized digits are never revised.
	DigitsEmitted int
}

// NewState returns an empty accumulator covering zero terms.
func NewState() *State {
	return &State{}
}

// Extend merges terms additional series terms into the accumulator by
// splitting the range [Terms, Terms+terms) and combining it with the
// cumulative node. Extending by zero terms is a caller bug and panics.
func (s *State) Extend(terms uint64) {
	if terms == 0 {
		panic("chudnovsky: extend by zero terms")
	}

	ext := Split(s.Terms, s.Terms+terms)

	if s.Terms == 0 {
		s.node = ext
	} else {
		s.node = Merge(s.node, ext)
	}

	s.Terms += terms
}

// Node returns the cumulative (P, Q, T) node for terms [0, Terms).
func (s *State) Node() Node {
	return s.node
}

// String implements fmt.Stringer for log output.
func (s *State) String() string {
	return fmt.Sprintf("chudnovsky.State{terms: %d, digits: %d}", s.Terms, s.DigitsEmitted)
}
