package election

// SelectionMap tracks at most one chosen candidate per position during a
// voting session. Selections are session-scoped, kept in memory only, and
// rebuilt fresh for every session. Choosing a new candidate for a position
// that already has one overwrites the prior choice.
type SelectionMap struct {
	choices map[string]Candidate
	order   []string
}

// NewSelectionMap creates an empty selection.
func NewSelectionMap() *SelectionMap {
	return &SelectionMap{choices: make(map[string]Candidate)}
}

// Select inserts or replaces the entry for the candidate's position.
// Candidates without a usable position reference are bucketed under
// UnknownPosition rather than rejected.
func (s *SelectionMap) Select(c Candidate) {
	key := c.PositionKey()
	if _, ok := s.choices[key]; !ok {
		s.order = append(s.order, key)
	}
	s.choices[key] = c
}

// Selected returns the current choice for a position key, if any.
func (s *SelectionMap) Selected(positionKey string) (Candidate, bool) {
	c, ok := s.choices[positionKey]
	return c, ok
}

// Count returns the number of distinct positions with a selection.
func (s *SelectionMap) Count() int {
	return len(s.choices)
}

// Clear discards every selection, returning the map to its fresh state.
func (s *SelectionMap) Clear() {
	s.choices = make(map[string]Candidate)
	s.order = nil
}

// VotePairs flattens the selection into (position, candidate) pairs in the
// order the positions were first selected.
func (s *SelectionMap) VotePairs() []VotePair {
	pairs := make([]VotePair, 0, len(s.choices))
	for _, key := range s.order {
		c := s.choices[key]
		pairs = append(pairs, VotePair{Position: key, CandidateID: c.ID})
	}
	return pairs
}
