package election

import "fmt"

// UnknownPosition is the fallback key for candidates whose position
// reference is missing or malformed. The catalog is not guaranteed
// well-formed, so such candidates are bucketed here instead of dropped.
const UnknownPosition = "Unknown Position"

// Position is an electable office that candidates run for. Positions are
// created by administrators and are read-only reference data for voters.
type Position struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Candidate is a person running for exactly one Position. The vote count is
// owned and mutated only by the server; voters hold a read-only snapshot
// fetched at session start, which may be stale.
type Candidate struct {
	ID         string    `json:"_id"`
	Name       string    `json:"name"`
	Department string    `json:"department"`
	Position   *Position `json:"position"`
	Votes      int       `json:"votes"`
}

// PositionKey returns the identifier used to key selections for this
// candidate, falling back to UnknownPosition when the reference is absent.
func (c Candidate) PositionKey() string {
	if c.Position == nil || c.Position.ID == "" {
		return UnknownPosition
	}
	return c.Position.ID
}

// PositionName returns the display name of the candidate's position,
// falling back to UnknownPosition when the reference is absent.
func (c Candidate) PositionName() string {
	if c.Position == nil || c.Position.Name == "" {
		return UnknownPosition
	}
	return c.Position.Name
}

// Validate checks if the candidate data is complete enough to vote for.
func (c Candidate) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("candidate id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("candidate name is required")
	}
	return nil
}

// VotePair is one (position, candidate) choice inside a vote record.
type VotePair struct {
	Position    string `json:"position"`
	CandidateID string `json:"candidateId"`
}

// VoteRecord is the finalized set of choices sent to the server for one
// voter. It is constructed once from a SelectionMap at submit time and
// never mutated afterwards.
type VoteRecord struct {
	UserID string     `json:"userId"`
	Votes  []VotePair `json:"votes"`
}

// NewVoteRecord builds the submission payload from the current selection.
// Pairs appear in the order the positions were first selected.
func NewVoteRecord(userID string, selection *SelectionMap) VoteRecord {
	return VoteRecord{
		UserID: userID,
		Votes:  selection.VotePairs(),
	}
}
