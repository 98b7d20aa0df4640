// Package voting wires the selection state, the already-voted guard, the
// verification gates and the server client into the single submission
// workflow every screen drives.
package voting

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/udusdev/biovote/internal/domain/election"
	"github.com/udusdev/biovote/internal/logger"
	"github.com/udusdev/biovote/internal/verify"
)

var (
	// ErrMissingVoter reports an empty voter identifier.
	ErrMissingVoter = errors.New("voter id is required")
	// ErrEmptySelection reports a submission attempt with no candidate
	// selected. Rejected locally; no network call is made.
	ErrEmptySelection = errors.New("select at least one candidate before submitting")
	// ErrAlreadyVoted reports that this device already recorded a
	// confirmed submission for the voter. The flow must refuse with a
	// visible message, never silently no-op.
	ErrAlreadyVoted = errors.New("you have already cast your vote")
)

// Caster issues the one vote-cast call the workflow makes. A nil return
// means the server affirmatively accepted the votes.
type Caster interface {
	CastVotes(ctx context.Context, record election.VoteRecord) error
}

// Guard is the advisory on-device already-voted record. The server stays
// the sole authoritative double-vote check; the guard only prevents an
// obviously repeated attempt from the same device.
type Guard interface {
	HasVoted(userID string) (bool, error)
	RecordVote(userID string) error
}

// Service runs the voter submission workflow.
type Service struct {
	caster Caster
	guard  Guard
	gates  *verify.Sequence
	log    *log.Logger
}

// NewService builds the workflow from its injected collaborators. gates
// may be nil when the caller runs the verification sequence itself.
func NewService(caster Caster, guard Guard, gates *verify.Sequence) *Service {
	return &Service{
		caster: caster,
		guard:  guard,
		gates:  gates,
		log:    logger.Voting(),
	}
}

// CheckVoter reports whether the voter may proceed to selection. A
// positive guard hit comes back as ErrAlreadyVoted.
func (s *Service) CheckVoter(userID string) error {
	if userID == "" {
		return ErrMissingVoter
	}
	voted, err := s.guard.HasVoted(userID)
	if err != nil {
		return fmt.Errorf("check voter: %w", err)
	}
	if voted {
		return ErrAlreadyVoted
	}
	return nil
}

// Submit validates the selection, re-checks the guard, runs the gate
// sequence, and casts the vote record exactly once. The guard is updated
// only after the server's affirmative response; a failed cast leaves both
// the guard and the selection untouched so the user may retry manually.
func (s *Service) Submit(ctx context.Context, userID string, selection *election.SelectionMap) error {
	if selection == nil || selection.Count() == 0 {
		return ErrEmptySelection
	}
	if err := s.CheckVoter(userID); err != nil {
		return err
	}

	if s.gates != nil {
		if err := s.gates.Run(ctx); err != nil {
			return err
		}
	}

	record := election.NewVoteRecord(userID, selection)
	s.log.Info("Casting votes", "user_id", userID, "positions", len(record.Votes))

	if err := s.caster.CastVotes(ctx, record); err != nil {
		s.log.Warn("Vote cast did not happen", "user_id", userID, "error", err)
		return fmt.Errorf("cast votes: %w", err)
	}

	if err := s.guard.RecordVote(userID); err != nil {
		// The server accepted the vote; a guard persistence failure must
		// not look like a failed submission, or the voter would resubmit.
		s.log.Error("Vote accepted but guard update failed", "user_id", userID, "error", err)
		return nil
	}

	s.log.Info("Vote recorded", "user_id", userID)
	return nil
}
