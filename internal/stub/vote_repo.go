package stub

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/udusdev/biovote/internal/domain/election"
)

// ErrVoterAlreadyVoted is the server-side double-vote refusal. The stub,
// like the real server, is the authority; client-side guards are advisory.
var ErrVoterAlreadyVoted = errors.New("You have already cast your vote!")

// VoteRepository records cast votes and maintains candidate tallies.
type VoteRepository struct {
	DB *sql.DB
}

func NewVoteRepository(db *sql.DB) *VoteRepository {
	return &VoteRepository{DB: db}
}

func (r *VoteRepository) HasVoted(userID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow("SELECT EXISTS(SELECT 1 FROM votes WHERE user_id = ?)", userID).Scan(&exists)
	return exists, err
}

// CastMultiple writes every pair of one voter's record and bumps the
// candidate tallies in a single transaction. A repeat voter is refused
// with ErrVoterAlreadyVoted and nothing is written.
func (r *VoteRepository) CastMultiple(userID string, pairs []election.VotePair) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRow("SELECT EXISTS(SELECT 1 FROM votes WHERE user_id = ?)", userID).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return ErrVoterAlreadyVoted
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, pair := range pairs {
		var known bool
		if err := tx.QueryRow("SELECT EXISTS(SELECT 1 FROM candidates WHERE id = ?)", pair.CandidateID).Scan(&known); err != nil {
			return err
		}
		if !known {
			return fmt.Errorf("candidate %s not found", pair.CandidateID)
		}

		if _, err := tx.Exec(
			"INSERT INTO votes(id, user_id, position_id, candidate_id, created_at) VALUES(?, ?, ?, ?, ?)",
			uuid.NewString(), userID, pair.Position, pair.CandidateID, now,
		); err != nil {
			return err
		}
		if _, err := tx.Exec(
			"UPDATE candidates SET votes = votes + 1 WHERE id = ?",
			pair.CandidateID,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}
