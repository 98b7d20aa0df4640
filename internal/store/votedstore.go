// Package store persists the advisory already-voted set on the device.
// The server remains the sole authoritative double-vote check; this store
// only backs the local refusal shown before a second submission attempt.
package store

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"go.etcd.io/bbolt"

	"github.com/udusdev/biovote/internal/logger"
)

const (
	votedStoreBucket   = "device"
	votedStoreKeyUsers = "votedUsers"
)

// VotedStore is a durable set of voter identifiers that have completed a
// confirmed submission from this device. Membership is append-only except
// for Reset, which is never exposed to the voting flow.
type VotedStore struct {
	db  *bbolt.DB
	log *log.Logger
}

// Open opens (or creates) the store file at path.
func Open(path string) (*VotedStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("open voted store: %w", err)
	}
	return &VotedStore{db: db, log: logger.Store()}, nil
}

// Close closes the underlying store file.
func (s *VotedStore) Close() error {
	return s.db.Close()
}

// HasVoted reports whether userID already completed a submission.
func (s *VotedStore) HasVoted(userID string) (bool, error) {
	users, err := s.VotedUsers()
	if err != nil {
		return false, err
	}
	for _, id := range users {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

// RecordVote adds userID to the set. Recording an already-present ID is a
// no-op; the serialized set never holds duplicates. The full replacement
// value is written in a single update transaction, so a crash mid-call
// leaves either the old or the new set, never a torn one.
func (s *VotedStore) RecordVote(userID string) error {
	if userID == "" {
		return fmt.Errorf("record vote: user id is required")
	}
	return s.db.Update(func(t *bbolt.Tx) error {
		bucket, err := t.CreateBucketIfNotExists([]byte(votedStoreBucket))
		if err != nil {
			return err
		}
		users, err := decodeUsers(bucket.Get([]byte(votedStoreKeyUsers)))
		if err != nil {
			return err
		}
		for _, id := range users {
			if id == userID {
				return nil
			}
		}
		users = append(users, userID)
		b, err := json.Marshal(users)
		if err != nil {
			return err
		}
		s.log.Debug("Recording completed vote", "user_id", userID, "total", len(users))
		return bucket.Put([]byte(votedStoreKeyUsers), b)
	})
}

// VotedUsers returns every recorded voter identifier. An absent key reads
// as an empty set.
func (s *VotedStore) VotedUsers() ([]string, error) {
	var users []string
	if err := s.db.View(func(t *bbolt.Tx) error {
		if bucket := t.Bucket([]byte(votedStoreBucket)); bucket != nil {
			decoded, err := decodeUsers(bucket.Get([]byte(votedStoreKeyUsers)))
			if err != nil {
				return err
			}
			users = decoded
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("read voted store: %w", err)
	}
	return users, nil
}

// Reset wipes the set. Deliberately not reachable from the voting flow;
// it exists for operator maintenance between election sessions.
func (s *VotedStore) Reset() error {
	return s.db.Update(func(t *bbolt.Tx) error {
		bucket := t.Bucket([]byte(votedStoreBucket))
		if bucket == nil {
			return nil
		}
		s.log.Warn("Resetting voted-user set")
		return bucket.Delete([]byte(votedStoreKeyUsers))
	})
}

func decodeUsers(b []byte) ([]string, error) {
	if b == nil {
		return nil, nil
	}
	var users []string
	if err := json.Unmarshal(b, &users); err != nil {
		return nil, fmt.Errorf("decode voted users: %w", err)
	}
	return users, nil
}
