package stub

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// SessionRepository owns the global voting-session lifecycle for the stub.
type SessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

// ActiveSession returns the open session's name, or ok=false when voting
// is closed.
func (r *SessionRepository) ActiveSession() (name string, ok bool, err error) {
	err = r.DB.QueryRow("SELECT name FROM sessions WHERE active = 1 LIMIT 1").Scan(&name)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return name, true, nil
}

func (r *SessionRepository) StartSession(name string) error {
	_, err := r.DB.Exec(
		"INSERT INTO sessions(id, name, active, started_at) VALUES(?, ?, 1, ?)",
		uuid.NewString(), name, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// EndSession closes the active session and reports whether one was open.
func (r *SessionRepository) EndSession() (bool, error) {
	res, err := r.DB.Exec(
		"UPDATE sessions SET active = 0, ended_at = ? WHERE active = 1",
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
