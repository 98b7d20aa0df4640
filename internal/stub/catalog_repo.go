package stub

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/udusdev/biovote/internal/domain/election"
)

// CatalogRepository persists positions and candidates for the stub.
type CatalogRepository struct {
	DB *sql.DB
}

func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

func (r *CatalogRepository) ListPositions() ([]election.Position, error) {
	rows, err := r.DB.Query("SELECT id, name FROM positions ORDER BY created_at, name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var positions []election.Position
	for rows.Next() {
		var p election.Position
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

func (r *CatalogRepository) GetPosition(id string) (*election.Position, error) {
	var p election.Position
	err := r.DB.QueryRow("SELECT id, name FROM positions WHERE id = ?", id).Scan(&p.ID, &p.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *CatalogRepository) CreatePosition(name string) (*election.Position, error) {
	p := election.Position{ID: uuid.NewString(), Name: strings.TrimSpace(name)}
	_, err := r.DB.Exec(
		"INSERT INTO positions(id, name, created_at) VALUES(?, ?, ?)",
		p.ID, p.Name, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListCandidates returns the catalog in insertion order, each candidate
// carrying its embedded position. A candidate whose position row is gone
// keeps a nil reference, matching what real clients must tolerate.
func (r *CatalogRepository) ListCandidates() ([]election.Candidate, error) {
	rows, err := r.DB.Query(`
		SELECT c.id, c.name, c.department, c.votes, p.id, p.name
		FROM candidates c
		LEFT JOIN positions p ON p.id = c.position_id
		ORDER BY c.created_at, c.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []election.Candidate
	for rows.Next() {
		var c election.Candidate
		var posID, posName sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &c.Department, &c.Votes, &posID, &posName); err != nil {
			return nil, err
		}
		if posID.Valid {
			c.Position = &election.Position{ID: posID.String, Name: posName.String}
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

func (r *CatalogRepository) CandidateExists(id string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow("SELECT EXISTS(SELECT 1 FROM candidates WHERE id = ?)", id).Scan(&exists)
	return exists, err
}

func (r *CatalogRepository) CreateCandidate(name, department, positionID string) (*election.Candidate, error) {
	position, err := r.GetPosition(positionID)
	if err != nil {
		return nil, err
	}
	if position == nil {
		return nil, fmt.Errorf("position %s not found", positionID)
	}

	c := election.Candidate{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(name),
		Department: strings.TrimSpace(department),
		Position:   position,
	}
	_, err = r.DB.Exec(
		"INSERT INTO candidates(id, name, department, position_id, created_at) VALUES(?, ?, ?, ?, ?)",
		c.ID, c.Name, c.Department, position.ID, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ClearCandidates removes every candidate and the votes pointing at them.
func (r *CatalogRepository) ClearCandidates() error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM votes"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM candidates"); err != nil {
		return err
	}
	return tx.Commit()
}
