package stub

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS positions (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS candidates (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	department TEXT NOT NULL,
	position_id TEXT REFERENCES positions(id),
	votes INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_candidates_position_id ON candidates(position_id);

CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	active INTEGER NOT NULL DEFAULT 1,
	started_at TEXT NOT NULL,
	ended_at TEXT
);

CREATE TABLE IF NOT EXISTS votes (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	position_id TEXT NOT NULL,
	candidate_id TEXT NOT NULL REFERENCES candidates(id),
	created_at TEXT NOT NULL,
	UNIQUE (user_id, position_id)
);

CREATE INDEX IF NOT EXISTS idx_votes_user_id ON votes(user_id);
`

// OpenDB opens the stub's sqlite database and creates the schema.
// Safe to call on an existing file; the schema uses IF NOT EXISTS.
func OpenDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open stub database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping stub database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create stub schema: %w", err)
	}
	return db, nil
}
