package autoplay

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id        INTEGER PRIMARY KEY,
	outcome   TEXT NOT NULL,
	plies     INTEGER NOT NULL,
	final_fen TEXT NOT NULL,
	millis    INTEGER NOT NULL,
	played_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// store appends finished games to a SQLite database.
type store struct {
	db *sql.DB
}

func openStore(path string) (*store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &store{db: db}, nil
}

func (s *store) record(res GameResult) error {
	_, err := s.db.Exec(
		"INSERT INTO games (outcome, plies, final_fen, millis) VALUES (?, ?, ?, ?)",
		res.Outcome.String(), res.Plies, res.FinalFEN, res.Duration.Milliseconds(),
	)
	return err
}

// count reports how many games the database holds.
func (s *store) count() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM games").Scan(&n)
	return n, err
}

func (s *store) Close() error {
	return s.db.Close()
}
