package qlearn

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/IlikeChooros/go-connect4/pkg/board"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS qtable (
	state TEXT PRIMARY KEY,
	q0 REAL NOT NULL,
	q1 REAL NOT NULL,
	q2 REAL NOT NULL,
	q3 REAL NOT NULL,
	q4 REAL NOT NULL,
	q5 REAL NOT NULL,
	q6 REAL NOT NULL
);
`

// Table kept in a SQLite database, one row per state
type SQLiteStore struct {
	path string
	db   *sql.DB
}

// Opens (or creates) the database at 'path' and makes sure the table exists
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "create database dir")
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create qtable")
	}

	return &SQLiteStore{path: path, db: db}, nil
}

func (s *SQLiteStore) String() string {
	return "sqlite:" + s.path
}

func (s *SQLiteStore) Load() (Snapshot, error) {
	rows, err := s.db.Query(`SELECT state, q0, q1, q2, q3, q4, q5, q6 FROM qtable`)
	if err != nil {
		return nil, errors.Wrap(err, "query qtable")
	}
	defer rows.Close()

	snapshot := Snapshot{}
	for rows.Next() {
		var state string
		values := make([]float64, board.Columns)
		if err := rows.Scan(&state, &values[0], &values[1], &values[2],
			&values[3], &values[4], &values[5], &values[6]); err != nil {
			return nil, errors.Wrap(err, "scan qtable row")
		}
		snapshot[state] = values
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "read qtable")
	}
	return snapshot, nil
}

// Replaces the whole table in a single transaction
func (s *SQLiteStore) Save(snapshot Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM qtable`); err != nil {
		return errors.Wrap(err, "clear qtable")
	}

	stmt, err := tx.Prepare(`INSERT INTO qtable (state, q0, q1, q2, q3, q4, q5, q6) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "prepare insert")
	}
	defer stmt.Close()

	for state, values := range snapshot {
		if len(values) != board.Columns {
			return errors.Wrapf(ErrBadSnapshot, "state %q has %d values", state, len(values))
		}
		if _, err := stmt.Exec(state, values[0], values[1], values[2],
			values[3], values[4], values[5], values[6]); err != nil {
			return errors.Wrapf(err, "insert state %q", state)
		}
	}

	return errors.Wrap(tx.Commit(), "commit")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
