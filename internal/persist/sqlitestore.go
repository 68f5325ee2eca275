package persist

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/protoglyph/slatedesk/pkg/types"
)

// snapshotSchema holds one row per table: the full record sequence as a
// JSON payload. Snapshots are whole-table replacements, so there is no
// per-record row model to maintain.
const snapshotSchema = `
CREATE TABLE IF NOT EXISTS table_snapshots (
    table_name TEXT PRIMARY KEY,
    payload    TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

// SQLiteStore persists table snapshots in a local SQLite database. It is an
// alternative to FileStore for setups where a single db file beats a
// directory of JSON files.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path and ensures the
// snapshot schema exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot db: %w", err)
	}
	if _, err := db.Exec(snapshotSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing snapshot schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// WriteTable replaces the table's snapshot row.
func (s *SQLiteStore) WriteTable(table string, records []types.Record) error {
	if records == nil {
		records = []types.Record{}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding %s records: %w", table, err)
	}
	_, err = s.db.Exec(`
		INSERT INTO table_snapshots (table_name, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(table_name) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		table, string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("writing %s snapshot: %w", table, err)
	}
	return nil
}

// ReadTable loads the table's snapshot. A missing row is not an error; it
// returns an empty sequence.
func (s *SQLiteStore) ReadTable(table string) ([]types.Record, error) {
	var payload string
	err := s.db.QueryRow(
		`SELECT payload FROM table_snapshots WHERE table_name = ?`, table,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s snapshot: %w", table, err)
	}
	var records []types.Record
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		return nil, fmt.Errorf("decoding %s snapshot: %w", table, err)
	}
	return records, nil
}

// Tables lists the table names with stored snapshots, sorted.
func (s *SQLiteStore) Tables() ([]string, error) {
	rows, err := s.db.Query(`SELECT table_name FROM table_snapshots ORDER BY table_name`)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning snapshot row: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
