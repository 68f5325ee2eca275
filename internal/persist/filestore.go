// Package persist implements the persistence bridge sinks: best-effort
// durable snapshots of a table's full record sequence, written after each
// mutation. The in-memory store never depends on a write succeeding; a
// failed write just leaves the snapshot stale.
package persist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/protoglyph/slatedesk/pkg/types"
)

// FileStore persists each table as <table>.json under a records directory:
// a bare JSON array of records, not wrapped in the table definition.
type FileStore struct {
	dir string
}

// NewFileStore creates the records directory if needed and returns a store
// over it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating records dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the records directory.
func (f *FileStore) Dir() string {
	return f.dir
}

// WriteTable atomically replaces the table's snapshot file.
func (f *FileStore) WriteTable(table string, records []types.Record) error {
	path, err := f.tablePath(table)
	if err != nil {
		return err
	}
	if records == nil {
		records = []types.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s records: %w", table, err)
	}
	return writeFileAtomic(path, append(data, '\n'))
}

// ReadTable loads the table's snapshot. A missing file is not an error;
// it returns an empty sequence.
func (f *FileStore) ReadTable(table string) ([]types.Record, error) {
	path, err := f.tablePath(table)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var records []types.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return records, nil
}

// Tables lists the table names that have snapshot files, sorted.
func (f *FileStore) Tables() ([]string, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("listing records dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// tablePath maps a table name to its snapshot path, rejecting names that
// could escape the records directory.
func (f *FileStore) tablePath(table string) (string, error) {
	if table == "" || table != filepath.Base(table) || strings.ContainsAny(table, "./\\") {
		return "", fmt.Errorf("%w: %q", types.ErrTableNotFound, table)
	}
	return filepath.Join(f.dir, table+".json"), nil
}

// writeFileAtomic writes data using the temp-file, fsync, rename pattern so
// a crashed write never truncates an existing snapshot.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".records-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
