package persist

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protoglyph/slatedesk/pkg/types"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "records.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_WriteThenRead(t *testing.T) {
	s := newTestSQLiteStore(t)

	require.NoError(t, s.WriteTable("task", []types.Record{
		{"sys_id": types.NewFieldValue("abc"), "state": types.NewFieldValue("new", "New")},
	}))

	got, err := s.ReadTable("task")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "abc", got[0].SysID())
	assert.Equal(t, "New", got[0]["state"].DisplayValue)
}

func TestSQLiteStore_UpsertReplacesSnapshot(t *testing.T) {
	s := newTestSQLiteStore(t)

	require.NoError(t, s.WriteTable("task", []types.Record{
		{"sys_id": types.NewFieldValue("one")},
		{"sys_id": types.NewFieldValue("two")},
	}))
	require.NoError(t, s.WriteTable("task", nil))

	got, err := s.ReadTable("task")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLiteStore_ReadMissingTableIsEmpty(t *testing.T) {
	s := newTestSQLiteStore(t)

	got, err := s.ReadTable("never_written")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteStore_Tables(t *testing.T) {
	s := newTestSQLiteStore(t)

	require.NoError(t, s.WriteTable("task", nil))
	require.NoError(t, s.WriteTable("incident", nil))

	names, err := s.Tables()
	require.NoError(t, err)
	assert.Equal(t, []string{"incident", "task"}, names)
}
