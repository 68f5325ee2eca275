package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/protoglyph/slatedesk/internal/schema"
	"github.com/protoglyph/slatedesk/pkg/types"
)

func writeTaskSchema(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, schema.WriteDef(dir, types.TableDef{
		Name:  "task",
		Label: "Task",
		Fields: []types.FieldDef{
			{Name: "short_description", Type: types.FieldTypeString, Label: "Short description"},
		},
	}))
}

func TestOpenSession_FilePersistenceReloadsSnapshots(t *testing.T) {
	dataDir := t.TempDir()
	cfg := types.Config{
		SchemaDir:   filepath.Join(dataDir, "schemas"),
		RecordsDir:  filepath.Join(dataDir, "records"),
		Persistence: types.PersistenceFile,
	}
	writeTaskSchema(t, cfg.SchemaDir)

	sess, err := openSession(cfg, zap.NewNop())
	require.NoError(t, err)
	rec, err := sess.store.Create(context.Background(), "task", types.Record{
		"short_description": types.NewFieldValue("survives restart"),
	})
	require.NoError(t, err)
	sess.close()

	// A fresh session loads the snapshot instead of starting empty.
	sess, err = openSession(cfg, zap.NewNop())
	require.NoError(t, err)
	defer sess.close()

	got, err := sess.store.GetOne(context.Background(), "task", rec.SysID())
	require.NoError(t, err)
	assert.Equal(t, "survives restart", got["short_description"].Value)
}

// The http backend forwards every mutation's snapshot to a remote
// record-writer endpoint.
func TestOpenSession_HTTPPersistencePostsSnapshots(t *testing.T) {
	var mu sync.Mutex
	var paths []string
	var lastBody []types.Record
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		paths = append(paths, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&lastBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	dataDir := t.TempDir()
	cfg := types.Config{
		SchemaDir:   filepath.Join(dataDir, "schemas"),
		RecordsDir:  filepath.Join(dataDir, "records"),
		Persistence: types.PersistenceHTTP,
		SinkURL:     srv.URL,
	}
	writeTaskSchema(t, cfg.SchemaDir)

	sess, err := openSession(cfg, zap.NewNop())
	require.NoError(t, err)
	_, err = sess.store.Create(context.Background(), "task", types.Record{
		"short_description": types.NewFieldValue("pushed over http"),
	})
	require.NoError(t, err)
	sess.close()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, paths, 1)
	assert.Equal(t, "/api/records/task", paths[0])
	require.Len(t, lastBody, 1)
	assert.Equal(t, "pushed over http", lastBody[0]["short_description"].Value)
}
