package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/protoglyph/slatedesk/internal/memstore"
	"github.com/protoglyph/slatedesk/internal/persist"
	"github.com/protoglyph/slatedesk/internal/schema"
	"github.com/protoglyph/slatedesk/pkg/types"
)

// session bundles a populated store with the resources behind it.
type session struct {
	cfg    types.Config
	store  *memstore.Store
	files  *persist.FileStore
	sqlite *persist.SQLiteStore
	logger *zap.Logger
}

// openSession loads table definitions from the schema directory, builds the
// configured persistence sink, creates the store, and seeds it: persisted
// snapshots win over seed records embedded in definitions.
func openSession(cfg types.Config, logger *zap.Logger) (*session, error) {
	s := &session{cfg: cfg, logger: logger}

	defs, err := schema.LoadDir(cfg.SchemaDir)
	if err != nil {
		return nil, fmt.Errorf("load schemas: %w", err)
	}

	var sink memstore.Sink
	var reader interface {
		ReadTable(table string) ([]types.Record, error)
	}
	switch cfg.EffectivePersistence() {
	case types.PersistenceFile:
		files, err := persist.NewFileStore(cfg.RecordsDir)
		if err != nil {
			return nil, err
		}
		s.files = files
		sink = files
		reader = files
	case types.PersistenceSQLite:
		db, err := persist.NewSQLiteStore(filepath.Join(cfg.RecordsDir, "records.db"))
		if err != nil {
			return nil, err
		}
		s.sqlite = db
		sink = db
		reader = db
	case types.PersistenceHTTP:
		// Snapshots go to another process's record-writer endpoint; that
		// process owns the durable copy, so there is nothing to read back.
		sink = persist.NewHTTPSink(cfg.SinkURL, 0)
	case types.PersistenceNone:
		sink = persist.Discard{}
	}

	s.store = memstore.New(
		memstore.WithSink(sink),
		memstore.WithLogger(logger),
		memstore.WithLatency(time.Duration(cfg.LatencyMS)*time.Millisecond),
	)
	if err := s.store.Initialize(defs); err != nil {
		s.close()
		return nil, fmt.Errorf("initialize store: %w", err)
	}

	if reader != nil {
		for _, def := range defs {
			records, err := reader.ReadTable(def.Name)
			if err != nil {
				s.close()
				return nil, fmt.Errorf("load %s records: %w", def.Name, err)
			}
			if len(records) == 0 {
				continue
			}
			if err := s.store.ReplaceRecords(def.Name, records); err != nil {
				s.close()
				return nil, err
			}
		}
	}

	return s, nil
}

// openDefaultSession resolves config from flags and opens a session with a
// logger built from it.
func openDefaultSession() (*session, error) {
	cfg, err := resolveConfig()
	if err != nil {
		return nil, err
	}
	logger, err := buildLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return openSession(cfg, logger)
}

// close flushes pending persistence writes and releases resources.
func (s *session) close() {
	if s.store != nil {
		s.store.Close()
	}
	if s.sqlite != nil {
		_ = s.sqlite.Close()
	}
	if s.logger != nil {
		_ = s.logger.Sync()
	}
}
