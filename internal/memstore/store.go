// Package memstore implements the in-memory record store behind slatedesk:
// table registration, the CRUD façade, and the query engine. The in-memory
// state is authoritative for the running process; after every mutation the
// affected table's records are snapshotted and handed to the persistence
// sink best-effort.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/protoglyph/slatedesk/pkg/types"
)

// Sink receives the full record sequence of a table after each mutation.
// Implementations live in internal/persist.
type Sink interface {
	WriteTable(table string, records []types.Record) error
}

// tableState pairs a table definition with its record sequence. Insertion
// order of records is preserved and is the iteration order prior to any sort.
type tableState struct {
	def     types.TableDef
	records []types.Record
}

// Store owns the process-wide table mapping. All access goes through its
// mutex; the CRUD façade is the only writer. A Store is constructed empty
// and populated via Initialize.
type Store struct {
	mu     sync.RWMutex
	tables map[string]*tableState
	order  []string

	sink    Sink
	logger  *zap.Logger
	latency time.Duration
	now     func() time.Time
	newID   func() string

	persistWG sync.WaitGroup
}

// Option configures a Store.
type Option func(*Store)

// WithSink sets the persistence sink notified after each mutation.
func WithSink(sink Sink) Option {
	return func(s *Store) { s.sink = sink }
}

// WithLogger sets the logger used for persistence failures.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithLatency sets the artificial delay applied before every operation,
// simulating network round trips for the prototype UI.
func WithLatency(d time.Duration) Option {
	return func(s *Store) { s.latency = d }
}

// WithClock overrides the timestamp source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides sys_id generation. Used by tests.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// New creates an empty Store. Without options it uses UUID v7 identifiers,
// the wall clock, no artificial latency, a no-op logger, and no sink.
func New(opts ...Option) *Store {
	s := &Store{
		tables: make(map[string]*tableState),
		logger: zap.NewNop(),
		now:    time.Now,
		newID:  newSysID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newSysID generates a record identifier. UUID v7 keeps ids sortable by
// creation time, which makes persisted JSON diffs stable.
func newSysID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// Initialize registers table definitions and loads their embedded seed
// records. Seeds are normalized like created records: missing sys_id
// generated, missing timestamps stamped. Definitions registering an
// already-known name return ErrTableExists.
func (s *Store) Initialize(defs []types.TableDef) error {
	for i := range defs {
		if err := s.RegisterTable(defs[i]); err != nil {
			return err
		}
	}
	return nil
}

// RegisterTable adds one table definition, validating it first. Embedded
// seed records are moved into the record sequence.
func (s *Store) RegisterTable(def types.TableDef) error {
	if err := def.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tables[def.Name]; ok {
		return types.ErrTableExists
	}

	seeds := def.Records
	def.Records = nil

	ts := &tableState{def: def}
	for _, seed := range seeds {
		ts.records = append(ts.records, s.normalize(seed))
	}
	s.tables[def.Name] = ts
	s.order = append(s.order, def.Name)
	return nil
}

// Tables returns all registered definitions in registration order.
func (s *Store) Tables() []types.TableDef {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.TableDef, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.tables[name].def)
	}
	return out
}

// TableDef returns the definition of the named table.
func (s *Store) TableDef(name string) (types.TableDef, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ts, ok := s.tables[name]
	if !ok {
		return types.TableDef{}, false
	}
	return ts.def, true
}

// ReplaceRecords swaps the full record sequence of a table, normalizing each
// record. Used when reloading persisted snapshots at startup. The sink is
// not notified; the snapshot came from it.
func (s *Store) ReplaceRecords(table string, records []types.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts, ok := s.tables[table]
	if !ok {
		return types.ErrTableNotFound
	}
	ts.records = ts.records[:0]
	for _, r := range records {
		ts.records = append(ts.records, s.normalize(r))
	}
	return nil
}

// GetOne returns the record with the given sys_id, or ErrRecordNotFound.
func (s *Store) GetOne(ctx context.Context, table, id string) (types.Record, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ts, ok := s.tables[table]
	if !ok {
		return nil, types.ErrTableNotFound
	}
	for _, r := range ts.records {
		if r.SysID() == id {
			return r.Clone(), nil
		}
	}
	return nil, types.ErrRecordNotFound
}

// Create builds a new record from the caller's fields, stamps identity and
// timestamps, appends it to the table, and notifies the sink. The returned
// record is a copy.
func (s *Store) Create(ctx context.Context, table string, patch types.Record) (types.Record, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ts, ok := s.tables[table]
	if !ok {
		return nil, types.ErrTableNotFound
	}

	rec := make(types.Record, len(patch)+3)
	rec.Merge(patch)
	now := s.timestamp()
	rec[types.FieldSysID] = types.NewFieldValue(s.newID())
	rec[types.FieldCreatedAt] = types.NewFieldValue(now)
	rec[types.FieldUpdatedAt] = types.NewFieldValue(now)

	ts.records = append(ts.records, rec)
	s.notifySink(table, ts.records)
	return rec.Clone(), nil
}

// Update shallow-merges patch over the existing record: each patch field
// replaces the whole prior FieldValue. The record's identity is immutable;
// any sys_id in the patch is discarded. Position in the table is preserved.
func (s *Store) Update(ctx context.Context, table, id string, patch types.Record) (types.Record, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ts, ok := s.tables[table]
	if !ok {
		return nil, types.ErrTableNotFound
	}
	idx := indexOf(ts.records, id)
	if idx < 0 {
		return nil, types.ErrRecordNotFound
	}

	rec := ts.records[idx].Clone()
	rec.Merge(patch)
	rec[types.FieldSysID] = types.NewFieldValue(id)
	rec[types.FieldUpdatedAt] = types.NewFieldValue(s.timestamp())

	ts.records[idx] = rec
	s.notifySink(table, ts.records)
	return rec.Clone(), nil
}

// Delete removes the record with the given sys_id and notifies the sink.
func (s *Store) Delete(ctx context.Context, table, id string) error {
	if err := s.delay(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ts, ok := s.tables[table]
	if !ok {
		return types.ErrTableNotFound
	}
	idx := indexOf(ts.records, id)
	if idx < 0 {
		return types.ErrRecordNotFound
	}

	ts.records = append(ts.records[:idx], ts.records[idx+1:]...)
	s.notifySink(table, ts.records)
	return nil
}

// Related returns every record whose raw value for field equals value, as a
// single unpaginated page. An unknown table yields an empty result, not an
// error: related lists render empty rather than failing the parent form.
func (s *Store) Related(ctx context.Context, table, field, value string) (types.QueryResult, error) {
	if err := s.delay(ctx); err != nil {
		return types.QueryResult{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := types.QueryResult{Data: []types.Record{}, Page: 1}
	ts, ok := s.tables[table]
	if !ok {
		return result, nil
	}
	for _, r := range ts.records {
		if r[field].Value == value {
			result.Data = append(result.Data, r.Clone())
		}
	}
	result.Total = len(result.Data)
	result.PageSize = result.Total
	return result, nil
}

// Close waits for in-flight persistence writes to finish. Mutations issued
// after Close may still race their persistence; callers stop mutating first.
func (s *Store) Close() {
	s.persistWG.Wait()
}

// timestamp renders the current time as the stored RFC 3339 UTC string.
func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

// normalize stamps identity and timestamps on a record that arrived from
// seeds or a persisted snapshot. Field values are already in pair form
// courtesy of FieldValue decoding.
func (s *Store) normalize(r types.Record) types.Record {
	rec := r.Clone()
	if rec == nil {
		rec = make(types.Record, 3)
	}
	if rec.SysID() == "" {
		rec[types.FieldSysID] = types.NewFieldValue(s.newID())
	}
	now := s.timestamp()
	if rec[types.FieldCreatedAt].Value == "" {
		rec[types.FieldCreatedAt] = types.NewFieldValue(now)
	}
	if rec[types.FieldUpdatedAt].Value == "" {
		rec[types.FieldUpdatedAt] = types.NewFieldValue(now)
	}
	return rec
}

// notifySink snapshots the record sequence and writes it to the sink on a
// separate goroutine. The mutation has already succeeded; a sink failure is
// logged and swallowed, leaving the persisted copy stale until the next
// successful write. Callers must hold s.mu.
func (s *Store) notifySink(table string, records []types.Record) {
	if s.sink == nil {
		return
	}
	snapshot := types.CloneRecords(records)
	s.persistWG.Add(1)
	go func() {
		defer s.persistWG.Done()
		if err := s.sink.WriteTable(table, snapshot); err != nil {
			s.logger.Warn("persistence write failed",
				zap.String("table", table),
				zap.Int("records", len(snapshot)),
				zap.Error(err))
		}
	}()
}

// delay applies the configured artificial latency, honoring cancellation.
func (s *Store) delay(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// indexOf returns the position of the record with the given sys_id, or -1.
func indexOf(records []types.Record, id string) int {
	for i, r := range records {
		if r.SysID() == id {
			return i
		}
	}
	return -1
}
