package types

import "context"

// RecordStore is the programmatic surface consumed by the UI layer and the
// HTTP handlers. The in-memory implementation lives in internal/memstore.
//
// Query, GetOne, Create, Update, and Delete fail with ErrTableNotFound for
// an unregistered table; GetOne, Update, and Delete fail with
// ErrRecordNotFound for an unknown sys_id. Related never errors on an
// unknown table; it returns an empty result.
type RecordStore interface {
	// Tables returns all registered table definitions in registration order.
	Tables() []TableDef

	// TableDef returns the named table's definition.
	TableDef(name string) (TableDef, bool)

	// RegisterTable adds a new definition, loading any embedded seed records.
	// Returns ErrTableExists for a duplicate name.
	RegisterTable(def TableDef) error

	// ReplaceRecords swaps a table's full record sequence, normalizing each
	// record. Used to reload persisted snapshots.
	ReplaceRecords(table string, records []Record) error

	// Query filters, searches, sorts, and pages a table's records.
	Query(ctx context.Context, table string, params QueryParams) (QueryResult, error)

	// GetOne returns the record with the given sys_id.
	GetOne(ctx context.Context, table, id string) (Record, error)

	// Create stamps a fresh sys_id and timestamps onto the caller's fields
	// and appends the record to the table.
	Create(ctx context.Context, table string, patch Record) (Record, error)

	// Update shallow-merges patch over the existing record. The sys_id is
	// immutable; a patch cannot change it.
	Update(ctx context.Context, table, id string, patch Record) (Record, error)

	// Delete removes the record with the given sys_id.
	Delete(ctx context.Context, table, id string) error

	// Related returns every record whose raw value for field equals value,
	// as a single unpaginated page.
	Related(ctx context.Context, table, field, value string) (QueryResult, error)

	// Close waits for in-flight persistence writes to finish.
	Close()
}
