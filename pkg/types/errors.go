package types

import "errors"

// Store operation errors. Handlers map these to HTTP statuses; the CLI maps
// them to exit codes.
var (
	ErrTableNotFound  = errors.New("table not found")
	ErrRecordNotFound = errors.New("record not found")
	ErrTableExists    = errors.New("table already registered")
	ErrStoreClosed    = errors.New("store is closed")
)

// Schema validation errors.
var (
	ErrInvalidTableDef  = errors.New("invalid table definition")
	ErrInvalidFieldDef  = errors.New("invalid field definition")
	ErrInvalidFieldType = errors.New("unknown field type")
)
