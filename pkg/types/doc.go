// Package types defines the table schema model, the record and field value
// representations, the query model, and the standard errors shared by all
// slatedesk packages.
//
// The central convention is the FieldValue pair: every stored field exposes a
// raw value (a stable identifier, e.g. a referenced record's sys_id) and a
// display value (the human-readable rendering). Search, sort, and filter all
// compare display values; reference lookups compare raw values.
package types
