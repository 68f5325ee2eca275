package types

// Reserved field names stamped by the store. Callers cannot set sys_id or
// the timestamps; values supplied for them in create/update payloads are
// discarded.
const (
	FieldSysID     = "sys_id"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
)

// Record is one row of a table: field name to FieldValue. Thanks to
// FieldValue's tolerant decoding, a Record unmarshals from JSON whose fields
// are bare scalars, structured pairs, or a mix — everything lands in the
// structured form.
type Record map[string]FieldValue

// SysID returns the record's identifier, or the empty string if unset.
func (r Record) SysID() string {
	return r[FieldSysID].Value
}

// Clone returns a copy of the record. FieldValue is a value type, so a
// single map copy is a full copy.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Merge applies patch over the record. The merge is shallow: a patch entry
// replaces the whole prior FieldValue for that field.
func (r Record) Merge(patch Record) {
	for k, v := range patch {
		r[k] = v
	}
}

// CloneRecords copies a record slice, cloning each record so the result
// shares no state with the source.
func CloneRecords(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}
