package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/protoglyph/slatedesk/pkg/types"
)

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printRecords renders records as an aligned text table over the given
// columns, showing display values. Empty columns falls back to the fields
// present on the first record, sys_id first.
func printRecords(w io.Writer, records []types.Record, columns []string) {
	if len(records) == 0 {
		fmt.Fprintln(w, "(no records)")
		return
	}
	if len(columns) == 0 {
		columns = defaultColumns(records[0])
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(columns, "\t"))
	for _, rec := range records {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = rec[col].DisplayValue
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	tw.Flush()
}

// defaultColumns orders a record's fields for display: sys_id first, then
// the rest alphabetically with the timestamps last.
func defaultColumns(rec types.Record) []string {
	var fields []string
	for name := range rec {
		switch name {
		case types.FieldSysID, types.FieldCreatedAt, types.FieldUpdatedAt:
			continue
		}
		fields = append(fields, name)
	}
	sort.Strings(fields)

	columns := []string{types.FieldSysID}
	columns = append(columns, fields...)
	columns = append(columns, types.FieldCreatedAt, types.FieldUpdatedAt)
	return columns
}

// decodeRecordArg parses a record payload given as a JSON argument.
func decodeRecordArg(arg string) (types.Record, error) {
	var rec types.Record
	if err := json.Unmarshal([]byte(arg), &rec); err != nil {
		return nil, fmt.Errorf("invalid record JSON: %w", err)
	}
	return rec, nil
}
