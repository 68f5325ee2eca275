package persist

import "github.com/protoglyph/slatedesk/pkg/types"

// Discard drops every snapshot. Used for ephemeral sessions and tests that
// do not care about persistence.
type Discard struct{}

// WriteTable does nothing and always succeeds.
func (Discard) WriteTable(string, []types.Record) error {
	return nil
}
