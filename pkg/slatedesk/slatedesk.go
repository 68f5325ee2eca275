// Package slatedesk exposes the public entry points of the slatedesk record
// platform: the version string and a factory for the in-memory record store.
// Implementation details stay in internal packages.
package slatedesk

import (
	"github.com/protoglyph/slatedesk/internal/memstore"
	"github.com/protoglyph/slatedesk/pkg/types"
)

// Version is the slatedesk release version.
const Version = "0.2.0"

// NewStore creates an empty in-memory record store with default settings:
// UUID v7 identifiers, no artificial latency, no persistence sink. Populate
// it with RegisterTable or ReplaceRecords.
func NewStore() types.RecordStore {
	return memstore.New()
}
