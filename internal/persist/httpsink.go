package persist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/protoglyph/slatedesk/pkg/types"
)

// HTTPSink posts table snapshots to a remote record-writer endpoint
// (POST {base}/api/records/{table}, body: bare JSON array). It lets one
// slatedesk process persist through another's record-writer endpoint.
type HTTPSink struct {
	base   string
	client *http.Client
}

// NewHTTPSink builds a sink targeting the given base URL, e.g.
// "http://localhost:8490". The timeout bounds each snapshot write.
func NewHTTPSink(base string, timeout time.Duration) *HTTPSink {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPSink{
		base:   strings.TrimRight(base, "/"),
		client: &http.Client{Timeout: timeout},
	}
}

// WriteTable posts the record array. Any non-2xx response is an error.
func (h *HTTPSink) WriteTable(table string, records []types.Record) error {
	if records == nil {
		records = []types.Record{}
	}
	body, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding %s records: %w", table, err)
	}
	endpoint := h.base + "/api/records/" + url.PathEscape(table)
	resp, err := h.client.Post(endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("posting %s snapshot: %w", table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("record writer returned %s for %s", resp.Status, table)
	}
	return nil
}
