package persist

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protoglyph/slatedesk/pkg/types"
)

func TestHTTPSink_PostsBareRecordArray(t *testing.T) {
	var gotPath string
	var gotBody []types.Record
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sink := NewHTTPSink(srv.URL+"/", time.Second)
	err := sink.WriteTable("task", []types.Record{
		{"sys_id": types.NewFieldValue("abc")},
	})
	require.NoError(t, err)
	assert.Equal(t, "/api/records/task", gotPath)
	require.Len(t, gotBody, 1)
	assert.Equal(t, "abc", gotBody[0].SysID())
}

func TestHTTPSink_NonSuccessStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "disk full", http.StatusInternalServerError)
	}))
	defer srv.Close()

	sink := NewHTTPSink(srv.URL, time.Second)
	assert.Error(t, sink.WriteTable("task", nil))
}

func TestHTTPSink_NilRecordsEncodeAsEmptyArray(t *testing.T) {
	var raw string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var buf [16]byte
		n, _ := r.Body.Read(buf[:])
		raw = string(buf[:n])
	}))
	defer srv.Close()

	sink := NewHTTPSink(srv.URL, time.Second)
	require.NoError(t, sink.WriteTable("task", nil))
	assert.Equal(t, "[]", raw)
}
