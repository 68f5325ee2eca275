package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/protoglyph/slatedesk/internal/schema"
	"github.com/protoglyph/slatedesk/pkg/types"
)

func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.store.Tables())
}

func (s *Server) handleGetTable(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "table")
	def, ok := s.store.TableDef(name)
	if !ok {
		respondError(w, http.StatusNotFound, types.ErrTableNotFound)
		return
	}
	respondJSON(w, http.StatusOK, def)
}

// handleRegisterTable registers an imported table definition and, when a
// schema directory is configured, saves it there so the next session loads
// it too.
func (s *Server) handleRegisterTable(w http.ResponseWriter, r *http.Request) {
	var def types.TableDef
	if err := json.NewDecoder(r.Body).Decode(&def); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.store.RegisterTable(def); err != nil {
		respondStoreError(w, err)
		return
	}
	if s.schemaDir != "" {
		if err := schema.WriteDef(s.schemaDir, def); err != nil {
			s.logger.Warn("saving imported definition failed",
				zap.String("table", def.Name), zap.Error(err))
		}
	}
	respondJSON(w, http.StatusCreated, def)
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")
	params, err := queryParams(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	result, err := s.store.Query(r.Context(), table, params)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetOne(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.GetOne(r.Context(), chi.URLParam(r, "table"), chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var patch types.Record
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	rec, err := s.store.Create(r.Context(), chi.URLParam(r, "table"), patch)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var patch types.Record
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	rec, err := s.store.Update(r.Context(), chi.URLParam(r, "table"), chi.URLParam(r, "id"), patch)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := s.store.Delete(r.Context(), chi.URLParam(r, "table"), chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRelated(w http.ResponseWriter, r *http.Request) {
	field := r.URL.Query().Get("field")
	value := r.URL.Query().Get("value")
	result, err := s.store.Related(r.Context(), chi.URLParam(r, "table"), field, value)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// handleWriteRecords accepts a bare record array and writes it through the
// file store. It does not touch the in-memory store: the pushing client owns
// its own authoritative copy, this endpoint is only its durable side-store.
func (s *Server) handleWriteRecords(w http.ResponseWriter, r *http.Request) {
	if s.files == nil {
		respondError(w, http.StatusNotImplemented, errors.New("record writer disabled"))
		return
	}
	var records []types.Record
	if err := json.NewDecoder(r.Body).Decode(&records); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	table := chi.URLParam(r, "table")
	if err := s.files.WriteTable(table, records); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"table": table, "records": len(records)})
}

// queryParams decodes the query surface: page, page_size, sort_field,
// sort_direction, search, and filters (a JSON-encoded condition array).
func queryParams(r *http.Request) (types.QueryParams, error) {
	q := r.URL.Query()
	var params types.QueryParams

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return params, errors.New("page must be an integer")
		}
		params.Page = n
	}
	if v := q.Get("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return params, errors.New("page_size must be an integer")
		}
		params.PageSize = n
	}
	params.SortField = q.Get("sort_field")
	params.SortDirection = q.Get("sort_direction")
	params.Search = q.Get("search")
	if v := q.Get("filters"); v != "" {
		if err := json.Unmarshal([]byte(v), &params.Filters); err != nil {
			return params, errors.New("filters must be a JSON array of conditions")
		}
	}
	return params, nil
}

// respondStoreError maps store errors to HTTP statuses.
func respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, types.ErrTableNotFound), errors.Is(err, types.ErrRecordNotFound):
		respondError(w, http.StatusNotFound, err)
	case errors.Is(err, types.ErrTableExists):
		respondError(w, http.StatusConflict, err)
	case errors.Is(err, types.ErrInvalidTableDef),
		errors.Is(err, types.ErrInvalidFieldDef),
		errors.Is(err, types.ErrInvalidFieldType):
		respondError(w, http.StatusBadRequest, err)
	default:
		respondError(w, http.StatusInternalServerError, err)
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, map[string]string{"error": err.Error()})
}
