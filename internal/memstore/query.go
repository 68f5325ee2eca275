package memstore

import (
	"context"
	"sort"
	"strings"

	"github.com/protoglyph/slatedesk/pkg/types"
)

// Query runs search, filter, sort, and pagination over a table's records,
// in that order. Total counts the records surviving search and filtering,
// regardless of the requested page; a page past the end yields empty data
// with the correct total.
func (s *Store) Query(ctx context.Context, table string, params types.QueryParams) (types.QueryResult, error) {
	if err := s.delay(ctx); err != nil {
		return types.QueryResult{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ts, ok := s.tables[table]
	if !ok {
		return types.QueryResult{}, types.ErrTableNotFound
	}

	matched := make([]types.Record, 0, len(ts.records))
	search := strings.ToLower(strings.TrimSpace(params.Search))
	for _, rec := range ts.records {
		if search != "" && !matchesSearch(&ts.def, rec, search) {
			continue
		}
		if len(params.Filters) > 0 && !matchesFilters(rec, params.Filters) {
			continue
		}
		matched = append(matched, rec)
	}

	if params.SortField != "" {
		sortRecords(matched, params.SortField, params.SortDirection)
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = ts.def.DefaultPageSize()
	}

	result := types.QueryResult{
		Data:     []types.Record{},
		Total:    len(matched),
		Page:     page,
		PageSize: pageSize,
	}
	start := (page - 1) * pageSize
	if start < len(matched) {
		end := start + pageSize
		if end > len(matched) {
			end = len(matched)
		}
		result.Data = types.CloneRecords(matched[start:end])
	}
	return result, nil
}

// matchesSearch reports whether any string- or text-typed field's display
// value contains the lowercased search term. Other field types never
// participate: a boolean rendered "true" is not a hit for "true".
func matchesSearch(def *types.TableDef, rec types.Record, search string) bool {
	for _, f := range def.Fields {
		if f.Type != types.FieldTypeString && f.Type != types.FieldTypeText {
			continue
		}
		display := strings.ToLower(rec[f.Name].DisplayValue)
		if strings.Contains(display, search) {
			return true
		}
	}
	return false
}

// matchesFilters folds the filter chain left to right. The accumulator
// seeds to true under a vacuous AND. Condition i's conjunction is applied
// to condition i+1: it says how the NEXT result combines, not its own.
// The first condition's conjunction is therefore ignored. Mixed chains
// depend on this shift-by-one behavior; do not "fix" it.
func matchesFilters(rec types.Record, filters []types.FilterCondition) bool {
	result := true
	pending := types.ConjunctionAnd
	for _, cond := range filters {
		matches := matchesCondition(rec, cond)
		if pending == types.ConjunctionOr {
			result = result || matches
		} else {
			result = result && matches
		}
		pending = cond.Conjunction
		if pending == "" {
			pending = types.ConjunctionAnd
		}
	}
	return result
}

// matchesCondition compares the record's display value for the condition's
// field against the condition value. Comparison is case-insensitive and
// lexical for every operator, including greater_than and less_than on
// integer-typed fields.
func matchesCondition(rec types.Record, cond types.FilterCondition) bool {
	have := strings.ToLower(rec[cond.Field].DisplayValue)
	want := strings.ToLower(cond.Value)

	switch cond.Operator {
	case types.OpIs:
		return have == want
	case types.OpIsNot:
		return have != want
	case types.OpContains:
		return strings.Contains(have, want)
	case types.OpStartsWith:
		return strings.HasPrefix(have, want)
	case types.OpEndsWith:
		return strings.HasSuffix(have, want)
	case types.OpGreaterThan:
		return have > want
	case types.OpLessThan:
		return have < want
	default:
		return false
	}
}

// sortRecords stable-sorts records by the display value of the sort field,
// case-insensitive. Display order matters: for reference and choice fields
// the raw value is an opaque id whose order means nothing to users.
func sortRecords(records []types.Record, field, direction string) {
	desc := direction == types.SortDescending
	sort.SliceStable(records, func(i, j int) bool {
		a := strings.ToLower(records[i][field].DisplayValue)
		b := strings.ToLower(records[j][field].DisplayValue)
		if desc {
			return a > b
		}
		return a < b
	})
}
