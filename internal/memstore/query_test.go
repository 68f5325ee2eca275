package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protoglyph/slatedesk/pkg/types"
)

func newPeopleStore(t *testing.T, records ...types.Record) *Store {
	t.Helper()
	s := New()
	require.NoError(t, s.RegisterTable(types.TableDef{
		Name:  "person",
		Label: "Person",
		Fields: []types.FieldDef{
			{Name: "name", Type: types.FieldTypeString, Label: "Name"},
			{Name: "notes", Type: types.FieldTypeText, Label: "Notes"},
			{Name: "active", Type: types.FieldTypeBoolean, Label: "Active"},
			{Name: "manager", Type: types.FieldTypeReference, Label: "Manager", Reference: "person"},
		},
		ListView: &types.ListView{PageSize: 2},
		Records:  records,
	}))
	return s
}

func person(name string) types.Record {
	return types.Record{"name": types.NewFieldValue(name)}
}

func names(records []types.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r["name"].DisplayValue
	}
	return out
}

func TestQuery_UnknownTable(t *testing.T) {
	s := newPeopleStore(t)
	_, err := s.Query(context.Background(), "ghost", types.QueryParams{})
	assert.ErrorIs(t, err, types.ErrTableNotFound)
}

func TestQuery_SingleEqualityFilter(t *testing.T) {
	s := newPeopleStore(t, person("Alice"), person("Bob"), person("Charlie"))

	res, err := s.Query(context.Background(), "person", types.QueryParams{
		Filters: []types.FilterCondition{{Field: "name", Operator: types.OpIs, Value: "alice"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, []string{"Alice"}, names(res.Data))
}

// The conjunction on condition i governs how condition i+1 combines, not how
// condition i itself combines. With [name is Alice (OR), name is Bob] the OR
// applies to the Bob condition: (true AND Alice) OR Bob — two matches.
func TestQuery_ConjunctionAppliesToNextCondition(t *testing.T) {
	s := newPeopleStore(t, person("Alice"), person("Bob"), person("Charlie"))

	res, err := s.Query(context.Background(), "person", types.QueryParams{
		Filters: []types.FilterCondition{
			{Field: "name", Operator: types.OpIs, Value: "Alice", Conjunction: types.ConjunctionOr},
			{Field: "name", Operator: types.OpIs, Value: "Bob"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.ElementsMatch(t, []string{"Alice", "Bob"}, names(res.Data))
}

// Under the misread ("a condition's conjunction governs its own combine"),
// the same chain would AND both conditions and match nothing.
func TestQuery_FirstConjunctionIgnored(t *testing.T) {
	s := newPeopleStore(t, person("Alice"), person("Bob"), person("Charlie"))

	// A lone condition with an OR conjunction must not turn into "true OR x".
	res, err := s.Query(context.Background(), "person", types.QueryParams{
		Filters: []types.FilterCondition{
			{Field: "name", Operator: types.OpIs, Value: "Alice", Conjunction: types.ConjunctionOr},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
}

func TestQuery_Operators(t *testing.T) {
	s := newPeopleStore(t, person("Apple"), person("Banana"), person("Cherry"))

	tests := []struct {
		op   string
		val  string
		want []string
	}{
		{types.OpIsNot, "banana", []string{"Apple", "Cherry"}},
		{types.OpContains, "err", []string{"Cherry"}},
		{types.OpStartsWith, "ap", []string{"Apple"}},
		{types.OpEndsWith, "NA", []string{"Banana"}},
		{types.OpGreaterThan, "Banana", []string{"Cherry"}},
		{types.OpLessThan, "banana", []string{"Apple"}},
	}
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			res, err := s.Query(context.Background(), "person", types.QueryParams{
				PageSize: 10,
				Filters:  []types.FilterCondition{{Field: "name", Operator: tt.op, Value: tt.val}},
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(res.Data))
		})
	}
}

// Lexical comparison is preserved even where it is numerically wrong: "10"
// sorts below "9".
func TestQuery_GreaterThanIsLexicalNotNumeric(t *testing.T) {
	s := newPeopleStore(t, person("10"), person("9"))

	res, err := s.Query(context.Background(), "person", types.QueryParams{
		Filters: []types.FilterCondition{{Field: "name", Operator: types.OpGreaterThan, Value: "5"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"9"}, names(res.Data))
}

// Sorting uses display values. The raw ids order user_3 < user_1 only by
// coincidence; construct pairs where raw order and display order disagree.
func TestQuery_SortUsesDisplayValue(t *testing.T) {
	s := newPeopleStore(t,
		types.Record{"name": types.NewFieldValue("r1"), "manager": types.NewFieldValue("user_3", "Charlie")},
		types.Record{"name": types.NewFieldValue("r2"), "manager": types.NewFieldValue("user_1", "Alice")},
		types.Record{"name": types.NewFieldValue("r3"), "manager": types.NewFieldValue("user_2", "Bob")},
	)

	res, err := s.Query(context.Background(), "person", types.QueryParams{
		PageSize:  10,
		SortField: "manager",
	})
	require.NoError(t, err)

	managers := make([]string, len(res.Data))
	for i, r := range res.Data {
		managers[i] = r["manager"].DisplayValue
	}
	assert.Equal(t, []string{"Alice", "Bob", "Charlie"}, managers)
}

func TestQuery_SortDescending(t *testing.T) {
	s := newPeopleStore(t, person("Bob"), person("alice"), person("Charlie"))

	res, err := s.Query(context.Background(), "person", types.QueryParams{
		PageSize:      10,
		SortField:     "name",
		SortDirection: types.SortDescending,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Charlie", "Bob", "alice"}, names(res.Data))
}

func TestQuery_PaginationDefaults(t *testing.T) {
	s := newPeopleStore(t, person("Alice"), person("Bob"), person("Charlie"))

	// Page size comes from the list view (2).
	res, err := s.Query(context.Background(), "person", types.QueryParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 2, res.PageSize)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, []string{"Alice", "Bob"}, names(res.Data))
}

func TestQuery_TotalIndependentOfPage(t *testing.T) {
	s := newPeopleStore(t, person("Alice"), person("Bob"), person("Charlie"))

	res, err := s.Query(context.Background(), "person", types.QueryParams{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, []string{"Charlie"}, names(res.Data))

	// Out-of-range page: empty data, unchanged total.
	res, err = s.Query(context.Background(), "person", types.QueryParams{Page: 9})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Empty(t, res.Data)
	assert.Equal(t, 9, res.Page)
}

func TestQuery_SearchMatchesStringAndTextFields(t *testing.T) {
	s := newPeopleStore(t,
		types.Record{"name": types.NewFieldValue("Alice"), "notes": types.NewFieldValue("network outage follow-up")},
		types.Record{"name": types.NewFieldValue("Bob")},
	)

	res, err := s.Query(context.Background(), "person", types.QueryParams{Search: "OUTAGE"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice"}, names(res.Data))
}

// A boolean field rendering "true" must never satisfy search: "true"; only
// string and text fields participate in free-text search.
func TestQuery_SearchSkipsNonTextFields(t *testing.T) {
	s := newPeopleStore(t,
		types.Record{"name": types.NewFieldValue("Alice"), "active": types.NewFieldValue("true")},
	)

	res, err := s.Query(context.Background(), "person", types.QueryParams{Search: "true"})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Total)
}

func TestQuery_SearchThenFilterCompose(t *testing.T) {
	s := newPeopleStore(t,
		types.Record{"name": types.NewFieldValue("Alice"), "notes": types.NewFieldValue("vip customer")},
		types.Record{"name": types.NewFieldValue("Bob"), "notes": types.NewFieldValue("vip customer")},
		types.Record{"name": types.NewFieldValue("Alice"), "notes": types.NewFieldValue("walk-in")},
	)

	res, err := s.Query(context.Background(), "person", types.QueryParams{
		Search:  "vip",
		Filters: []types.FilterCondition{{Field: "name", Operator: types.OpIs, Value: "alice"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
}

// greater_than over Apple/Banana/Cherry picks only Cherry: lexically
// "Cherry" > "Banana" while "Apple" is not.
func TestQuery_LexicalGreaterThanScenario(t *testing.T) {
	s := newPeopleStore(t, person("Apple"), person("Banana"), person("Cherry"))

	res, err := s.Query(context.Background(), "person", types.QueryParams{
		Filters: []types.FilterCondition{{Field: "name", Operator: types.OpGreaterThan, Value: "Banana"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, []string{"Cherry"}, names(res.Data))
}

func TestQuery_UnknownOperatorMatchesNothing(t *testing.T) {
	s := newPeopleStore(t, person("Alice"))

	res, err := s.Query(context.Background(), "person", types.QueryParams{
		Filters: []types.FilterCondition{{Field: "name", Operator: "regex", Value: ".*"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Total)
}

func TestQuery_StableSortPreservesInsertionOrder(t *testing.T) {
	s := newPeopleStore(t,
		types.Record{"name": types.NewFieldValue("first"), "notes": types.NewFieldValue("same")},
		types.Record{"name": types.NewFieldValue("second"), "notes": types.NewFieldValue("same")},
	)

	res, err := s.Query(context.Background(), "person", types.QueryParams{
		PageSize:  10,
		SortField: "notes",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, names(res.Data))
}
