package types

// Filter operators. All comparisons are case-insensitive and lexical over
// display values. greater_than and less_than stay lexical even for
// integer-typed fields, so "10" sorts before "9"; clients depend on that
// ordering.
const (
	OpIs          = "is"
	OpIsNot       = "is_not"
	OpContains    = "contains"
	OpStartsWith  = "starts_with"
	OpEndsWith    = "ends_with"
	OpGreaterThan = "greater_than"
	OpLessThan    = "less_than"
)

// Conjunctions linking one condition's result to the accumulated result of
// the prior conditions.
const (
	ConjunctionAnd = "AND"
	ConjunctionOr  = "OR"
)

// Sort directions.
const (
	SortAscending  = "asc"
	SortDescending = "desc"
)

// FilterCondition is one clause of a filter chain. Conjunction on condition
// i governs how condition i+1 combines with the accumulated result — not how
// condition i itself combines. The first condition's conjunction is ignored.
// Empty Conjunction means AND.
type FilterCondition struct {
	Field       string `json:"field"`
	Operator    string `json:"operator"`
	Value       string `json:"value"`
	Conjunction string `json:"conjunction,omitempty"`
}

// QueryParams selects, orders, and pages a table's records. Zero values take
// defaults: Page 1, PageSize from the table's list view (fallback 20),
// SortDirection ascending.
type QueryParams struct {
	Page          int               `json:"page,omitempty"`
	PageSize      int               `json:"page_size,omitempty"`
	SortField     string            `json:"sort_field,omitempty"`
	SortDirection string            `json:"sort_direction,omitempty"`
	Filters       []FilterCondition `json:"filters,omitempty"`
	Search        string            `json:"search,omitempty"`
}

// QueryResult is one page of records. Total counts all records surviving
// search and filtering, independent of the requested page.
type QueryResult struct {
	Data     []Record `json:"data"`
	Total    int      `json:"total"`
	Page     int      `json:"page"`
	PageSize int      `json:"page_size"`
}
