package types

import (
	"fmt"
	"regexp"
)

// Field types. The enumeration is closed; TableDef.Validate rejects
// definitions using anything else.
const (
	FieldTypeString    = "string"
	FieldTypeText      = "text"
	FieldTypeRichText  = "richtext"
	FieldTypeInteger   = "integer"
	FieldTypeBoolean   = "boolean"
	FieldTypeChoice    = "choice"
	FieldTypeReference = "reference"
	FieldTypeDatetime  = "datetime"
	FieldTypeDate      = "date"
	FieldTypeEmail     = "email"
	FieldTypeURL       = "url"
	FieldTypePhone     = "phone"
	FieldTypeCurrency  = "currency"
)

// validFieldTypes is the set of recognized field type values.
var validFieldTypes = map[string]bool{
	FieldTypeString:    true,
	FieldTypeText:      true,
	FieldTypeRichText:  true,
	FieldTypeInteger:   true,
	FieldTypeBoolean:   true,
	FieldTypeChoice:    true,
	FieldTypeReference: true,
	FieldTypeDatetime:  true,
	FieldTypeDate:      true,
	FieldTypeEmail:     true,
	FieldTypeURL:       true,
	FieldTypePhone:     true,
	FieldTypeCurrency:  true,
}

// tableNameRe constrains table names to identifier characters. Table names
// double as persistence file names, so path separators must be impossible.
var tableNameRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Choice is one selectable option of a choice-typed field.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FieldDef describes one field of a table.
type FieldDef struct {
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Label     string   `json:"label"`
	Required  bool     `json:"required,omitempty"`
	ReadOnly  bool     `json:"readonly,omitempty"`
	Choices   []Choice `json:"choices,omitempty"`
	Reference string   `json:"reference,omitempty"`
	MaxLength int      `json:"max_length,omitempty"`
}

// ListView configures the table's list rendering: visible columns, default
// sort, and page size.
type ListView struct {
	Columns       []string `json:"columns"`
	DefaultSort   string   `json:"default_sort,omitempty"`
	SortDirection string   `json:"sort_direction,omitempty"`
	PageSize      int      `json:"page_size,omitempty"`
}

// FormSection is one titled group of fields on a record form.
type FormSection struct {
	Label  string   `json:"label"`
	Fields []string `json:"fields"`
}

// FormView configures the record form as an ordered list of sections.
type FormView struct {
	Sections []FormSection `json:"sections"`
}

// RelatedList declares a child table shown beneath a record form: records
// of Table whose Field references the parent record.
type RelatedList struct {
	Table string `json:"table"`
	Field string `json:"field"`
	Label string `json:"label,omitempty"`
}

// TableDef is the static schema and view configuration of one table.
// Definitions are created at schema-load time and are immutable for the
// session, except that newly imported definitions may be registered.
// Records optionally embeds seed data loaded on initialization.
type TableDef struct {
	Name         string        `json:"name"`
	Label        string        `json:"label"`
	PluralLabel  string        `json:"plural_label,omitempty"`
	Fields       []FieldDef    `json:"fields"`
	ListView     *ListView     `json:"list_view,omitempty"`
	FormView     *FormView     `json:"form_view,omitempty"`
	RelatedLists []RelatedList `json:"related_lists,omitempty"`
	Records      []Record      `json:"records,omitempty"`
}

// Field returns the definition of the named field.
func (t *TableDef) Field(name string) (*FieldDef, bool) {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i], true
		}
	}
	return nil, false
}

// DefaultPageSize returns the list view's configured page size, falling
// back to 20.
func (t *TableDef) DefaultPageSize() int {
	if t.ListView != nil && t.ListView.PageSize > 0 {
		return t.ListView.PageSize
	}
	return 20
}

// Validate checks that the definition is well-formed: a legal table name,
// uniquely named fields, and only known field types. Returns an error
// wrapping one of the schema sentinel errors.
func (t *TableDef) Validate() error {
	if !tableNameRe.MatchString(t.Name) {
		return fmt.Errorf("%w: table name %q", ErrInvalidTableDef, t.Name)
	}
	seen := make(map[string]bool, len(t.Fields))
	for _, f := range t.Fields {
		if f.Name == "" {
			return fmt.Errorf("%w: table %s has a field with no name", ErrInvalidFieldDef, t.Name)
		}
		if seen[f.Name] {
			return fmt.Errorf("%w: table %s field %s defined twice", ErrInvalidFieldDef, t.Name, f.Name)
		}
		seen[f.Name] = true
		if !validFieldTypes[f.Type] {
			return fmt.Errorf("%w: table %s field %s type %q", ErrInvalidFieldType, t.Name, f.Name, f.Type)
		}
		if f.Type == FieldTypeReference && f.Reference == "" {
			return fmt.Errorf("%w: table %s reference field %s names no target table", ErrInvalidFieldDef, t.Name, f.Name)
		}
	}
	return nil
}
