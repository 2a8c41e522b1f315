package schema

import (
	"sort"
	"strings"
)

// Column is a single table column as reported by information_schema.
type Column struct {
	Name     string
	DataType string
	Nullable bool
	Position int
}

// Table is a table or view together with its columns in ordinal order.
type Table struct {
	Schema        string
	Name          string
	Columns       []Column
	ColumnsByName map[string]*Column // keyed by lower-cased name
}

// NewTable builds a table and indexes its columns.
func NewTable(schema, name string, columns ...Column) *Table {
	t := &Table{Schema: schema, Name: name, Columns: columns}
	sort.SliceStable(t.Columns, func(i, j int) bool { return t.Columns[i].Position < t.Columns[j].Position })
	t.ColumnsByName = make(map[string]*Column, len(t.Columns))
	for i := range t.Columns {
		t.ColumnsByName[strings.ToLower(t.Columns[i].Name)] = &t.Columns[i]
	}
	return t
}

// QualifiedName returns schema.name.
func (t *Table) QualifiedName() string {
	if t.Schema == "" {
		return t.Name
	}
	return t.Schema + "." + t.Name
}

// HasColumn reports whether the table has a column named name, ignoring case.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.ColumnsByName[strings.ToLower(name)]
	return ok
}

// ColumnNames returns the column names in ordinal order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}
