package worksheet

import (
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Table is the content of one worksheet: a header row followed by data rows.
type Table struct {
	Name    string
	Columns []string
	Rows    []*Row

	index map[string]int
}

// Row is one data row. Line is the spreadsheet line number, so the first data
// row below the header is line 2.
type Row struct {
	Line  int
	table *Table
	cells []cty.Value
}

// NewTable creates an empty table with the given header. Column names are
// trimmed; lookups by name are case-insensitive and resolve to the first
// column carrying that name.
func NewTable(name string, columns []string) *Table {
	t := &Table{Name: name, index: make(map[string]int)}
	for i, c := range columns {
		c = strings.TrimSpace(c)
		t.Columns = append(t.Columns, c)
		key := strings.ToLower(c)
		if _, exists := t.index[key]; !exists {
			t.index[key] = i
		}
	}
	return t
}

// AddRow appends a data row. Missing trailing cells read as null.
func (t *Table) AddRow(line int, cells []cty.Value) *Row {
	row := &Row{Line: line, table: t, cells: cells}
	t.Rows = append(t.Rows, row)
	return row
}

// Empty reports whether the table has no data rows.
func (t *Table) Empty() bool {
	return t == nil || len(t.Rows) == 0
}

// Column returns the 1-based index of the first of the given column names
// that exists, or 0 when none does.
func (t *Table) Column(names ...string) int {
	if t == nil {
		return 0
	}
	for _, name := range names {
		if i, ok := t.index[strings.ToLower(strings.TrimSpace(name))]; ok {
			return i + 1
		}
	}
	return 0
}

// HasColumn reports whether any of the given column names exists.
func (t *Table) HasColumn(names ...string) bool {
	return t.Column(names...) > 0
}

// DuplicateColumns returns the lower-cased names that appear more than once
// in the header, in first-seen order.
func (t *Table) DuplicateColumns() []string {
	counts := make(map[string]int)
	var order []string
	for _, c := range t.Columns {
		key := strings.ToLower(c)
		if key == "" {
			continue
		}
		if counts[key] == 0 {
			order = append(order, key)
		}
		counts[key]++
	}
	var dups []string
	for _, key := range order {
		if counts[key] > 1 {
			dups = append(dups, key)
		}
	}
	return dups
}

// Get returns the cell under the first of the given column names that
// exists, or null.
func (r *Row) Get(names ...string) cty.Value {
	return r.At(r.table.Column(names...))
}

// At returns the cell in the 1-based column, or null.
func (r *Row) At(column int) cty.Value {
	if column < 1 || column > len(r.cells) {
		return Null()
	}
	return r.cells[column-1]
}

// Empty reports whether every cell of the row is empty.
func (r *Row) Empty() bool {
	for _, c := range r.cells {
		if !IsEmpty(c) {
			return false
		}
	}
	return true
}
