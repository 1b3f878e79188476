package worksheet

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// MemorySource serves tables built in code.
type MemorySource struct {
	tables []*Table
}

// NewMemorySource returns a Source over the given tables. A nil table is
// skipped, which models an absent worksheet.
func NewMemorySource(tables ...*Table) *MemorySource {
	src := &MemorySource{}
	for _, t := range tables {
		if t != nil {
			src.tables = append(src.tables, t)
		}
	}
	return src
}

func (s *MemorySource) SheetNames() []string {
	names := make([]string, 0, len(s.tables))
	for _, t := range s.tables {
		names = append(names, t.Name)
	}
	return names
}

func (s *MemorySource) Sheet(name string) (*Table, error) {
	for _, t := range s.tables {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, fmt.Errorf("worksheet %q not found", name)
}

func (s *MemorySource) Close() error { return nil }

// BuildTable creates a table from Go values. Each row must have at most one
// value per column; nil marks an empty cell.
func BuildTable(name string, columns []string, rows ...[]any) (*Table, error) {
	table := NewTable(name, columns)
	for i, values := range rows {
		if len(values) > len(columns) {
			return nil, fmt.Errorf("worksheet %q row %d: %d values for %d columns", name, i+2, len(values), len(columns))
		}
		cells := make([]cty.Value, len(values))
		for j, v := range values {
			cell, err := FromGo(v)
			if err != nil {
				return nil, fmt.Errorf("worksheet %q row %d: %w", name, i+2, err)
			}
			cells[j] = cell
		}
		table.AddRow(i+2, cells)
	}
	return table, nil
}

// MustTable is like BuildTable but panics on error. It is meant for tests.
func MustTable(name string, columns []string, rows ...[]any) *Table {
	t, err := BuildTable(name, columns, rows...)
	if err != nil {
		panic(err)
	}
	return t
}
