package diag

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/xuri/excelize/v2"
)

// Location identifies the worksheet area a diagnostic refers to. Column is
// the 1-based column index and Line the spreadsheet line number (the header
// is line 1); zero means "not applicable".
type Location struct {
	Sheet  string
	Column int
	Line   int
}

// Sheet returns a Location covering a whole worksheet.
func Sheet(name string) *Location {
	return &Location{Sheet: name}
}

// Cell returns a Location for a single cell.
func Cell(sheet string, column, line int) *Location {
	return &Location{Sheet: sheet, Column: column, Line: line}
}

// Line returns a Location for a whole row.
func Line(sheet string, line int) *Location {
	return &Location{Sheet: sheet, Line: line}
}

// Column returns a Location for a whole column.
func Column(sheet string, column int) *Location {
	return &Location{Sheet: sheet, Column: column}
}

// ColumnLetter converts a 1-based column index into spreadsheet letters
// (1 -> A, 27 -> AA). Invalid indexes yield "?".
func ColumnLetter(column int) string {
	name, err := excelize.ColumnNumberToName(column)
	if err != nil {
		return "?"
	}
	return name
}

// String renders the location the way messages quote it, e.g.
// `worksheet "layout", cell B3`.
func (l *Location) String() string {
	if l == nil || l.Sheet == "" {
		return ""
	}
	switch {
	case l.Column > 0 && l.Line > 0:
		return fmt.Sprintf("worksheet %q, cell %s%d", l.Sheet, ColumnLetter(l.Column), l.Line)
	case l.Column > 0:
		return fmt.Sprintf("worksheet %q, column %s", l.Sheet, ColumnLetter(l.Column))
	case l.Line > 0:
		return fmt.Sprintf("worksheet %q, line %d", l.Sheet, l.Line)
	default:
		return fmt.Sprintf("worksheet %q", l.Sheet)
	}
}

func (l *Location) hclRange() *hcl.Range {
	if l == nil || l.Sheet == "" {
		return nil
	}
	pos := hcl.Pos{Line: l.Line, Column: l.Column}
	return &hcl.Range{Filename: l.Sheet, Start: pos, End: pos}
}
