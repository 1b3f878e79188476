package worksheet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"github.com/zclconf/go-cty/cty"
)

type xlsxSource struct {
	file *excelize.File
}

// OpenXLSX opens an Excel workbook.
func OpenXLSX(path string) (Source, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	return &xlsxSource{file: f}, nil
}

func (s *xlsxSource) SheetNames() []string {
	return s.file.GetSheetList()
}

// Sheet reads raw cell values so that percentages and other formatted
// numbers keep their numeric value (50% reads as 0.5).
func (s *xlsxSource) Sheet(name string) (*Table, error) {
	rows, err := s.file.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return NewTable(name, nil), nil
	}

	table := NewTable(name, rows[0])
	for i, raw := range rows[1:] {
		line := i + 2
		cells := make([]cty.Value, len(raw))
		for j, text := range raw {
			axis, err := excelize.CoordinatesToCellName(j+1, line)
			if err != nil {
				return nil, err
			}
			cellType, err := s.file.GetCellType(name, axis)
			if err != nil {
				return nil, err
			}
			cells[j] = xlsxCell(text, cellType)
		}
		row := table.AddRow(line, cells)
		if row.Empty() {
			table.Rows = table.Rows[:len(table.Rows)-1]
		}
	}
	return table, nil
}

func (s *xlsxSource) Close() error {
	return s.file.Close()
}

func xlsxCell(raw string, cellType excelize.CellType) cty.Value {
	if raw == "" {
		return Null()
	}
	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return cty.StringVal(raw)
	case excelize.CellTypeBool:
		return cty.BoolVal(raw == "1" || strings.EqualFold(raw, "true"))
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return cty.NumberFloatVal(f)
	}
	return cty.StringVal(raw)
}
