// Package worksheet exposes an experiment workbook as named tables of typed
// cells.
//
// A Source knows how to materialize the sheets of one concrete file format
// (Excel .xlsx, a YAML workbook document, or tables built in memory). A
// Workbook wraps a Source, performs the structural checks that apply to any
// format (mandatory worksheets present, no duplicate column names) and hands
// the builder one Table per known worksheet. Cells are cty values: a
// string, a number, a bool, or null for an empty cell.
package worksheet
