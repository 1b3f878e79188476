package worksheet

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/expc/internal/ctxlog"
	"github.com/vk/expc/internal/diag"
)

// Worksheet names.
const (
	SheetGeneral      = "general"
	SheetInstructions = "instructions"
	SheetTrialType    = "trial_type"
	SheetLayout       = "layout"
	SheetResponse     = "response"
	SheetTrials       = "trials"
)

var (
	knownSheets     = []string{SheetGeneral, SheetInstructions, SheetTrialType, SheetLayout, SheetResponse, SheetTrials}
	mandatorySheets = []string{SheetGeneral, SheetLayout, SheetTrials}
)

// ErrInvalidWorkbook is returned by Open when structural problems were
// recorded in the diagnostics sink.
var ErrInvalidWorkbook = errors.New("invalid workbook")

// Source materializes the worksheets of one file format.
type Source interface {
	SheetNames() []string
	Sheet(name string) (*Table, error)
	Close() error
}

// Workbook gives the builder access to the known worksheets of a Source.
type Workbook struct {
	name   string
	source Source
	sink   *diag.Sink
	sheets map[string]*Table
}

// NewWorkbook wraps a Source. name is used in messages (usually the file's
// base name).
func NewWorkbook(name string, source Source, sink *diag.Sink) *Workbook {
	return &Workbook{name: name, source: source, sink: sink}
}

// OpenFile picks a Source by file extension and wraps it in a Workbook. The
// workbook still has to be opened with Open.
func OpenFile(path string, sink *diag.Sink) (*Workbook, error) {
	var (
		src Source
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		src, err = OpenXLSX(path)
	case ".yaml", ".yml":
		src, err = OpenYAML(path)
	default:
		return nil, fmt.Errorf("unsupported workbook format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}
	return NewWorkbook(filepath.Base(path), src, sink), nil
}

// SupportedExtension reports whether OpenFile can read the path.
func SupportedExtension(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".yaml", ".yml":
		return true
	}
	return false
}

// Open loads every known worksheet and validates the workbook structure:
// the general, layout and trials worksheets must exist, and no known
// worksheet may repeat a column name. Problems are recorded in the sink and
// reported as ErrInvalidWorkbook.
func (w *Workbook) Open(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Opening workbook.", "name", w.name)

	present := make(map[string]string)
	for _, name := range w.source.SheetNames() {
		for _, known := range knownSheets {
			if strings.EqualFold(strings.TrimSpace(name), known) {
				if _, dup := present[known]; !dup {
					present[known] = name
				}
			}
		}
	}

	ok := true
	for _, name := range mandatorySheets {
		if _, found := present[name]; !found {
			w.sink.Errorf("MISSING_WORKSHEET_IN_CONFIG", nil, "invalid configuration file %s: worksheet %q is missing", w.name, name)
			ok = false
		}
	}

	w.sheets = make(map[string]*Table)
	for _, known := range knownSheets {
		actual, found := present[known]
		if !found {
			continue
		}
		table, err := w.source.Sheet(actual)
		if err != nil {
			return fmt.Errorf("failed to read worksheet %q of %s: %w", actual, w.name, err)
		}
		table.Name = known
		if dups := table.DuplicateColumns(); len(dups) > 0 {
			w.sink.Errorf("DUPLICATE_COL_NAMES", diag.Sheet(known), "some columns appear twice (%s).", strings.Join(dups, ","))
			ok = false
		}
		w.sheets[known] = table
		logger.Debug("Worksheet loaded.", "sheet", known, "columns", len(table.Columns), "rows", len(table.Rows))
	}

	if !ok {
		return ErrInvalidWorkbook
	}
	return nil
}

// Close releases the underlying source.
func (w *Workbook) Close() error {
	return w.source.Close()
}

func (w *Workbook) table(name string) *Table {
	if t, ok := w.sheets[name]; ok {
		return t
	}
	return NewTable(name, nil)
}

// GeneralConfig returns the "general" worksheet.
func (w *Workbook) GeneralConfig() *Table { return w.table(SheetGeneral) }

// Layout returns the "layout" worksheet.
func (w *Workbook) Layout() *Table { return w.table(SheetLayout) }

// ResponseModes returns the "response" worksheet.
func (w *Workbook) ResponseModes() *Table { return w.table(SheetResponse) }

// TrialTypes returns the "trial_type" worksheet.
func (w *Workbook) TrialTypes() *Table { return w.table(SheetTrialType) }

// Trials returns the "trials" worksheet.
func (w *Workbook) Trials() *Table { return w.table(SheetTrials) }

// Instructions returns the "instructions" worksheet.
func (w *Workbook) Instructions() *Table { return w.table(SheetInstructions) }

// HasSheet reports whether a known worksheet was present in the source.
func (w *Workbook) HasSheet(name string) bool {
	_, ok := w.sheets[name]
	return ok
}
