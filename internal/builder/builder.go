package builder

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/expc/internal/ctxlog"
	"github.com/vk/expc/internal/diag"
	"github.com/vk/expc/internal/model"
	"github.com/vk/expc/internal/worksheet"
)

// Reader gives the Builder access to the worksheets of one workbook. Each
// accessor returns an empty table when the worksheet is absent.
type Reader interface {
	Open(ctx context.Context) error
	GeneralConfig() *worksheet.Table
	Layout() *worksheet.Table
	ResponseModes() *worksheet.Table
	TrialTypes() *worksheet.Table
	Trials() *worksheet.Table
	Instructions() *worksheet.Table
}

// Options tune validation.
type Options struct {
	// InstructionsMandatory turns a missing instructions worksheet into a warning.
	InstructionsMandatory bool
}

// Builder builds one Experiment from one Reader.
type Builder struct {
	reader Reader
	sink   *diag.Sink
	opts   Options
}

// New creates a Builder that reports to sink.
func New(reader Reader, sink *diag.Sink, opts Options) *Builder {
	return &Builder{reader: reader, sink: sink, opts: opts}
}

// Build opens the reader and parses every worksheet. It returns an error
// only when the workbook cannot be opened; the Experiment is returned even
// when diagnostics were recorded.
func (b *Builder) Build(ctx context.Context) (*model.Experiment, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Builder started.")

	if err := b.reader.Open(ctx); err != nil {
		if !errors.Is(err, worksheet.ErrInvalidWorkbook) {
			b.sink.Errorf("WORKBOOK_UNREADABLE", nil, "the workbook could not be read: %v", err)
		}
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	exp := model.NewExperiment()
	b.parseGeneral(ctx, exp)
	b.parseLayout(ctx, exp)
	b.parseResponses(ctx, exp)
	b.parseTrialTypes(ctx, exp)
	b.parseInstructions(ctx, exp)
	b.parseTrials(ctx, exp)

	logger.Debug("Builder finished.",
		"controls", exp.Layout.Len(),
		"responses", exp.Responses.Len(),
		"trial_types", exp.TrialTypes.Len(),
		"instructions", len(exp.Instructions),
		"trials", len(exp.Trials),
		"errors", b.sink.ErrorsFound(),
		"warnings", b.sink.WarningsFound(),
	)
	return exp, nil
}

// requireColumns records MISSING_COL for each absent column and reports
// whether all were present.
func (b *Builder) requireColumns(t *worksheet.Table, what string, columns ...[]string) bool {
	ok := true
	for _, names := range columns {
		if !t.HasColumn(names...) {
			b.sink.Errorf("MISSING_COL", diag.Sheet(t.Name), "column %q is missing. All %s were ignored.", names[0], what)
			ok = false
		}
	}
	return ok
}

func cell(t *worksheet.Table, row *worksheet.Row, names ...string) *diag.Location {
	return diag.Cell(t.Name, t.Column(names...), row.Line)
}
