package builder

import (
	"context"
	"strings"

	"github.com/vk/expc/internal/cssutil"
	"github.com/vk/expc/internal/ctxlog"
	"github.com/vk/expc/internal/diag"
	"github.com/vk/expc/internal/model"
	"github.com/vk/expc/internal/worksheet"
)

func (b *Builder) parseTrials(ctx context.Context, exp *model.Experiment) {
	logger := ctxlog.FromContext(ctx)
	t := b.reader.Trials()
	logger.Debug("Parsing trials worksheet.", "rows", len(t.Rows))

	if exp.TrialTypes.Len() == 0 {
		b.sink.Errorf("TRIALS_IGNORED", diag.Sheet(t.Name), "all trials were ignored because no trial types are defined")
		return
	}
	if t.Empty() {
		b.sink.Errorf("NO_TRIALS", diag.Sheet(t.Name), "no trials were specified.")
		return
	}
	if !t.HasColumn("type") && exp.TrialTypes.Len() > 1 {
		b.sink.Errorf("NO_TYPE_IN_TRIALS_WS", diag.Sheet(t.Name),
			"when there is more than one trial type, you must specify the \"type\" column in this worksheet to indicate the type of each trial.")
		return
	}

	columns := b.classifyTrialColumns(t, exp)
	for _, row := range t.Rows {
		if trial := b.parseTrial(t, row, exp, columns); trial != nil {
			exp.Trials = append(exp.Trials, trial)
		}
	}
	logger.Debug("Trials parsed.", "trials", len(exp.Trials))
}

func (b *Builder) classifyTrialColumns(t *worksheet.Table, exp *model.Experiment) []trialColumn {
	var usable []trialColumn
	for i, header := range t.Columns {
		col := parseTrialColumn(i+1, header)
		at := diag.Column(t.Name, col.Index)

		switch col.Kind {
		case columnIgnored, columnType:
			continue

		case columnInvalidSave:
			b.sink.Errorf("TRIALS_INVALID_SAVE_COL", at,
				"a column named %q is invalid, you must write something after the \"save:\" (e.g., \"save:xyz\" if you want column \"xyz\" to appear in the output file).", header)
			continue

		case columnInvalidFormat:
			b.sink.Errorf("TRIALS_INVALID_COL_NAME", at,
				"column name %q is invalid. To specify the formatting of a layout item, the column name should be %sLLL.CCC, where LLL is the layout item name and CCC is the specific formatting (CSS) specifier", header, cssPrefix)
			continue

		case columnFormat:
			key, _, ok := exp.Layout.LookupFold(col.Name)
			if !ok {
				b.sink.Errorf("TRIALS_UNKNOWN_CONTROL", at, "there is no layout item named %q.", col.Name)
				continue
			}
			if !cssutil.ValidProperty(col.CSSAttr) {
				b.sink.Errorf("TRIALS_INVALID_CSS", at, "%q is not a valid formatting (CSS) specifier.", col.CSSAttr)
				continue
			}
			col.Name = key

		case columnControl:
			key, _, ok := exp.Layout.LookupFold(col.Name)
			if !ok {
				b.sink.Errorf("TRIALS_INVALID_COL_NAME", at,
					"column name %q is invalid. Specify one of the following:\n"+
						"(1) A layout item name, to specify its value.\n"+
						"(2) %sLLL.CCC for trial-specific formatting of a layout item, where LLL is the layout item name and CCC is the specific formatting (CSS) specifier.\n"+
						"(3) save:CCC to save a value as-is to the results file (CCC is the column name in the results file)",
					header, cssPrefix)
				continue
			}
			col.Name = key
		}
		usable = append(usable, col)
	}
	return usable
}

func (b *Builder) parseTrial(t *worksheet.Table, row *worksheet.Row, exp *model.Experiment, columns []trialColumn) *model.Trial {
	var typeName string
	if t.HasColumn("type") {
		typeName = strings.TrimSpace(worksheet.String(row.Get("type")))
		if typeName == "" {
			b.sink.Errorf("TRIALS_NO_TRIAL_TYPE", cell(t, row, "type"), "trial type was not specified.")
			return nil
		}
	} else {
		typeName = exp.TrialTypes.Keys()[0]
	}

	key, tt, ok := exp.TrialTypes.LookupFold(typeName)
	if !ok {
		b.sink.Errorf("TRIALS_INVALID_TRIAL_TYPE", diag.Line(t.Name, row.Line),
			"trial type %q was not defined in worksheet %q. This trial was ignored.", typeName, worksheet.SheetTrialType)
		return nil
	}

	trial := model.NewTrial(key)
	for _, col := range columns {
		v := row.At(col.Index)
		if worksheet.IsEmpty(v) {
			continue
		}
		at := diag.Cell(t.Name, col.Index, row.Line)

		switch col.Kind {
		case columnControl:
			trial.ControlValues[col.Name] = worksheet.String(v)

		case columnSave:
			trial.SaveValues.Set(col.Name, worksheet.String(v))

		case columnFormat:
			if !tt.UsesControl(col.Name) {
				b.sink.Errorf("TRIALS_CSS_TRIALTYPE_MISMATCH", at,
					"layout item %q is inactive for trials of type %q.", col.Name, tt.Name)
				continue
			}
			value := strings.TrimSpace(worksheet.String(v))
			if !cssutil.ValidDeclaration(col.CSSAttr, value) {
				b.sink.Errorf("TRIALS_INVALID_CSS", at, "the formatting %q: %q is not valid CSS and was ignored.", col.CSSAttr, value)
				continue
			}
			trial.AddCSS(col.Name, col.CSSAttr, value)
		}
	}
	return trial
}
