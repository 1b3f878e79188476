package builder

import (
	"context"
	"strings"

	"github.com/vk/expc/internal/ctxlog"
	"github.com/vk/expc/internal/diag"
	"github.com/vk/expc/internal/model"
	"github.com/vk/expc/internal/worksheet"
)

var (
	typeNameColumns    = []string{"type", "type_name"}
	layoutItemsColumns = []string{"layout items", "layout_items"}
)

func (b *Builder) parseTrialTypes(ctx context.Context, exp *model.Experiment) {
	logger := ctxlog.FromContext(ctx)
	t := b.reader.TrialTypes()
	logger.Debug("Parsing trial_type worksheet.", "rows", len(t.Rows))

	if t.Empty() {
		b.sink.Errorf("NO_TRIAL_TYPES", diag.Sheet(t.Name), "no trial types were specified.")
		return
	}
	if !b.requireColumns(t, "trial types", layoutItemsColumns) {
		return
	}

	last := ""
	for _, row := range t.Rows {
		typeName, ok := b.parseTrialTypeName(t, row, last)
		if !ok {
			continue
		}
		key, tt, exists := exp.TrialTypes.LookupFold(typeName)
		if exists {
			typeName = key
		} else {
			tt = &model.TrialType{Name: typeName}
		}
		step := b.parseStep(t, row, exp, len(tt.Steps)+1)
		if step == nil {
			continue
		}
		tt.Steps = append(tt.Steps, step)
		if !exists {
			exp.TrialTypes.Set(typeName, tt)
		}
		last = typeName
	}
	logger.Debug("Trial types parsed.", "trial_types", exp.TrialTypes.Len())
}

// parseTrialTypeName resolves the type a row belongs to. A blank cell
// inherits the previous row's type.
func (b *Builder) parseTrialTypeName(t *worksheet.Table, row *worksheet.Row, last string) (string, bool) {
	if !t.HasColumn(typeNameColumns...) {
		return model.DefaultTrialTypeName, true
	}

	at := cell(t, row, typeNameColumns...)
	v := row.Get(typeNameColumns...)
	name := strings.TrimSpace(worksheet.String(v))
	if worksheet.IsEmpty(v) {
		if last == "" {
			name = model.DefaultTrialTypeName
			b.sink.Errorf("TRIAL_TYPE_MISSING", at, "\"type\" was not specified. Type=%q will be used, but this is invalid.", name)
		} else {
			name = last
			b.sink.Warnf("TRIAL_TYPE_MISSING", at,
				"\"type\" was not specified. Assuming this step belongs to the last specified trial type (%s).", name)
		}
	}

	if strings.EqualFold(name, "type") {
		b.sink.Errorf("TRIAL_TYPE_INVALID_TYPE_NAME", at, "a trial type cannot be named %q, the name is reserved.", name)
		return "", false
	}
	return name, true
}

func (b *Builder) parseStep(t *worksheet.Table, row *worksheet.Row, exp *model.Experiment, num int) *model.TrialStep {
	controls := b.parseStepControls(t, row, exp)
	responses := b.parseStepResponses(t, row, exp)

	duration := b.parseNumeric(exp, row.Get("duration"), cell(t, row, "duration"), "duration", false)
	step := &model.TrialStep{
		Num:           num,
		ControlNames:  controls,
		ResponseNames: responses,
		Duration:      duration,
	}
	if d := b.parseNumeric(exp, row.Get("delay-before"), cell(t, row, "delay-before"), "delay-before", true); d != nil {
		step.DelayBefore = *d
	}
	if d := b.parseNumeric(exp, row.Get("delay-after"), cell(t, row, "delay-after"), "delay-after", true); d != nil {
		step.DelayAfter = *d
	}

	if len(responses) == 0 && duration == nil {
		b.sink.Errorf("MUST_DEFINE_RESPONSE_OR_DURATION", diag.Line(t.Name, row.Line),
			"an unlimited-time step without response is invalid. Either \"duration\" or \"responses\" must be defined.")
	}

	if len(controls) == 0 {
		return nil
	}
	return step
}

func (b *Builder) parseStepControls(t *worksheet.Table, row *worksheet.Row, exp *model.Experiment) []string {
	at := cell(t, row, layoutItemsColumns...)
	names := splitNames(row.Get(layoutItemsColumns...))
	if len(names) == 0 {
		b.sink.Errorf("TRIAL_TYPE_NO_FIELDS", at, "no value was specified in the \"layout items\" column.")
		return nil
	}

	names, hadDups := dedupe(names, true)
	if hadDups {
		b.sink.Warnf("TRIAL_TYPE_DUPLICATE_CONTROLS", at, "some layout items were specified more than once. The duplicates were ignored.")
	}

	var valid, invalid []string
	for _, n := range names {
		if key, _, ok := exp.Layout.LookupFold(n); ok {
			valid = append(valid, key)
		} else {
			invalid = append(invalid, n)
		}
	}
	if len(invalid) > 0 {
		b.sink.Errorf("TRIAL_TYPE_INVALID_CONTROL_NAMES", at,
			"the layout item/s %q were not specified in the %q worksheet. They were ignored.",
			strings.Join(invalid, ","), worksheet.SheetLayout)
	}
	return valid
}

func (b *Builder) parseStepResponses(t *worksheet.Table, row *worksheet.Row, exp *model.Experiment) []string {
	at := cell(t, row, "responses")
	valid, _ := b.resolveResponses(exp, splitNames(row.Get("responses")), at,
		"TRIAL_TYPE_DUPLICATE_RESPONSES", "TRIAL_TYPE_INVALID_RESPONSE_NAMES", "TRIAL_TYPE_MULTIPLE_RESPONSE_TYPES")
	return valid
}

// resolveResponses deduplicates and resolves a list of response names,
// dropping unknown ones. It reports each problem under the given codes and
// returns the surviving ids together with whether their kinds are mixed.
func (b *Builder) resolveResponses(exp *model.Experiment, names []string, at *diag.Location, dupCode, invalidCode, mixedCode string) ([]string, bool) {
	if len(names) == 0 {
		return nil, false
	}

	names, hadDups := dedupe(names, true)
	if hadDups {
		b.sink.Warnf(dupCode, at, "some responses were specified more than once (the duplicates were ignored).")
	}

	var valid, invalid []string
	kinds := make(map[model.ResponseKind]struct{})
	for _, n := range names {
		key, r, ok := exp.Responses.LookupFold(n)
		if !ok {
			invalid = append(invalid, n)
			continue
		}
		valid = append(valid, key)
		kinds[r.Kind()] = struct{}{}
	}
	if len(invalid) > 0 {
		b.sink.Errorf(invalidCode, at, "the response/s %q were not specified in the %q worksheet. They were ignored.",
			strings.Join(invalid, ","), worksheet.SheetResponse)
	}

	mixed := len(kinds) > 1
	if mixed {
		b.sink.Errorf(mixedCode, at,
			"the response/s %q are of several types (keyboard and button); all responses of one screen must be of the same type.",
			strings.Join(valid, ","))
	}
	return valid, mixed
}
