package generator

import (
	"slices"
	"strconv"

	"github.com/vk/expc/internal/diag"
	"github.com/vk/expc/internal/model"
	"github.com/vk/expc/internal/script"
	"github.com/vk/expc/internal/worksheet"
)

// Result column namespaces.
const (
	stimulusPrefix = "stimulus:"
	savePrefix     = "save:"
	formatPrefix   = "format:"
)

// stimulusField names the data row field that carries a step's markup.
func stimulusField(step int) string {
	return "stim_" + strconv.Itoa(step)
}

func stepID(trialType string, step int) string {
	return trialType + "." + strconv.Itoa(step)
}

// columnRegistry remembers result columns in first-seen order.
type columnRegistry struct {
	seen  map[string]struct{}
	names []string
}

func (r *columnRegistry) add(name string) {
	if r.seen == nil {
		r.seen = make(map[string]struct{})
	}
	if _, ok := r.seen[name]; ok {
		return
	}
	r.seen[name] = struct{}{}
	r.names = append(r.names, name)
}

// dataRows emits one timeline variable set per trial together with the
// manifest of result columns the rows carry.
func (g *Generator) dataRows(exp *model.Experiment) ([]script.DataRow, []string) {
	var (
		rows    []script.DataRow
		columns columnRegistry
	)
	for i, trial := range exp.Trials {
		tt, ok := exp.TrialTypes.Get(trial.TrialType)
		if !ok {
			g.sink.Errorf("TRIAL_TYPE_UNRESOLVED", diag.Sheet(worksheet.SheetTrials),
				"trial %d refers to trial type %q, which is not defined. The trial was skipped.", i+1, trial.TrialType)
			continue
		}

		row := script.DataRow{TrialType: tt.Name}
		for _, step := range tt.Steps {
			row.Fields = append(row.Fields, script.Field{
				Name:  stimulusField(step.Num),
				Value: stepMarkup(exp, trial, step.ControlNames),
			})
		}
		if exp.SaveResults {
			for _, f := range resultFields(exp, tt, trial) {
				columns.add(f.Name)
				row.Fields = append(row.Fields, f)
			}
		}
		rows = append(rows, row)
	}
	return rows, columns.names
}

// resultFields are the namespaced columns a trial adds to each recorded step:
// the text of every control of its type, its saved values and its format
// overrides.
func resultFields(exp *model.Experiment, tt *model.TrialType, trial *model.Trial) []script.Field {
	var fields []script.Field

	controls := tt.ControlNames()
	slices.Sort(controls)
	for _, name := range controls {
		ctl, ok := exp.Layout.Get(name)
		if !ok {
			continue
		}
		fields = append(fields, script.Field{Name: stimulusPrefix + name, Value: controlText(ctl, trial)})
	}

	for name, value := range trial.SaveValues.All() {
		fields = append(fields, script.Field{Name: savePrefix + name, Value: value})
	}

	styled := make([]string, 0, len(trial.CSS))
	for name := range trial.CSS {
		styled = append(styled, name)
	}
	slices.Sort(styled)
	for _, name := range styled {
		for attr, value := range trial.CSS[name].All() {
			fields = append(fields, script.Field{Name: formatPrefix + name + "." + attr, Value: value})
		}
	}
	return fields
}
