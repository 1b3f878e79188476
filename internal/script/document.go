package script

import (
	"strconv"
	"strings"
)

// Document is one generated page.
type Document struct {
	Title        string
	Imports      Imports
	Styles       []StyleBlock
	URLParams    []URLParam
	Setup        Setup
	Instructions []InstructionPage
	Rows         []DataRow
	// Columns is the manifest of result columns copied from the trial data
	// into each recorded step. Empty when results are not saved.
	Columns []string
	Flow    FlowBlock
	// Finish is nil when results are not saved.
	Finish *FinishBlock
}

// Imports lists the script and stylesheet URLs of the page header.
type Imports struct {
	Scripts     []string
	Stylesheets []string
}

// StyleBlock is one CSS rule.
type StyleBlock struct {
	Selector     string
	Declarations []Declaration
}

// Declaration is a single "property: value" pair.
type Declaration struct {
	Property string
	Value    string
}

// URLParam declares a page variable read from the query string.
type URLParam struct {
	Name    string
	Default float64
}

// Var is the JavaScript variable holding the parameter's value.
func (p URLParam) Var() string { return "param_" + p.Name }

// Number is a numeric literal or a reference to a URL parameter.
type Number struct {
	Value float64
	Param string
}

// JS renders the number as a JavaScript expression.
func (n Number) JS() string {
	if n.Param != "" {
		return URLParam{Name: n.Param}.Var()
	}
	return formatFloat(n.Value)
}

// Setup holds the session steps that run before the first page.
type Setup struct {
	FullScreen   bool
	GetSubjectID bool
	GetSessionID bool
	StartBeep    bool
}

// StepKind selects the jsPsych plugin of a page.
type StepKind int

const (
	KeyboardStep StepKind = iota
	ButtonStep
)

// Plugin returns the global name of the jsPsych plugin.
func (k StepKind) Plugin() string {
	if k == ButtonStep {
		return "jsPsychHtmlButtonResponse"
	}
	return "jsPsychHtmlKeyboardResponse"
}

// Prompt describes what a page accepts as an answer.
type Prompt struct {
	Kind StepKind
	// Choices are key values for keyboard pages and labels for button pages.
	Choices []string
	// Unresolved marks a page whose responses could not be reconciled; it
	// renders with an empty choice list.
	Unresolved bool
	// ButtonHTML carries one button template per choice when any button is
	// placed explicitly.
	ButtonHTML []string
}

// ChoicesJS renders the choices parameter.
func (p Prompt) ChoicesJS() string {
	switch {
	case p.Unresolved, p.Choices == nil && p.Kind == ButtonStep:
		return "[]"
	case len(p.Choices) == 0 && p.Kind == KeyboardStep:
		return `"NO_KEYS"`
	default:
		return Literal(p.Choices)
	}
}

// InstructionPage is one instructions screen.
type InstructionPage struct {
	Prompt
	Stimulus string
}

// Field is one named value of a data row or lookup table.
type Field struct {
	Name  string
	Value string
}

// DataRow is the timeline variable set of one trial. Fields keep their order
// in the output.
type DataRow struct {
	TrialType string
	Fields    []Field
}

// JS renders the row as an object literal.
func (r DataRow) JS() string {
	return objectLiteral(append([]Field{{Name: "trial_type", Value: r.TrialType}}, r.Fields...))
}

// StepDescriptor is one presentation step of a trial type.
type StepDescriptor struct {
	Prompt
	// ID identifies the step in the results, e.g. "main.2".
	ID string
	// Stimulus names the data row field that holds the step's markup.
	Stimulus string
	// Duration is nil for a step that waits for a response.
	Duration    *Number
	DelayBefore *Number
	DelayAfter  *Number
}

// FlowBlock is the trial procedure: one branch per trial type, run over the
// data rows.
type FlowBlock struct {
	Branches []FlowBranch
}

// FlowBranch runs its steps for the data rows of one trial type.
type FlowBranch struct {
	TrialType string
	Steps     []StepDescriptor
}

// FinishBlock saves the results when the experiment ends.
type FinishBlock struct {
	// Filename is the body of a JavaScript template literal; ${...} tokens are
	// resolved by the page.
	Filename string
	// InstructionIndices are the trial_index values of instruction pages.
	InstructionIndices []int
	KeepRowsWithoutRT  bool
	ResponseValues     []StepValues
}

// StepValues maps raw responses of one step to their declared values.
type StepValues struct {
	StepID string
	Values []Field
}

// ResponseValuesJS renders the lookup table as a nested object literal.
func (f *FinishBlock) ResponseValuesJS() string {
	if len(f.ResponseValues) == 0 {
		return "{}"
	}
	var b strings.Builder
	b.WriteString("{\n")
	for _, step := range f.ResponseValues {
		b.WriteString("            ")
		b.WriteString(Literal(step.StepID))
		b.WriteString(": ")
		b.WriteString(objectLiteral(step.Values))
		b.WriteString(",\n")
	}
	b.WriteString("        }")
	return b.String()
}

func objectLiteral(fields []Field) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(Literal(f.Name))
		b.WriteString(": ")
		b.WriteString(Literal(f.Value))
	}
	b.WriteByte('}')
	return b.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
