package generator

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/expc/internal/diag"
	"github.com/vk/expc/internal/model"
	"github.com/vk/expc/internal/script"
)

// greetingExperiment is one text control "greeting", one key response "go"
// on "g", one trial type "main" with a single step and one trial.
func greetingExperiment() *model.Experiment {
	exp := model.NewExperiment()
	exp.Layout.Set("greeting", &model.TextControl{Name: "greeting", Text: "Hello", CSS: model.NewStyle()})
	exp.Responses.Set("go", &model.KbResponse{ID: "go", Value: "went", Key: "g"})
	exp.TrialTypes.Set("main", &model.TrialType{Name: "main", Steps: []*model.TrialStep{
		{Num: 1, ControlNames: []string{"greeting"}, ResponseNames: []string{"go"}},
	}})
	exp.Trials = append(exp.Trials, model.NewTrial("main"))
	return exp
}

func generate(t *testing.T, exp *model.Experiment, opts Options) (string, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink(nil)
	out, err := New(sink, opts).Generate(context.Background(), exp)
	require.NoError(t, err)
	return out, sink
}

func document(t *testing.T, exp *model.Experiment) (*script.Document, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink(nil)
	doc, err := New(sink, DefaultOptions()).Document(context.Background(), exp)
	require.NoError(t, err)
	return doc, sink
}

func TestGenerate_GreetingScenario(t *testing.T) {
	out, sink := generate(t, greetingExperiment(), DefaultOptions())

	assert.False(t, sink.ErrorsFound(), "%v", sink.ErrCodes())
	assert.Contains(t, out, "        .greeting {\n            width: 100%;\n        }")
	assert.Contains(t, out, `choices: ["g"],`)
	assert.Contains(t, out, `{"trial_type": "main", "stim_1": "<div class=\"greeting\">Hello<\/div>"},`)
	assert.Contains(t, out, `return jsPsych.timelineVariable("trial_type", true) === "main";`)
	assert.Contains(t, out, `data: {step_id: "main.1"},`)
	assert.Contains(t, out, "let jsPsych = initJsPsych({});")
}

func TestGenerate_Idempotent(t *testing.T) {
	exp := greetingExperiment()
	exp.Layout.Set("target", &model.TextControl{Name: "target", Text: "X", CSS: model.NewStyle()})
	exp.TrialTypes.Set("second", &model.TrialType{Name: "second", Steps: []*model.TrialStep{
		{Num: 1, ControlNames: []string{"target", "greeting"}, Duration: &model.Numeric{Value: 800}},
	}})
	exp.SaveResults = true
	trial := model.NewTrial("second")
	trial.AddCSS("target", "color", "red")
	trial.AddCSS("greeting", "font-size", "20px")
	trial.SaveValues.Set("cond", "a")
	exp.Trials = append(exp.Trials, trial)

	first, _ := generate(t, exp, DefaultOptions())
	second, _ := generate(t, exp, DefaultOptions())
	assert.Equal(t, first, second)
}

func TestGenerate_NoExperiment(t *testing.T) {
	sink := diag.NewSink(nil)
	out, err := New(sink, DefaultOptions()).Generate(context.Background(), nil)

	assert.ErrorIs(t, err, ErrNoExperiment)
	assert.Empty(t, out)
}

func TestGenerate_MixedResponseKinds(t *testing.T) {
	exp := greetingExperiment()
	exp.Responses.Set("ok", &model.ClickButtonResponse{ID: "ok", Value: "accepted", Text: "OK"})
	tt, _ := exp.TrialTypes.Get("main")
	tt.Steps[0].ResponseNames = []string{"go", "ok"}
	exp.SaveResults = true

	out, sink := generate(t, exp, DefaultOptions())

	assert.True(t, sink.Has("STEP_MULTIPLE_RESPONSE_TYPES"))
	assert.True(t, sink.ErrorsFound())
	assert.Contains(t, out, "choices: [],")
	assert.NotContains(t, out, `"main.1": {`)
}

func TestGenerate_Imports(t *testing.T) {
	testCases := []struct {
		name string
		opts Options
		want []string
	}{
		{
			name: "cdn",
			opts: DefaultOptions(),
			want: []string{
				`<script src="https://unpkg.com/jspsych@7.1.2"></script>`,
				`<script src="https://unpkg.com/@jspsych/plugin-html-keyboard-response@1.1.0"></script>`,
				`<script src="https://unpkg.com/@jspsych/plugin-html-button-response@1.1.0"></script>`,
				`<script src="https://unpkg.com/@jspsych/plugin-fullscreen@1.1.0"></script>`,
				`<link href="https://unpkg.com/jspsych@7.1.2/css/jspsych.css" rel="stylesheet" type="text/css" />`,
			},
		},
		{
			name: "local",
			opts: Options{LocalImports: true, LocalPath: "lib/jspsych/"},
			want: []string{
				`<script src="lib/jspsych/jspsych.js"></script>`,
				`<script src="lib/jspsych/plugin-html-keyboard-response.js"></script>`,
				`<script src="lib/jspsych/plugin-fullscreen.js"></script>`,
				`<link href="lib/jspsych/jspsych.css" rel="stylesheet" type="text/css" />`,
			},
		},
		{
			name: "pinned versions",
			opts: Options{JSPsychVersion: "7.3.0", PluginVersion: "1.2.0", CDNBase: "https://cdn.example.org/"},
			want: []string{
				`<script src="https://cdn.example.org/jspsych@7.3.0"></script>`,
				`<script src="https://cdn.example.org/@jspsych/plugin-html-button-response@1.2.0"></script>`,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			exp := greetingExperiment()
			exp.FullScreen = true

			out, _ := generate(t, exp, tc.opts)
			for _, want := range tc.want {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestTextStyle(t *testing.T) {
	testCases := []struct {
		name string
		ctl  *model.TextControl
		want []script.Declaration
	}{
		{
			name: "unplaced",
			ctl:  &model.TextControl{Name: "a", CSS: model.NewStyle()},
			want: []script.Declaration{{Property: "width", Value: "100%"}},
		},
		{
			name: "placed",
			ctl:  &model.TextControl{Name: "a", Frame: model.Frame{Left: "10%", Top: "20px", Width: "50%", Height: "3em"}, CSS: model.NewStyle()},
			want: []script.Declaration{
				{Property: "position", Value: "absolute"},
				{Property: "left", Value: "10%"},
				{Property: "top", Value: "20px"},
				{Property: "width", Value: "50%"},
				{Property: "height", Value: "3em"},
			},
		},
		{
			name: "explicit position and border",
			ctl:  &model.TextControl{Name: "a", Position: "relative", Frame: model.Frame{Top: "5px"}, BorderColor: "navy", CSS: model.NewStyle()},
			want: []script.Declaration{
				{Property: "position", Value: "relative"},
				{Property: "top", Value: "5px"},
				{Property: "width", Value: "100%"},
				{Property: "border", Value: "1px solid navy"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := textStyle(tc.ctl)
			assert.Equal(t, ".a", got.Selector)
			if diff := cmp.Diff(tc.want, got.Declarations); diff != "" {
				t.Errorf("declarations mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStyleBlocks_BackgroundAndCSS(t *testing.T) {
	exp := greetingExperiment()
	exp.BackgroundColor = "#eeeeee"
	ctl, _ := exp.Layout.Get("greeting")
	ctl.(*model.TextControl).CSS.Set("color", "red")

	blocks := styleBlocks(exp)

	require.Len(t, blocks, 2)
	assert.Equal(t, script.StyleBlock{
		Selector:     "body",
		Declarations: []script.Declaration{{Property: "background-color", Value: "#eeeeee"}},
	}, blocks[0])
	assert.Equal(t, script.Declaration{Property: "color", Value: "red"}, blocks[1].Declarations[1])
}

func TestStepMarkup(t *testing.T) {
	exp := greetingExperiment()
	exp.Layout.Set("answer", &model.TextControl{Name: "answer", Text: "?", CSS: model.NewStyle()})

	trial := model.NewTrial("main")
	trial.ControlValues["greeting"] = "Hi <you>\nthere"
	trial.AddCSS("greeting", "font-family", `"Arial"`)

	got := stepMarkup(exp, trial, []string{"greeting", "answer"})

	assert.Equal(t,
		`<div class="answer">?</div>`+
			`<div class="greeting" style="font-family: &#34;Arial&#34;;">Hi &lt;you&gt;<br/>there</div>`,
		got)
}

func TestDataRows_ResultColumns(t *testing.T) {
	exp := greetingExperiment()
	exp.SaveResults = true
	exp.Trials = nil

	first := model.NewTrial("main")
	first.SaveValues.Set("cond", "a")
	second := model.NewTrial("main")
	second.ControlValues["greeting"] = "Bye"
	second.SaveValues.Set("block", "2")
	second.AddCSS("greeting", "color", "red")
	exp.Trials = append(exp.Trials, first, second)

	doc, sink := document(t, exp)

	assert.False(t, sink.ErrorsFound())
	assert.Equal(t, []string{"stimulus:greeting", "save:cond", "save:block", "format:greeting.color"}, doc.Columns)
	require.Len(t, doc.Rows, 2)
	want := []script.Field{
		{Name: "stim_1", Value: `<div class="greeting" style="color: red;">Bye</div>`},
		{Name: "stimulus:greeting", Value: "Bye"},
		{Name: "save:block", Value: "2"},
		{Name: "format:greeting.color", Value: "red"},
	}
	if diff := cmp.Diff(want, doc.Rows[1].Fields); diff != "" {
		t.Errorf("row mismatch (-want +got):\n%s", diff)
	}
}

func TestDataRows_WithoutResults(t *testing.T) {
	exp := greetingExperiment()
	exp.Trials[0].SaveValues.Set("cond", "a")

	doc, _ := document(t, exp)

	assert.Empty(t, doc.Columns)
	assert.Nil(t, doc.Finish)
	assert.Equal(t, []script.Field{{Name: "stim_1", Value: `<div class="greeting">Hello</div>`}}, doc.Rows[0].Fields)
}

func TestDataRows_UnresolvedTrialType(t *testing.T) {
	exp := greetingExperiment()
	exp.Trials = append(exp.Trials, model.NewTrial("ghost"))

	doc, sink := document(t, exp)

	assert.True(t, sink.Has("TRIAL_TYPE_UNRESOLVED"))
	assert.Len(t, doc.Rows, 1)
}

func TestFlow_StepDescriptors(t *testing.T) {
	exp := greetingExperiment()
	stim := &model.URLParameter{Name: "stim_ms", Default: 500}
	exp.URLParameters.Set("stim_ms", stim)
	exp.TrialTypes.Set("timed", &model.TrialType{Name: "timed", Steps: []*model.TrialStep{
		{Num: 1, ControlNames: []string{"greeting"}, Duration: &model.Numeric{Value: 500, Param: stim}, DelayBefore: model.Numeric{Value: 250}},
		{Num: 2, ControlNames: []string{"greeting"}, ResponseNames: []string{"go"}, DelayAfter: model.Numeric{Value: 0}},
	}})

	doc, _ := document(t, exp)

	require.Len(t, doc.Flow.Branches, 2)
	assert.Equal(t, []script.URLParam{{Name: "stim_ms", Default: 500}}, doc.URLParams)
	want := []script.StepDescriptor{
		{
			Prompt:      script.Prompt{Kind: script.KeyboardStep},
			ID:          "timed.1",
			Stimulus:    "stim_1",
			Duration:    &script.Number{Value: 500, Param: "stim_ms"},
			DelayBefore: &script.Number{Value: 250},
		},
		{
			Prompt:   script.Prompt{Kind: script.KeyboardStep, Choices: []string{"g"}},
			ID:       "timed.2",
			Stimulus: "stim_2",
		},
	}
	if diff := cmp.Diff(want, doc.Flow.Branches[1].Steps); diff != "" {
		t.Errorf("steps mismatch (-want +got):\n%s", diff)
	}
}

func TestPrompt_Buttons(t *testing.T) {
	exp := greetingExperiment()
	exp.Responses.Set("yes", &model.ClickButtonResponse{ID: "yes", Value: "1", Text: "Yes", Frame: &model.Frame{Left: "10%", Top: "80%"}})
	exp.Responses.Set("no", &model.ClickButtonResponse{ID: "no", Value: "0", Text: "No"})

	g := New(diag.NewSink(nil), DefaultOptions())
	p := g.prompt(exp, []string{"yes", "no"}, nil, nil, "STEP_MULTIPLE_RESPONSE_TYPES", "step")

	assert.Equal(t, script.Prompt{
		Kind:    script.ButtonStep,
		Choices: []string{"Yes", "No"},
		ButtonHTML: []string{
			`<button class="jspsych-btn" style="position: absolute; left: 10%; top: 80%;">%choice%</button>`,
			`<button class="jspsych-btn">%choice%</button>`,
		},
	}, p)

	values := responseValues(exp, []string{"yes", "no"}, p)
	assert.Equal(t, []script.Field{{Name: "0", Value: "1"}, {Name: "1", Value: "0"}}, values)
}

func TestInstructionPages(t *testing.T) {
	exp := greetingExperiment()
	exp.Responses.Set("ok", &model.ClickButtonResponse{ID: "ok", Value: "ok", Text: "OK"})
	exp.Instructions = []*model.Instruction{
		{Text: "Welcome\nPress g", ResponseNames: []string{"go"}},
		{Text: "Click", ResponseNames: []string{"ok"}},
		{Text: "Broken", ResponseNames: []string{"go", "ok"}},
	}

	doc, sink := document(t, exp)

	require.Len(t, doc.Instructions, 3)
	assert.Equal(t, "Welcome<br/>Press g", doc.Instructions[0].Stimulus)
	assert.Equal(t, []string{"g"}, doc.Instructions[0].Choices)
	assert.Equal(t, script.ButtonStep, doc.Instructions[1].Kind)
	assert.True(t, doc.Instructions[2].Unresolved)
	assert.True(t, sink.Has("INSTRUCTION_MULTIPLE_RESPONSE_TYPES"))
}

func TestFinishBlock(t *testing.T) {
	exp := greetingExperiment()
	exp.SaveResults = true
	exp.FullScreen = true
	exp.SaveRowsWithoutRT = true
	exp.ResultsFilename = "stroop_${subj_id}_${date}.csv"
	exp.Responses.Set("next", &model.KbResponse{ID: "next", Value: "next", Key: "ArrowRight"})
	exp.Instructions = []*model.Instruction{
		{Text: "One", ResponseNames: []string{"next"}},
		{Text: "Two", ResponseNames: []string{"next"}},
	}
	tt, _ := exp.TrialTypes.Get("main")
	tt.Steps = append(tt.Steps, &model.TrialStep{Num: 2, ControlNames: []string{"greeting"}, ResponseNames: []string{"next", "go"}})

	doc, _ := document(t, exp)

	require.NotNil(t, doc.Finish)
	want := &script.FinishBlock{
		Filename:           "stroop_${subj_id}_${date}.csv",
		InstructionIndices: []int{1, 2},
		KeepRowsWithoutRT:  true,
		ResponseValues: []script.StepValues{
			{StepID: "main.1", Values: []script.Field{{Name: "g", Value: "went"}}},
			{StepID: "main.2", Values: []script.Field{{Name: "arrowright", Value: "next"}, {Name: "g", Value: "went"}}},
		},
	}
	if diff := cmp.Diff(want, doc.Finish); diff != "" {
		t.Errorf("finish mismatch (-want +got):\n%s", diff)
	}
}
