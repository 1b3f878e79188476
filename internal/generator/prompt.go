package generator

import (
	"html"
	"strconv"
	"strings"

	"github.com/vk/expc/internal/diag"
	"github.com/vk/expc/internal/model"
	"github.com/vk/expc/internal/script"
)

// responseKind infers the presentation kind of a page from its responses.
// A page without responses takes the kind implied by its controls. ok is
// false when the responses mix kinds.
func responseKind(exp *model.Experiment, responses []model.Response, controls []string) (model.ResponseKind, bool) {
	if len(responses) == 0 {
		return controlsKind(exp, controls), true
	}
	kind := responses[0].Kind()
	for _, r := range responses[1:] {
		if r.Kind() != kind {
			return kind, false
		}
	}
	return kind, true
}

// controlsKind is the response kind a set of controls implies. Text controls
// take keyboard input.
func controlsKind(exp *model.Experiment, controls []string) model.ResponseKind {
	for _, name := range controls {
		ctl, _ := exp.Layout.Get(name)
		switch ctl.(type) {
		case *model.TextControl:
			return model.KindKeyboard
		}
	}
	return model.KindKeyboard
}

// prompt builds the choice list of a page. Mixed response kinds are recorded
// under code and yield an unresolved prompt with no choices.
func (g *Generator) prompt(exp *model.Experiment, responseNames, controls []string, at *diag.Location, code, page string) script.Prompt {
	responses := exp.ResponsesFor(responseNames)
	kind, ok := responseKind(exp, responses, controls)
	if !ok {
		g.sink.Errorf(code, at,
			"%s accepts responses of several types (%s); all responses of one screen must be of the same type. The screen will accept no response.",
			page, strings.Join(responseNames, ","))
		return script.Prompt{Kind: script.KeyboardStep, Unresolved: true}
	}

	if kind == model.KindButton {
		return buttonPrompt(responses)
	}
	p := script.Prompt{Kind: script.KeyboardStep}
	for _, r := range responses {
		p.Choices = append(p.Choices, r.(*model.KbResponse).Key)
	}
	return p
}

func buttonPrompt(responses []model.Response) script.Prompt {
	p := script.Prompt{Kind: script.ButtonStep}
	placed := false
	for _, r := range responses {
		b := r.(*model.ClickButtonResponse)
		p.Choices = append(p.Choices, b.Text)
		if b.Frame != nil && !b.Frame.IsZero() {
			placed = true
		}
	}
	if placed {
		for _, r := range responses {
			p.ButtonHTML = append(p.ButtonHTML, buttonHTML(r.(*model.ClickButtonResponse).Frame))
		}
	}
	return p
}

func buttonHTML(frame *model.Frame) string {
	if frame == nil || frame.IsZero() {
		return `<button class="jspsych-btn">%choice%</button>`
	}
	var decls []string
	add := func(property, value string) {
		if value != "" {
			decls = append(decls, property+": "+value+";")
		}
	}
	if frame.IsPlaced() {
		add("position", "absolute")
	}
	add("left", frame.Left)
	add("top", frame.Top)
	add("width", frame.Width)
	add("height", frame.Height)
	return `<button class="jspsych-btn" style="` + html.EscapeString(strings.Join(decls, " ")) + `">%choice%</button>`
}

// responseValues maps what jsPsych records for each response of a prompt
// to the response's declared value: the lower-cased key for keyboard pages,
// the button index for button pages.
func responseValues(exp *model.Experiment, responseNames []string, p script.Prompt) []script.Field {
	if p.Unresolved {
		return nil
	}
	var fields []script.Field
	for i, r := range exp.ResponsesFor(responseNames) {
		switch resp := r.(type) {
		case *model.KbResponse:
			fields = append(fields, script.Field{Name: strings.ToLower(resp.Key), Value: resp.Value})
		case *model.ClickButtonResponse:
			fields = append(fields, script.Field{Name: strconv.Itoa(i), Value: resp.Value})
		}
	}
	return fields
}
