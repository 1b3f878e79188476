package generator

import (
	"html"
	"slices"
	"strings"

	"github.com/vk/expc/internal/model"
	"github.com/vk/expc/internal/script"
)

const defaultWidth = "100%"

// styleBlocks emits the page background and one rule per control.
func styleBlocks(exp *model.Experiment) []script.StyleBlock {
	var blocks []script.StyleBlock
	if exp.BackgroundColor != "" {
		blocks = append(blocks, script.StyleBlock{
			Selector:     "body",
			Declarations: []script.Declaration{{Property: "background-color", Value: exp.BackgroundColor}},
		})
	}
	for _, ctl := range exp.Layout.Values() {
		switch c := ctl.(type) {
		case *model.TextControl:
			blocks = append(blocks, textStyle(c))
		}
	}
	return blocks
}

func textStyle(c *model.TextControl) script.StyleBlock {
	var decls []script.Declaration
	add := func(property, value string) {
		if value != "" {
			decls = append(decls, script.Declaration{Property: property, Value: value})
		}
	}

	position := c.Position
	if position == "" && c.Frame.IsPlaced() {
		position = "absolute"
	}
	add("position", position)
	add("left", c.Frame.Left)
	add("top", c.Frame.Top)
	width := c.Frame.Width
	if width == "" {
		width = defaultWidth
	}
	add("width", width)
	add("height", c.Frame.Height)
	if c.BorderColor != "" {
		add("border", "1px solid "+c.BorderColor)
	}
	for attr, value := range c.CSS.All() {
		add(attr, value)
	}
	return script.StyleBlock{Selector: "." + c.Name, Declarations: decls}
}

// stepMarkup concatenates the markup of the controls shown by a step, in
// name order.
func stepMarkup(exp *model.Experiment, trial *model.Trial, controls []string) string {
	names := slices.Clone(controls)
	slices.Sort(names)

	var b strings.Builder
	for _, name := range names {
		ctl, ok := exp.Layout.Get(name)
		if !ok {
			continue
		}
		b.WriteString(controlMarkup(ctl, trial))
	}
	return b.String()
}

func controlMarkup(ctl model.Control, trial *model.Trial) string {
	switch c := ctl.(type) {
	case *model.TextControl:
		var b strings.Builder
		b.WriteString(`<div class="`)
		b.WriteString(c.Name)
		b.WriteByte('"')
		if style := inlineStyle(trial.CSS[c.Name]); style != "" {
			b.WriteString(` style="`)
			b.WriteString(html.EscapeString(style))
			b.WriteByte('"')
		}
		b.WriteByte('>')
		b.WriteString(textMarkup(controlText(c, trial)))
		b.WriteString("</div>")
		return b.String()
	default:
		return ""
	}
}

// controlText is the value a control shows in a trial.
func controlText(ctl model.Control, trial *model.Trial) string {
	if v, ok := trial.ControlValues[ctl.ControlName()]; ok {
		return v
	}
	if c, ok := ctl.(*model.TextControl); ok {
		return c.Text
	}
	return ""
}

func inlineStyle(style *model.Style) string {
	if style.Len() == 0 {
		return ""
	}
	parts := make([]string, 0, style.Len())
	for attr, value := range style.All() {
		parts = append(parts, attr+": "+value+";")
	}
	return strings.Join(parts, " ")
}

// textMarkup escapes text for HTML and keeps its line breaks.
func textMarkup(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(html.EscapeString(text), "\n", "<br/>")
}
