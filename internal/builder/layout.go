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

const cssPrefix = "format:"

var (
	layoutColumns = map[string]struct{}{
		"layout_name": {}, "type": {}, "text": {},
		"left": {}, "x": {}, "top": {}, "y": {}, "width": {}, "height": {},
		"position": {}, "border_color": {},
	}
	positions = map[string]struct{}{
		"static": {}, "relative": {}, "absolute": {}, "fixed": {}, "sticky": {},
	}
)

func (b *Builder) parseLayout(ctx context.Context, exp *model.Experiment) {
	logger := ctxlog.FromContext(ctx)
	t := b.reader.Layout()
	logger.Debug("Parsing layout worksheet.", "rows", len(t.Rows))

	if t.Empty() {
		b.sink.Errorf("NO_CONTROLS", diag.Sheet(t.Name), "the worksheet is empty.")
		return
	}
	if !b.requireColumns(t, "layout items", []string{"layout_name"}, []string{"type"}) {
		return
	}

	for i, col := range t.Columns {
		lower := strings.ToLower(col)
		if _, ok := layoutColumns[lower]; ok || lower == "" || strings.HasPrefix(lower, cssPrefix) {
			continue
		}
		b.sink.Warnf("EXCESSIVE_COLUMN", diag.Column(t.Name, i+1), "the column name %q is invalid and was ignored.", col)
	}

	for _, row := range t.Rows {
		if ctl := b.parseControl(t, row, exp); ctl != nil {
			exp.Layout.Set(ctl.ControlName(), ctl)
		}
	}
	logger.Debug("Layout parsed.", "controls", exp.Layout.Len())
}

func (b *Builder) parseControl(t *worksheet.Table, row *worksheet.Row, exp *model.Experiment) model.Control {
	name := strings.TrimSpace(worksheet.String(row.Get("layout_name")))
	if !identPattern.MatchString(name) {
		b.sink.Errorf("INVALID_CONTROL_NAME", cell(t, row, "layout_name"),
			"layout item name %q is invalid - only letters, digits, and _ are allowed in the name.", name)
		return nil
	}

	var ctl model.Control
	switch kind := strings.ToLower(strings.TrimSpace(worksheet.String(row.Get("type")))); kind {
	case "text":
		ctl = b.parseTextControl(t, row, name)
	default:
		b.sink.Errorf("INVALID_CONTROL_TYPE", cell(t, row, "type"), "type=%q is unknown, only \"text\" is supported", kind)
		return nil
	}

	if _, _, dup := exp.Layout.LookupFold(name); dup {
		b.sink.Errorf("DUPLICATE_CONTROL_NAME", cell(t, row, "layout_name"),
			"a layout item named %q was already defined in a previous line. This line was ignored.", name)
		return nil
	}
	return ctl
}

func (b *Builder) parseTextControl(t *worksheet.Table, row *worksheet.Row, name string) *model.TextControl {
	ctl := &model.TextControl{
		Name: name,
		Text: worksheet.String(row.Get("text")),
		CSS:  model.NewStyle(),
	}
	ctl.Frame = b.parseFrame(t, row)

	if v := row.Get("position"); !worksheet.IsEmpty(v) {
		pos := strings.ToLower(strings.TrimSpace(worksheet.String(v)))
		if _, ok := positions[pos]; ok {
			ctl.Position = pos
		} else {
			b.sink.Errorf("INVALID_POSITION", cell(t, row, "position"),
				"position=%q is invalid, expecting one of static, relative, absolute, fixed or sticky", pos)
		}
	}
	if ctl.Position == "relative" && (strings.HasSuffix(ctl.Frame.Top, "%") || strings.HasSuffix(ctl.Frame.Left, "%")) {
		b.sink.Warnf("POSITION_MISMATCHES_TOP_OR_LEFT", diag.Line(t.Name, row.Line),
			"layout item %q has a relative position with a percentage top/left; the result may not be what you expect", name)
	}

	if v := row.Get("border_color"); !worksheet.IsEmpty(v) {
		color := strings.TrimSpace(worksheet.String(v))
		if cssutil.ValidColor(color) {
			ctl.BorderColor = color
		} else {
			b.sink.Warnf("INVALID_COLOR", cell(t, row, "border_color"), "the color %q is invalid and was ignored", color)
		}
	}

	for i, col := range t.Columns {
		if !strings.HasPrefix(strings.ToLower(col), cssPrefix) {
			continue
		}
		v := row.At(i + 1)
		if worksheet.IsEmpty(v) {
			continue
		}
		attr := strings.ToLower(strings.TrimSpace(col[len(cssPrefix):]))
		value := strings.TrimSpace(worksheet.String(v))
		if !cssutil.ValidDeclaration(attr, value) {
			b.sink.Errorf("INVALID_CSS", diag.Cell(t.Name, i+1, row.Line),
				"the formatting %q: %q is not valid CSS and was ignored", attr, value)
			continue
		}
		ctl.CSS.Set(attr, value)
	}
	return ctl
}

func (b *Builder) parseFrame(t *worksheet.Table, row *worksheet.Row) model.Frame {
	coord := func(names ...string) string {
		return b.parseCoord(row.Get(names...), cell(t, row, names...), names[0])
	}
	return model.Frame{
		Left:   coord("left", "x"),
		Top:    coord("top", "y"),
		Width:  coord("width"),
		Height: coord("height"),
	}
}
