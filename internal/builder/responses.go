package builder

import (
	"context"
	"strings"

	"github.com/vk/expc/internal/ctxlog"
	"github.com/vk/expc/internal/diag"
	"github.com/vk/expc/internal/model"
	"github.com/vk/expc/internal/worksheet"
)

// namedKeys maps the accepted multi-character key names to the key values
// the runtime compares against.
var namedKeys = map[string]string{
	"space":      " ",
	"enter":      "enter",
	"return":     "enter",
	"escape":     "escape",
	"esc":        "escape",
	"tab":        "tab",
	"backspace":  "backspace",
	"delete":     "delete",
	"insert":     "insert",
	"home":       "home",
	"end":        "end",
	"pageup":     "pageup",
	"pagedown":   "pagedown",
	"shift":      "shift",
	"control":    "control",
	"ctrl":       "control",
	"alt":        "alt",
	"meta":       "meta",
	"capslock":   "capslock",
	"arrowleft":  "arrowleft",
	"arrowright": "arrowright",
	"arrowup":    "arrowup",
	"arrowdown":  "arrowdown",
	"left":       "arrowleft",
	"right":      "arrowright",
	"up":         "arrowup",
	"down":       "arrowdown",
	"f1":         "f1",
	"f2":         "f2",
	"f3":         "f3",
	"f4":         "f4",
	"f5":         "f5",
	"f6":         "f6",
	"f7":         "f7",
	"f8":         "f8",
	"f9":         "f9",
	"f10":        "f10",
	"f11":        "f11",
	"f12":        "f12",
}

func (b *Builder) parseResponses(ctx context.Context, exp *model.Experiment) {
	logger := ctxlog.FromContext(ctx)
	t := b.reader.ResponseModes()
	logger.Debug("Parsing response worksheet.", "rows", len(t.Rows))
	if t.Empty() {
		return
	}
	if !b.requireColumns(t, "responses", []string{"response_name"}, []string{"type"}, []string{"value"}) {
		return
	}

	usedKeys := make(map[string]struct{})
	for _, row := range t.Rows {
		if r := b.parseResponse(t, row, exp, usedKeys); r != nil {
			exp.Responses.Set(r.ResponseID(), r)
		}
	}
	logger.Debug("Responses parsed.", "responses", exp.Responses.Len())
}

func (b *Builder) parseResponse(t *worksheet.Table, row *worksheet.Row, exp *model.Experiment, usedKeys map[string]struct{}) model.Response {
	id := strings.ToLower(strings.TrimSpace(worksheet.String(row.Get("response_name"))))
	if id == "" {
		b.sink.Errorf("MISSING_RESPONSE_ID", cell(t, row, "response_name"), "response name was not specified, please specify it")
	}

	value := worksheet.String(row.Get("value"))
	if worksheet.IsEmpty(row.Get("value")) {
		b.sink.Errorf("MISSING_RESPONSE_VALUE", cell(t, row, "value"), "value is empty, please specify it")
		value = "(value not specified)"
	}

	var resp model.Response
	switch kind := strings.ToLower(strings.TrimSpace(worksheet.String(row.Get("type")))); kind {
	case "key":
		resp = b.parseKeyResponse(t, row, id, value, usedKeys)
	case "button":
		resp = b.parseButtonResponse(t, row, id, value)
	default:
		b.sink.Errorf("INVALID_RESPONSE_TYPE", cell(t, row, "type"), "type=%q is unknown, only \"key\" and \"button\" are supported", kind)
		return nil
	}

	if id == "" {
		return nil
	}
	if _, _, dup := exp.Responses.LookupFold(id); dup {
		b.sink.Errorf("DUPLICATE_RESPONSE_ID", cell(t, row, "response_name"), "response name=%q was defined twice, this is invalid", id)
		return nil
	}
	return resp
}

func (b *Builder) parseKeyResponse(t *worksheet.Table, row *worksheet.Row, id, value string, usedKeys map[string]struct{}) *model.KbResponse {
	resp := &model.KbResponse{ID: id, Value: value}

	if !t.HasColumn("key") {
		if !b.sink.Has("MISSING_KB_RESPONSE_KEY_COL") {
			b.sink.Errorf("MISSING_KB_RESPONSE_KEY_COL", diag.Sheet(t.Name), "column \"key\" was not specified, but it must exist for key responses")
		}
		return resp
	}

	v := row.Get("key")
	if worksheet.IsEmpty(v) {
		b.sink.Errorf("MISSING_KB_RESPONSE_KEY", cell(t, row, "key"), "key was not specified, please specify it")
		return resp
	}

	resp.Key = b.normalizeKey(worksheet.String(v), cell(t, row, "key"))
	dupKey := strings.ToLower(resp.Key)
	if _, dup := usedKeys[dupKey]; dup {
		b.sink.Errorf("DUPLICATE_RESPONSE_KEY", cell(t, row, "key"), "key=%q was used in more than one response", resp.Key)
	} else {
		usedKeys[dupKey] = struct{}{}
	}
	return resp
}

func (b *Builder) normalizeKey(raw string, at *diag.Location) string {
	if len([]rune(raw)) == 1 {
		return raw
	}
	trimmed := strings.TrimSpace(raw)
	if len([]rune(trimmed)) == 1 {
		return trimmed
	}
	if key, ok := namedKeys[strings.ToLower(trimmed)]; ok {
		return key
	}
	b.sink.Warnf("UNKNOWN_KB_RESPONSE_KEY", at, "key=%q is not a known key name; the response may never be accepted", trimmed)
	return trimmed
}

func (b *Builder) parseButtonResponse(t *worksheet.Table, row *worksheet.Row, id, value string) *model.ClickButtonResponse {
	resp := &model.ClickButtonResponse{ID: id, Value: value}

	if !t.HasColumn("text") {
		if !b.sink.Has("MISSING_BUTTON_RESPONSE_TEXT_COL") {
			b.sink.Errorf("MISSING_BUTTON_RESPONSE_TEXT_COL", diag.Sheet(t.Name), "column \"text\" was not specified, but it must exist for button responses")
		}
		resp.Text = "N/A"
	} else if v := row.Get("text"); !worksheet.IsEmpty(v) {
		resp.Text = worksheet.String(v)
	} else {
		resp.Text = value
	}

	if frame := b.parseFrame(t, row); !frame.IsZero() {
		resp.Frame = &frame
	}
	return resp
}
