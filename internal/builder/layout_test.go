package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/expc/internal/model"
	"github.com/vk/expc/internal/worksheet"
)

func TestParseLayout_Coordinates(t *testing.T) {
	testCases := []struct {
		name      string
		value     any
		want      string
		wantError bool
	}{
		{name: "zero", value: 0, want: "0px"},
		{name: "half", value: 0.5, want: "50%"},
		{name: "whole", value: 1, want: "100%"},
		{name: "negative", value: -0.25, want: "-25%"},
		{name: "fraction with decimals", value: 0.123, want: "12.30%"},
		{name: "float noise", value: 0.29, want: "29%"},
		{name: "pixels", value: "20px", want: "20px"},
		{name: "percent with space", value: "15 %", want: "15 %"},
		{name: "decimal pixels", value: "12.5px", want: "12.5px"},
		{name: "unset", value: nil, want: ""},
		{name: "large number", value: 5000, wantError: true},
		{name: "number as text", value: "5000", wantError: true},
		{name: "garbage", value: "left side", wantError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := baseline()
			f.layout = worksheet.MustTable("layout", []string{"layout_name", "type", "text", "left"},
				[]any{"greeting", "text", "Hello", tc.value},
			)

			exp, sink := f.build(t, Options{})

			assert.Equal(t, tc.wantError, sink.Has("INVALID_COORD"), "%v", sink.ErrCodes())
			ctl, ok := exp.Layout.Get("greeting")
			require.True(t, ok)
			assert.Equal(t, tc.want, ctl.(*model.TextControl).Frame.Left)
		})
	}
}

func TestParseLayout_FrameAliases(t *testing.T) {
	f := baseline()
	f.layout = worksheet.MustTable("layout", []string{"layout_name", "type", "text", "x", "y", "width", "height"},
		[]any{"greeting", "text", "Hello", 0.1, "30px", 0.5, nil},
	)

	exp, sink := f.build(t, Options{})

	assert.False(t, sink.ErrorsFound(), "%v", sink.ErrCodes())
	ctl, _ := exp.Layout.Get("greeting")
	assert.Equal(t, model.Frame{Left: "10%", Top: "30px", Width: "50%"}, ctl.(*model.TextControl).Frame)
}

func TestParseLayout_Formatting(t *testing.T) {
	f := baseline()
	f.layout = worksheet.MustTable("layout",
		[]string{"layout_name", "type", "text", "position", "border_color", "format:color", "format:Font-Size"},
		[]any{"greeting", "text", "Hello", "Absolute", "navy", "red", "20px"},
	)

	exp, sink := f.build(t, Options{})

	assert.False(t, sink.ErrorsFound(), "%v", sink.ErrCodes())
	ctl, _ := exp.Layout.Get("greeting")
	text := ctl.(*model.TextControl)
	assert.Equal(t, "absolute", text.Position)
	assert.Equal(t, "navy", text.BorderColor)
	assert.Equal(t, []string{"color", "font-size"}, text.CSS.Keys())
	v, _ := text.CSS.Get("font-size")
	assert.Equal(t, "20px", v)
}

func TestParseLayout_UnsafeStyleValuesIgnored(t *testing.T) {
	f := baseline()
	f.layout = worksheet.MustTable("layout",
		[]string{"layout_name", "type", "text", "border_color", "format:font-family"},
		[]any{"greeting", "text", "Hello", "navy</style>", "serif</style><script>alert(1)</script>"},
	)

	exp, sink := f.build(t, Options{})

	assert.True(t, sink.Has("INVALID_COLOR"))
	assert.True(t, sink.Has("INVALID_CSS"))
	ctl, _ := exp.Layout.Get("greeting")
	text := ctl.(*model.TextControl)
	assert.Empty(t, text.BorderColor)
	assert.Zero(t, text.CSS.Len())
}

func TestParseLayout_Diagnostics(t *testing.T) {
	testCases := []struct {
		name         string
		columns      []string
		rows         [][]any
		wantCode     string
		wantWarning  bool
		wantControls []string
	}{
		{
			name:     "empty worksheet",
			columns:  []string{"layout_name", "type", "text"},
			wantCode: "NO_CONTROLS",
		},
		{
			name:     "missing type column",
			columns:  []string{"layout_name", "text"},
			rows:     [][]any{{"greeting", "Hello"}},
			wantCode: "MISSING_COL",
		},
		{
			name:         "invalid name",
			columns:      []string{"layout_name", "type", "text"},
			rows:         [][]any{{"greeting", "text", "Hello"}, {"two words", "text", "x"}},
			wantCode:     "INVALID_CONTROL_NAME",
			wantControls: []string{"greeting"},
		},
		{
			name:         "unsupported type",
			columns:      []string{"layout_name", "type", "text"},
			rows:         [][]any{{"greeting", "text", "Hello"}, {"pic", "image", "a.png"}},
			wantCode:     "INVALID_CONTROL_TYPE",
			wantControls: []string{"greeting"},
		},
		{
			name:         "duplicate name ignoring case",
			columns:      []string{"layout_name", "type", "text"},
			rows:         [][]any{{"greeting", "text", "Hello"}, {"Greeting", "text", "Again"}},
			wantCode:     "DUPLICATE_CONTROL_NAME",
			wantControls: []string{"greeting"},
		},
		{
			name:         "unknown column",
			columns:      []string{"layout_name", "type", "text", "colour"},
			rows:         [][]any{{"greeting", "text", "Hello", "red"}},
			wantCode:     "EXCESSIVE_COLUMN",
			wantWarning:  true,
			wantControls: []string{"greeting"},
		},
		{
			name:         "invalid position",
			columns:      []string{"layout_name", "type", "text", "position"},
			rows:         [][]any{{"greeting", "text", "Hello", "floating"}},
			wantCode:     "INVALID_POSITION",
			wantControls: []string{"greeting"},
		},
		{
			name:         "relative position with percent",
			columns:      []string{"layout_name", "type", "text", "position", "top"},
			rows:         [][]any{{"greeting", "text", "Hello", "relative", 0.5}},
			wantCode:     "POSITION_MISMATCHES_TOP_OR_LEFT",
			wantWarning:  true,
			wantControls: []string{"greeting"},
		},
		{
			name:         "invalid border color",
			columns:      []string{"layout_name", "type", "text", "border_color"},
			rows:         [][]any{{"greeting", "text", "Hello", "not-a-colour"}},
			wantCode:     "INVALID_COLOR",
			wantWarning:  true,
			wantControls: []string{"greeting"},
		},
		{
			name:         "invalid css",
			columns:      []string{"layout_name", "type", "text", "format:color"},
			rows:         [][]any{{"greeting", "text", "Hello", "red; display: none"}},
			wantCode:     "INVALID_CSS",
			wantControls: []string{"greeting"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := baseline()
			f.layout = worksheet.MustTable("layout", tc.columns, tc.rows...)

			exp, sink := f.build(t, Options{})

			assert.True(t, sink.Has(tc.wantCode), "%v", sink.ErrCodes())
			if tc.wantWarning {
				assert.False(t, sink.ErrorsFound(), "%v", sink.ErrCodes())
				assert.True(t, sink.WarningsFound())
			} else {
				assert.True(t, sink.ErrorsFound())
			}
			assert.Equal(t, tc.wantControls, exp.Layout.Keys())
		})
	}
}
