package builder

import (
	"context"
	"regexp"
	"strings"

	"github.com/vk/expc/internal/cssutil"
	"github.com/vk/expc/internal/ctxlog"
	"github.com/vk/expc/internal/diag"
	"github.com/vk/expc/internal/model"
	"github.com/vk/expc/internal/worksheet"
	"github.com/zclconf/go-cty/cty"
)

var filenamePrefixPattern = regexp.MustCompile(`^[a-zA-Z0-9_&$#-]+$`)

var generalParams = map[string]struct{}{
	"title":                   {},
	"get_subj_id":             {},
	"get_session_id":          {},
	"save_results":            {},
	"full_screen":             {},
	"start_beep":              {},
	"save_rows_without_rt":    {},
	"results_filename_prefix": {},
	"background_color":        {},
}

type generalParam struct {
	value cty.Value
	at    *diag.Location
}

func (b *Builder) parseGeneral(ctx context.Context, exp *model.Experiment) {
	logger := ctxlog.FromContext(ctx)
	t := b.reader.GeneralConfig()
	logger.Debug("Parsing general worksheet.", "rows", len(t.Rows))
	exp.ResultsFilename = resultsFilename("", false, false)
	if t.Empty() {
		b.sink.Errorf("NO_GENERAL_PARAMS", diag.Sheet(t.Name), "the worksheet is empty.")
		return
	}
	if !b.requireColumns(t, "parameters", []string{"param"}, []string{"value"}) {
		return
	}

	params := make(map[string]generalParam)
	for _, row := range t.Rows {
		name := strings.ToLower(strings.TrimSpace(worksheet.String(row.Get("param"))))
		if name == "" {
			continue
		}
		if _, known := generalParams[name]; !known {
			b.sink.Warnf("INVALID_GENERAL_PARAM", cell(t, row, "param"), "the parameter %q is unknown and was ignored", name)
			continue
		}
		if _, dup := params[name]; dup {
			b.sink.Errorf("MULTIPLE_PARAM_VALUES", cell(t, row, "param"),
				"the parameter %q can only appear once but it appears 2 or more times", name)
			continue
		}
		params[name] = generalParam{value: row.Get("value"), at: cell(t, row, "value")}
	}

	boolParam := func(name string) bool {
		p, ok := params[name]
		if !ok {
			return false
		}
		return b.parseBool(p.value, p.at, name, false)
	}

	exp.GetSubjectID = boolParam("get_subj_id")
	exp.GetSessionID = boolParam("get_session_id")
	exp.SaveResults = boolParam("save_results")
	exp.FullScreen = boolParam("full_screen")
	exp.StartBeep = boolParam("start_beep")
	exp.SaveRowsWithoutRT = boolParam("save_rows_without_rt")

	if p, ok := params["title"]; ok {
		exp.Title = worksheet.String(p.value)
	}

	if p, ok := params["background_color"]; ok && !worksheet.IsEmpty(p.value) {
		color := strings.TrimSpace(worksheet.String(p.value))
		if cssutil.ValidColor(color) {
			exp.BackgroundColor = color
		} else {
			b.sink.Warnf("INVALID_COLOR", p.at, "the color %q of parameter \"background_color\" is invalid and was ignored", color)
		}
	}

	prefix := ""
	if p, ok := params["results_filename_prefix"]; ok {
		prefix = strings.TrimSpace(worksheet.String(p.value))
		if prefix != "" && !filenamePrefixPattern.MatchString(prefix) {
			b.sink.Errorf("INVALID_FILENAME_PREFIX", p.at,
				"invalid \"results_filename_prefix\" (%s) - it can contain only letters, digits, or the characters -,_,&,#,$", prefix)
			prefix = ""
		}
	}
	exp.ResultsFilename = resultsFilename(prefix, exp.GetSubjectID, exp.GetSessionID)
}

// resultsFilename builds the template the page resolves at runtime.
func resultsFilename(prefix string, withSubject, withSession bool) string {
	if prefix == "" {
		prefix = model.DefaultResultsPrefix
	}
	name := prefix
	if withSubject {
		name += "_${subj_id}"
	}
	if withSession {
		name += "_${session_id}"
	}
	return name + "_${date}.csv"
}
