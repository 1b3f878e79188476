package builder

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/vk/expc/internal/diag"
	"github.com/vk/expc/internal/model"
	"github.com/vk/expc/internal/worksheet"
	"github.com/zclconf/go-cty/cty"
)

const validCoordHint = `expecting a coordinate (a number followed by "px" or "%", or a percentage cell)`

var (
	coordPattern    = regexp.MustCompile(`^(-?\d+(\.\d+)?)(\s*)((px)|%)$`)
	identPattern    = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	urlParamPattern = regexp.MustCompile(`(?i)^param:\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*=\s*(.*)$`)
)

// parseBool interprets a cell of the boolean vocabulary. A null cell yields
// the default silently; any other unrecognized value is an error.
func (b *Builder) parseBool(v cty.Value, at *diag.Location, param string, def bool) bool {
	if v.IsNull() {
		return def
	}
	switch strings.ToUpper(strings.TrimSpace(worksheet.String(v))) {
	case "Y", "YES", "T", "TRUE", "1":
		return true
	case "N", "NO", "F", "FALSE", "0":
		return false
	}
	b.sink.Errorf("INVALID_BOOL_PARAM", at,
		"the value of parameter %q is %q; this is invalid and was ignored. Please specify either \"Y\" or \"N\"",
		param, worksheet.String(v))
	return def
}

// parseCoord interprets a Frame coordinate. An empty cell is unset and
// returns "". Numbers in [-1,1] are percentages.
func (b *Builder) parseCoord(v cty.Value, at *diag.Location, column string) string {
	if worksheet.IsEmpty(v) {
		return ""
	}

	if worksheet.IsNumber(v) {
		f, _ := worksheet.Number(v)
		switch {
		case f == 0:
			return "0px"
		case f >= -1 && f <= 1:
			return formatPercent(f)
		}
	} else if s := strings.TrimSpace(worksheet.String(v)); coordPattern.MatchString(s) {
		return s
	}

	b.sink.Errorf("INVALID_COORD", at, "the value %q (column %q) is invalid, %s", worksheet.String(v), column, validCoordHint)
	return ""
}

func formatPercent(f float64) string {
	pct := f * 100
	if r := math.Round(pct); math.Abs(pct-r) < 1e-9 {
		return fmt.Sprintf("%d%%", int(r))
	}
	return fmt.Sprintf("%.2f%%", pct)
}

// parseNumeric interprets a duration or delay cell. It returns nil for an
// empty cell and for invalid values (after recording the problem).
func (b *Builder) parseNumeric(exp *model.Experiment, v cty.Value, at *diag.Location, column string, zeroAllowed bool) *model.Numeric {
	if worksheet.IsEmpty(v) {
		return nil
	}

	var (
		param *model.URLParameter
		value float64
	)
	if m := urlParamPattern.FindStringSubmatch(strings.TrimSpace(worksheet.String(v))); !worksheet.IsNumber(v) && m != nil {
		def, err := strconv.ParseFloat(strings.TrimSpace(m[2]), 64)
		if err != nil || !worksheet.Finite(def) {
			b.sink.Errorf("INVALID_URL_PARAMETER", at,
				"the value %q (column %q) is invalid: the default value of URL parameter %q must be a number",
				worksheet.String(v), column, m[1])
			return nil
		}
		value = def
		param = &model.URLParameter{Name: m[1], Default: def}
	} else if strings.HasPrefix(strings.ToLower(strings.TrimSpace(worksheet.String(v))), "param:") {
		b.sink.Errorf("INVALID_URL_PARAMETER", at,
			"the value %q (column %q) is invalid: use param:NAME=DEFAULT, where NAME contains only letters, digits and _",
			worksheet.String(v), column)
		return nil
	} else {
		f, ok := worksheet.Number(v)
		if !ok {
			b.sink.Errorf("NON_NUMERIC_VALUE", at, "the value %q (column %q) is invalid, expecting a %s number",
				worksheet.String(v), column, sign(zeroAllowed))
			return nil
		}
		value = f
	}

	if value < 0 || (!zeroAllowed && value == 0) {
		op := ">"
		if zeroAllowed {
			op = ">="
		}
		b.sink.Errorf("INVALID_NUMERIC_VALUE", at, "the value %q (column %q) is invalid, only values %s 0 are allowed",
			worksheet.String(v), column, op)
		return nil
	}

	if param != nil {
		param = b.registerURLParameter(exp, param, at)
		value = param.Default
	}
	return &model.Numeric{Value: value, Param: param}
}

func sign(zeroAllowed bool) string {
	if zeroAllowed {
		return "non-negative"
	}
	return "positive"
}

// registerURLParameter returns the experiment's declaration of the
// parameter, adding it on first use.
func (b *Builder) registerURLParameter(exp *model.Experiment, p *model.URLParameter, at *diag.Location) *model.URLParameter {
	existing, ok := exp.URLParameters.Get(p.Name)
	if !ok {
		exp.URLParameters.Set(p.Name, p)
		return p
	}
	if existing.Default != p.Default {
		b.sink.Errorf("URL_PARAMETER_CONFLICT", at,
			"URL parameter %q was already declared with default value %s; the value %s was ignored",
			p.Name, model.Numeric{Value: existing.Default}, model.Numeric{Value: p.Default})
	}
	return existing
}

// splitNames splits a comma-separated list cell, trimming blanks.
func splitNames(v cty.Value) []string {
	if worksheet.IsEmpty(v) {
		return nil
	}
	var names []string
	for _, part := range strings.Split(worksheet.String(v), ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names
}

// dedupe removes repeated names, keeping first occurrences, and reports
// whether anything was removed.
func dedupe(names []string, fold bool) ([]string, bool) {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		key := n
		if fold {
			key = strings.ToLower(n)
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, n)
	}
	return out, len(out) != len(names)
}
