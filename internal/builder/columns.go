package builder

import (
	"regexp"
	"strings"
)

// columnKind classifies a header of the trials worksheet.
type columnKind int

const (
	columnIgnored columnKind = iota
	columnType
	columnSave
	columnFormat
	columnControl
	columnInvalidSave
	columnInvalidFormat
)

// trialColumn is a parsed trials-worksheet header.
type trialColumn struct {
	Kind    columnKind
	Index   int // 1-based
	Header  string
	Name    string // save: output column, or control name for format:/control columns
	CSSAttr string
}

var formatColumnPattern = regexp.MustCompile(`(?i)^format:([^.]+)\.(.+)$`)

// parseTrialColumn classifies a header syntactically. Control references are
// resolved by the caller.
func parseTrialColumn(index int, header string) trialColumn {
	col := trialColumn{Index: index, Header: header}
	lower := strings.ToLower(strings.TrimSpace(header))

	switch {
	case lower == "":
		col.Kind = columnIgnored
	case lower == "type":
		col.Kind = columnType
	case strings.HasPrefix(lower, "save:"):
		col.Name = strings.TrimSpace(header[len("save:"):])
		if col.Name == "" {
			col.Kind = columnInvalidSave
		} else {
			col.Kind = columnSave
		}
	case strings.HasPrefix(lower, cssPrefix):
		m := formatColumnPattern.FindStringSubmatch(strings.TrimSpace(header))
		if m == nil || strings.TrimSpace(m[1]) == "" || strings.TrimSpace(m[2]) == "" {
			col.Kind = columnInvalidFormat
			return col
		}
		col.Kind = columnFormat
		col.Name = strings.TrimSpace(m[1])
		col.CSSAttr = strings.ToLower(strings.TrimSpace(m[2]))
	default:
		col.Kind = columnControl
		col.Name = strings.TrimSpace(header)
	}
	return col
}
