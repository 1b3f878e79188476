package diag

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// Entry is a flattened, serializable view of one recorded diagnostic.
type Entry struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Sheet    string `json:"sheet,omitempty"`
	Cell     string `json:"cell,omitempty"`
}

// Sink accumulates diagnostics for a single compilation.
type Sink struct {
	logger        *slog.Logger
	diags         hcl.Diagnostics
	codes         map[string]string
	errorsFound   bool
	warningsFound bool
}

// NewSink creates an empty Sink. Every record is also logged at debug level
// on the given logger; nil disables that.
func NewSink(logger *slog.Logger) *Sink {
	return &Sink{
		logger: logger,
		codes:  make(map[string]string),
	}
}

// Report records a message whose severity is derived from its wording:
// messages starting with "Error" set the error flag, messages starting with
// "Warning" set the warning flag. Anything else is recorded as an error.
func (s *Sink) Report(message, code string) {
	trimmed := strings.ToLower(strings.TrimSpace(message))
	severity := hcl.DiagError
	if strings.HasPrefix(trimmed, "warning") {
		severity = hcl.DiagWarning
	}
	s.add(severity, code, message, nil)
}

// Errorf records an error-level diagnostic.
func (s *Sink) Errorf(code string, at *Location, format string, args ...any) {
	s.add(hcl.DiagError, code, compose("Error", at, format, args...), at)
}

// Warnf records a warning-level diagnostic.
func (s *Sink) Warnf(code string, at *Location, format string, args ...any) {
	s.add(hcl.DiagWarning, code, compose("Warning", at, format, args...), at)
}

func compose(prefix string, at *Location, format string, args ...any) string {
	detail := fmt.Sprintf(format, args...)
	if where := at.String(); where != "" {
		return fmt.Sprintf("%s in %s: %s", prefix, where, detail)
	}
	return prefix + ": " + detail
}

func (s *Sink) add(severity hcl.DiagnosticSeverity, code, message string, at *Location) {
	s.diags = append(s.diags, &hcl.Diagnostic{
		Severity: severity,
		Summary:  code,
		Detail:   message,
		Subject:  at.hclRange(),
	})
	s.codes[code] = message

	if severity == hcl.DiagError {
		s.errorsFound = true
	} else {
		s.warningsFound = true
	}

	if s.logger != nil {
		s.logger.Debug("Diagnostic recorded.", "code", code, "severity", severityName(severity), "message", message)
	}
}

// ErrorsFound reports whether any error-level diagnostic was recorded.
func (s *Sink) ErrorsFound() bool { return s.errorsFound }

// WarningsFound reports whether any warning-level diagnostic was recorded.
func (s *Sink) WarningsFound() bool { return s.warningsFound }

// Has reports whether a diagnostic with the given code was recorded.
func (s *Sink) Has(code string) bool {
	_, ok := s.codes[code]
	return ok
}

// ErrCodes returns a copy of the code -> last message mapping.
func (s *Sink) ErrCodes() map[string]string {
	out := make(map[string]string, len(s.codes))
	for k, v := range s.codes {
		out[k] = v
	}
	return out
}

// Diagnostics returns the recorded diagnostics in the order they were added.
func (s *Sink) Diagnostics() hcl.Diagnostics {
	return append(hcl.Diagnostics(nil), s.diags...)
}

// Entries returns the recorded diagnostics as flat values.
func (s *Sink) Entries() []Entry {
	entries := make([]Entry, 0, len(s.diags))
	for _, d := range s.diags {
		e := Entry{
			Severity: severityName(d.Severity),
			Code:     d.Summary,
			Message:  d.Detail,
		}
		if d.Subject != nil {
			e.Sheet = d.Subject.Filename
			if d.Subject.Start.Column > 0 && d.Subject.Start.Line > 0 {
				e.Cell = fmt.Sprintf("%s%d", ColumnLetter(d.Subject.Start.Column), d.Subject.Start.Line)
			}
		}
		entries = append(entries, e)
	}
	return entries
}

// WriteText renders all diagnostics in HCL's human-readable format.
func (s *Sink) WriteText(w io.Writer, width uint) error {
	if len(s.diags) == 0 {
		return nil
	}
	writer := hcl.NewDiagnosticTextWriter(w, nil, width, false)
	return writer.WriteDiagnostics(s.diags)
}

func severityName(severity hcl.DiagnosticSeverity) string {
	if severity == hcl.DiagWarning {
		return "warning"
	}
	return "error"
}
