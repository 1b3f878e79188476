package script

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strings"
	"text/template"
)

//go:embed skeleton.html.tmpl
var skeletonText string

var skeleton = template.Must(template.New("skeleton").Funcs(template.FuncMap{
	"literal": Literal,
	"number":  formatFloat,
	"escape":  html.EscapeString,
}).Parse(skeletonText))

// ErrNilDocument is returned by Render when there is nothing to render.
var ErrNilDocument = errors.New("nil document")

// Render serializes the document into the page text.
func Render(doc *Document) (string, error) {
	if doc == nil {
		return "", ErrNilDocument
	}
	var buf bytes.Buffer
	if err := skeleton.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("failed to render script: %w", err)
	}
	return buf.String(), nil
}

// Literal encodes v as a JavaScript literal that is safe inside a <script>
// element.
func Literal(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "null"
	}
	out := strings.TrimSuffix(buf.String(), "\n")
	return strings.ReplaceAll(out, "</", `<\/`)
}
