// Package cssutil validates the colour and CSS values designers type into
// the workbook before they are emitted into the page's style sheet.
package cssutil

import (
	"regexp"
	"strings"

	"github.com/aymerick/douceur/parser"
	"github.com/gorilla/css/scanner"
	"golang.org/x/image/colornames"
)

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidColor reports whether c is a CSS colour keyword or a #rgb/#rrggbb code.
func ValidColor(c string) bool {
	c = strings.TrimSpace(c)
	if c == "" {
		return false
	}
	if hexColor.MatchString(c) {
		return true
	}
	_, ok := colornames.Map[strings.ToLower(c)]
	return ok
}

// ValidProperty reports whether name is syntactically a CSS property name:
// a single identifier token such as "color" or "font-size".
func ValidProperty(name string) bool {
	s := scanner.New(strings.TrimSpace(name))
	tok := s.Next()
	if tok.Type != scanner.TokenIdent {
		return false
	}
	return s.Next().Type == scanner.TokenEOF
}

// ValidDeclaration reports whether "name: value" parses as exactly one CSS
// declaration for that property. Values that could close the page's <style>
// element are rejected.
func ValidDeclaration(name, value string) bool {
	if !ValidProperty(name) || strings.TrimSpace(value) == "" {
		return false
	}
	if strings.ContainsAny(value, ";{}<") {
		return false
	}
	decls, err := parser.ParseDeclarations(strings.TrimSpace(name) + ": " + value + ";")
	if err != nil || len(decls) != 1 {
		return false
	}
	return strings.EqualFold(decls[0].Property, strings.TrimSpace(name))
}
