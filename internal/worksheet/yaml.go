package worksheet

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// yamlSource reads a workbook written as a YAML document: a mapping from
// worksheet name to a list of rows, each row a mapping from column name to
// cell. Columns are ordered by first appearance across the rows.
//
//	layout:
//	  - layout_name: greeting
//	    type: text
//	    text: Hello
type yamlSource struct {
	names  []string
	sheets map[string]*Table
}

// OpenYAML reads a YAML workbook from disk.
func OpenYAML(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook %s: %w", path, err)
	}
	src, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse workbook %s: %w", path, err)
	}
	return src, nil
}

// ParseYAML parses a YAML workbook document.
func ParseYAML(data []byte) (Source, error) {
	src := &yamlSource{sheets: make(map[string]*Table)}

	var doc yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return src, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: workbook must be a mapping of worksheet names", root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		table, err := yamlTable(name, root.Content[i+1])
		if err != nil {
			return nil, err
		}
		src.names = append(src.names, name)
		src.sheets[name] = table
	}
	return src, nil
}

func yamlTable(name string, node *yaml.Node) (*Table, error) {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return NewTable(name, nil), nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: worksheet %q must be a list of rows", node.Line, name)
	}

	var columns []string
	position := make(map[string]int)
	for _, row := range node.Content {
		if row.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: rows of worksheet %q must be mappings", row.Line, name)
		}
		for i := 0; i+1 < len(row.Content); i += 2 {
			col := row.Content[i].Value
			if _, ok := position[col]; !ok {
				position[col] = len(columns)
				columns = append(columns, col)
			}
		}
	}

	table := NewTable(name, columns)
	for r, row := range node.Content {
		cells := make([]cty.Value, len(columns))
		for i := range cells {
			cells[i] = Null()
		}
		for i := 0; i+1 < len(row.Content); i += 2 {
			cell, err := yamlCell(row.Content[i+1])
			if err != nil {
				return nil, fmt.Errorf("worksheet %q: %w", name, err)
			}
			cells[position[row.Content[i].Value]] = cell
		}
		table.AddRow(r+2, cells)
	}
	return table, nil
}

func yamlCell(node *yaml.Node) (cty.Value, error) {
	if node.Kind != yaml.ScalarNode {
		return cty.NilVal, fmt.Errorf("line %d: cells must be scalar values", node.Line)
	}
	switch node.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		b, err := strconv.ParseBool(node.Value)
		if err != nil {
			return cty.StringVal(node.Value), nil
		}
		return cty.BoolVal(b), nil
	case "!!int", "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return cty.NilVal, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return cty.NumberFloatVal(f), nil
	default:
		return cty.StringVal(node.Value), nil
	}
}

func (s *yamlSource) SheetNames() []string { return append([]string(nil), s.names...) }

func (s *yamlSource) Sheet(name string) (*Table, error) {
	t, ok := s.sheets[name]
	if !ok {
		return nil, fmt.Errorf("worksheet %q not found", name)
	}
	return t, nil
}

func (s *yamlSource) Close() error { return nil }
