package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// GreetingWorkbook is a minimal valid YAML workbook: one text control shown
// by one trial type, answered with the "g" key.
const GreetingWorkbook = `general:
  - param: title
    value: Greeting
layout:
  - layout_name: greeting
    type: text
    text: Hello
response:
  - response_name: go
    type: key
    value: went
    key: g
trial_type:
  - type: main
    layout items: greeting
    responses: go
trials:
  - type: main
    greeting: Hi
`

// WarningWorkbook compiles with a single INVALID_GENERAL_PARAM warning.
const WarningWorkbook = `general:
  - param: colour
    value: red
layout:
  - layout_name: greeting
    type: text
    text: Hello
trial_type:
  - type: main
    layout items: greeting
    duration: 1000
trials:
  - type: main
    greeting: Hi
`

// ErrorWorkbook records INVALID_CONTROL_TYPE but still yields a page.
const ErrorWorkbook = `general:
  - param: title
    value: Broken
layout:
  - layout_name: greeting
    type: text
    text: Hello
  - layout_name: blob
    type: hologram
    text: Blob
trial_type:
  - type: main
    layout items: greeting
    duration: 1000
trials:
  - type: main
    greeting: Hi
`

// WriteWorkbook writes a YAML workbook into dir and returns its path.
func WriteWorkbook(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
