package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSettings(t *testing.T) {
	src := `
instructions_mandatory = true
local_imports          = false
jspsych_version        = "7.3.1"
plugin_version         = "1.1.2"
local_path             = "vendor/jspsych"
cdn_base               = "https://cdn.jsdelivr.net/npm"
`
	s, err := ParseSettings([]byte(src), "expc.hcl")
	require.NoError(t, err)

	require.NotNil(t, s.InstructionsMandatory)
	assert.True(t, *s.InstructionsMandatory)
	require.NotNil(t, s.LocalImports)
	assert.False(t, *s.LocalImports)
	assert.Equal(t, "7.3.1", s.JSPsychVersion)
	assert.Equal(t, "1.1.2", s.PluginVersion)
	assert.Equal(t, "vendor/jspsych", s.LocalPath)
	assert.Equal(t, "https://cdn.jsdelivr.net/npm", s.CDNBase)
}

func TestParseSettings_Empty(t *testing.T) {
	s, err := ParseSettings(nil, "expc.hcl")
	require.NoError(t, err)
	assert.Nil(t, s.InstructionsMandatory)
	assert.Nil(t, s.LocalImports)
	assert.Empty(t, s.JSPsychVersion)
}

func TestParseSettings_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		wantErr string
	}{
		{name: "syntax", src: `local_imports = `, wantErr: "failed to parse settings file"},
		{name: "unknown attribute", src: `colour = "red"`, wantErr: "failed to decode settings file"},
		{name: "wrong type", src: `local_imports = "maybe"`, wantErr: "failed to decode settings file"},
		{name: "cdn scheme", src: `cdn_base = "ftp://example.org"`, wantErr: "cdn_base"},
		{name: "version", src: `jspsych_version = "jspsych@7"`, wantErr: "jspsych_version"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSettings([]byte(tc.src), "expc.hcl")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(`local_imports = true`), 0o644))

	s, err := LoadSettings(context.Background(), path)
	require.NoError(t, err)
	require.NotNil(t, s.LocalImports)
	assert.True(t, *s.LocalImports)

	_, err = LoadSettings(context.Background(), filepath.Join(dir, "missing.hcl"))
	assert.Error(t, err)
}

func TestLocate(t *testing.T) {
	dir := t.TempDir()
	workbook := filepath.Join(dir, "exp.xlsx")
	require.NoError(t, os.WriteFile(workbook, []byte("x"), 0o644))

	_, ok, err := Locate("", workbook)
	require.NoError(t, err)
	assert.False(t, ok, "no settings file yet")

	settings := filepath.Join(dir, DefaultFileName)
	require.NoError(t, os.WriteFile(settings, nil, 0o644))

	path, ok, err := Locate("", workbook)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, settings, path)

	path, ok, err = Locate("", dir)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, settings, path)

	path, ok, err = Locate("other.hcl", workbook)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "other.hcl", path)

	_, _, err = Locate("", filepath.Join(dir, "missing.xlsx"))
	assert.Error(t, err)
}
