package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse([]string{
		"-o", "page.html",
		"-settings", "custom.hcl",
		"-force",
		"-local-imports",
		"-instructions-mandatory=false",
		"-log-level", "DEBUG",
		"-log-format", "json",
		"-log-file", "expc.log",
		"exp.xlsx",
	}, out)
	require.NoError(t, err)
	require.False(t, shouldExit)

	assert.Equal(t, "exp.xlsx", cfg.SourcePath)
	assert.Equal(t, "page.html", cfg.OutPath)
	assert.Equal(t, "custom.hcl", cfg.SettingsPath)
	assert.True(t, cfg.Force)
	require.NotNil(t, cfg.LocalImports)
	assert.True(t, *cfg.LocalImports)
	require.NotNil(t, cfg.InstructionsMandatory)
	assert.False(t, *cfg.InstructionsMandatory)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "expc.log", cfg.LogFile)
	assert.Empty(t, out.String())
}

func TestParse_Defaults(t *testing.T) {
	cfg, shouldExit, err := Parse([]string{"exp.yaml"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, shouldExit)

	assert.Empty(t, cfg.OutPath)
	assert.False(t, cfg.Force)
	assert.Nil(t, cfg.LocalImports, "unset flags must not override settings")
	assert.Nil(t, cfg.InstructionsMandatory)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestParse_OutLongFormWins(t *testing.T) {
	cfg, _, err := Parse([]string{"-out", "a.html", "-o", "b.html", "exp.yaml"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "a.html", cfg.OutPath)
}

func TestParse_ShouldExit(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{name: "help", args: []string{"-h"}},
		{name: "no source", args: []string{"-force"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			cfg, shouldExit, err := Parse(tc.args, out)
			require.NoError(t, err)
			assert.True(t, shouldExit)
			assert.Nil(t, cfg)
			assert.Contains(t, out.String(), "Usage:")
		})
	}
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{name: "unknown flag", args: []string{"-nope", "exp.xlsx"}, wantMsg: "flag provided but not defined: -nope"},
		{name: "bad bool", args: []string{"-local-imports=maybe", "exp.xlsx"}, wantMsg: "local-imports"},
		{name: "bad log format", args: []string{"-log-format", "xml", "exp.xlsx"}, wantMsg: "invalid log-format"},
		{name: "bad log level", args: []string{"-log-level", "loud", "exp.xlsx"}, wantMsg: "invalid log-level"},
		{name: "two sources", args: []string{"a.xlsx", "b.xlsx"}, wantMsg: "expected one SOURCE"},
		{name: "serve and out", args: []string{"-serve", "localhost:8080", "-o", "x.html", "exp.xlsx"}, wantMsg: "preview"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse(tc.args, &bytes.Buffer{})
			require.Error(t, err)

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 1, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.wantMsg)
		})
	}
}
