package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/expc/internal/app"
	"github.com/vk/expc/internal/cli"
	"github.com/vk/expc/internal/testutil"
)

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	require.NoError(t, run(out, &bytes.Buffer{}, []string{"-h"}))
	assert.Contains(t, out.String(), "expc [options] SOURCE")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"-watch", "exp.xlsx"})

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, app.ExitInternal, exitErr.Code)
	assert.Contains(t, exitErr.Message, "-watch")
}

func TestRun_ExitCodes(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		workbook string
		flags    []string
		wantCode int
		wantFile bool
	}{
		{name: "clean", workbook: testutil.GreetingWorkbook, wantCode: app.ExitOK, wantFile: true},
		{name: "warnings", workbook: testutil.WarningWorkbook, wantCode: app.ExitWarnings, wantFile: true},
		{name: "errors", workbook: testutil.ErrorWorkbook, wantCode: app.ExitErrors},
		{name: "errors forced", workbook: testutil.ErrorWorkbook, flags: []string{"-force"}, wantCode: app.ExitErrors, wantFile: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			source := testutil.WriteWorkbook(t, dir, "exp.yaml", tc.workbook)
			dest := filepath.Join(dir, "out.html")
			args := append(append([]string{"-o", dest}, tc.flags...), source)

			errW := &bytes.Buffer{}
			err := run(&bytes.Buffer{}, errW, args)

			if tc.wantCode == app.ExitOK {
				require.NoError(t, err)
			} else {
				var exitErr *cli.ExitError
				require.ErrorAs(t, err, &exitErr)
				assert.Equal(t, tc.wantCode, exitErr.Code)
				assert.NotEmpty(t, errW.String(), "diagnostics are printed")
			}

			_, statErr := os.Stat(dest)
			assert.Equal(t, tc.wantFile, statErr == nil)
		})
	}
}

func TestRun_MissingSource(t *testing.T) {
	t.Parallel()

	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{filepath.Join(t.TempDir(), "missing.xlsx")})

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, app.ExitInternal, exitErr.Code)
	assert.Contains(t, exitErr.Message, "failed to stat source")
}
