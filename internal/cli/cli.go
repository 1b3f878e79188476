package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/expc/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("expc", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
expc - Compiles experiment workbooks into jsPsych web pages.

Usage:
  expc [options] SOURCE

Arguments:
  SOURCE
    Path to a workbook (.xlsx, .xlsm, .yaml, .yml) or a directory of workbooks.

Exit codes:
  0   page written
  53  page written, warnings were reported
  2   errors were reported, page written only with -force
  1   the compiler could not run

Options:
`)
		flagSet.PrintDefaults()
	}

	outFlag := flagSet.String("out", "", "Output page, or output directory for a directory SOURCE. Defaults to SOURCE with an .html extension.")
	oFlag := flagSet.String("o", "", "Output path (shorthand).")
	settingsFlag := flagSet.String("settings", "", "Settings file. Defaults to expc.hcl next to SOURCE, if present.")
	forceFlag := flagSet.Bool("force", false, "Write the page even when errors were reported.")
	serveFlag := flagSet.String("serve", "", "Serve a live preview on this address (e.g. localhost:8080) instead of writing a page.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	logFileFlag := flagSet.String("log-file", "", "Also write JSON logs to this file.")

	// Tri-state: only flags given explicitly override the settings file.
	var localImports, instructionsMandatory optionalBool
	flagSet.Var(&localImports, "local-imports", "Load jsPsych from the local path instead of the CDN.")
	flagSet.Var(&instructionsMandatory, "instructions-mandatory", "Warn when the workbook has no instructions.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 1, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 1, Message: fmt.Sprintf("expected one SOURCE, got %d", flagSet.NArg())}
	}
	path := flagSet.Arg(0)
	slog.Debug("Source path determined.", "path", path)

	if path == "" {
		slog.Debug("No source path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	out := *outFlag
	if out == "" {
		out = *oFlag
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 1, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 1, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		SourcePath:            path,
		OutPath:               out,
		SettingsPath:          *settingsFlag,
		LocalImports:          localImports.value,
		InstructionsMandatory: instructionsMandatory.value,
		Force:                 *forceFlag,
		ServeAddr:             *serveFlag,
		LogFormat:             logFormat,
		LogLevel:              logLevel,
		LogFile:               *logFileFlag,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 1, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
