package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/expc/internal/builder"
	"github.com/vk/expc/internal/config"
	"github.com/vk/expc/internal/ctxlog"
	"github.com/vk/expc/internal/diag"
	"github.com/vk/expc/internal/fsutil"
	"github.com/vk/expc/internal/generator"
	"github.com/vk/expc/internal/worksheet"
)

// Process exit codes.
const (
	ExitOK       = 0
	ExitInternal = 1
	ExitErrors   = 2
	ExitWarnings = 53
)

var workbookExtensions = []string{".xlsx", ".xlsm", ".yaml", ".yml"}

// Result describes the compilation of one workbook.
type Result struct {
	Source  string
	Output  string
	Script  string
	Sink    *diag.Sink
	Code    int
	Written bool
}

// Compile builds the page for one workbook and writes it to dest. Recorded
// errors suppress the write unless the app is forced. The returned error is
// reserved for I/O and internal failures.
func (a *App) Compile(ctx context.Context, source, dest string) (*Result, error) {
	ctx, logger := ctxlog.With(ctxlog.WithLogger(ctx, a.logger), "source", source)

	res, err := a.compile(ctx, source)
	if err != nil {
		return nil, err
	}
	if err := res.Sink.WriteText(a.errW, 0); err != nil {
		return nil, fmt.Errorf("failed to write diagnostics: %w", err)
	}

	switch {
	case res.Script == "":
		logger.Warn("No page generated.")
	case res.Code == ExitErrors && !a.config.Force:
		logger.Warn("Errors were found, page not written. Use -force to write it anyway.")
	default:
		if err := os.WriteFile(dest, []byte(res.Script), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write page: %w", err)
		}
		res.Output = dest
		res.Written = true
	}

	logger.Info("Compilation finished.",
		"output", res.Output,
		"written", res.Written,
		"errors", res.Sink.ErrorsFound(),
		"warnings", res.Sink.WarningsFound(),
		"exit_code", res.Code,
	)
	return res, nil
}

// compile runs the pipeline without touching the output.
func (a *App) compile(ctx context.Context, source string) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	sink := diag.NewSink(logger)
	res := &Result{Source: source, Sink: sink}

	bopts, gopts, err := a.options(ctx, source)
	if err != nil {
		return nil, err
	}

	wb, err := worksheet.OpenFile(source, sink)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", source, err)
	}
	defer wb.Close()

	exp, err := builder.New(wb, sink, bopts).Build(ctx)
	if err != nil {
		logger.Debug("Workbook could not be built.", "error", err)
		res.Code = ExitErrors
		return res, nil
	}

	page, err := generator.New(sink, gopts).Generate(ctx, exp)
	if err != nil {
		return nil, fmt.Errorf("failed to generate page: %w", err)
	}
	res.Script = page
	res.Code = exitCode(sink)
	return res, nil
}

// options resolves builder and generator options: defaults, then the
// settings file, then command-line flags.
func (a *App) options(ctx context.Context, source string) (builder.Options, generator.Options, error) {
	bopts := builder.Options{}
	gopts := generator.DefaultOptions()

	path, ok, err := config.Locate(a.config.SettingsPath, source)
	if err != nil {
		return bopts, gopts, err
	}
	if ok {
		s, err := config.LoadSettings(ctx, path)
		if err != nil {
			return bopts, gopts, err
		}
		applySettings(s, &bopts, &gopts)
	}

	if a.config.InstructionsMandatory != nil {
		bopts.InstructionsMandatory = *a.config.InstructionsMandatory
	}
	if a.config.LocalImports != nil {
		gopts.LocalImports = *a.config.LocalImports
	}
	return bopts, gopts, nil
}

func applySettings(s *config.Settings, bopts *builder.Options, gopts *generator.Options) {
	if s.InstructionsMandatory != nil {
		bopts.InstructionsMandatory = *s.InstructionsMandatory
	}
	if s.LocalImports != nil {
		gopts.LocalImports = *s.LocalImports
	}
	if s.JSPsychVersion != "" {
		gopts.JSPsychVersion = s.JSPsychVersion
	}
	if s.PluginVersion != "" {
		gopts.PluginVersion = s.PluginVersion
	}
	if s.LocalPath != "" {
		gopts.LocalPath = s.LocalPath
	}
	if s.CDNBase != "" {
		gopts.CDNBase = s.CDNBase
	}
}

// sources lists the workbooks to compile. root is the source directory in
// batch mode and empty for a single file.
func (a *App) sources(ctx context.Context) (files []string, root string, err error) {
	logger := ctxlog.FromContext(ctx)
	path := a.config.SourcePath

	info, err := os.Stat(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to stat source: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, "", nil
	}

	found, err := fsutil.FindFilesByExtension(path, workbookExtensions...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to scan %s: %w", path, err)
	}
	for _, f := range found {
		// Excel keeps "~$name.xlsx" lock files next to open workbooks.
		if strings.HasPrefix(filepath.Base(f), "~$") {
			continue
		}
		files = append(files, f)
	}
	if len(files) == 0 {
		return nil, "", fmt.Errorf("no workbooks found in %s", path)
	}
	logger.Info("Workbooks found.", "dir", path, "count", len(files))
	return files, path, nil
}

// destination is the page path for source: the explicit output for a single
// file, otherwise a sibling .html file (mirrored under the output directory
// in batch mode).
func (a *App) destination(source, root string) (string, error) {
	html := strings.TrimSuffix(source, filepath.Ext(source)) + ".html"
	out := a.config.OutPath

	if root == "" {
		if out != "" {
			return out, nil
		}
		return html, nil
	}
	if out == "" {
		return html, nil
	}

	rel, err := filepath.Rel(root, html)
	if err != nil {
		return "", fmt.Errorf("failed to place output for %s: %w", source, err)
	}
	dest := filepath.Join(out, rel)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	return dest, nil
}

func exitCode(sink *diag.Sink) int {
	switch {
	case sink.ErrorsFound():
		return ExitErrors
	case sink.WarningsFound():
		return ExitWarnings
	default:
		return ExitOK
	}
}

// worse returns the more severe of two exit codes.
func worse(a, b int) int {
	rank := func(code int) int {
		switch code {
		case ExitOK:
			return 0
		case ExitWarnings:
			return 1
		case ExitErrors:
			return 2
		default:
			return 3
		}
	}
	if rank(b) > rank(a) {
		return b
	}
	return a
}
