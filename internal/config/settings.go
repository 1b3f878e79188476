package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/expc/internal/ctxlog"
)

// DefaultFileName is the settings file picked up next to a workbook.
const DefaultFileName = "expc.hcl"

// Settings are the compiler options a settings file may carry. Pointer
// fields distinguish "not set" from false.
type Settings struct {
	InstructionsMandatory *bool  `hcl:"instructions_mandatory,optional"`
	LocalImports          *bool  `hcl:"local_imports,optional"`
	JSPsychVersion        string `hcl:"jspsych_version,optional"`
	PluginVersion         string `hcl:"plugin_version,optional"`
	LocalPath             string `hcl:"local_path,optional"`
	CDNBase               string `hcl:"cdn_base,optional"`
}

// ParseSettings decodes settings from HCL source. filename is only used in
// error messages.
func ParseSettings(src []byte, filename string) (*Settings, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", filename, diags)
	}
	return decode(file, filename)
}

// LoadSettings reads and decodes the settings file at path.
func LoadSettings(ctx context.Context, path string) (*Settings, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading settings file.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, diags)
	}
	settings, err := decode(file, path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Settings file loaded.", "path", path)
	return settings, nil
}

func decode(file *hcl.File, filename string) (*Settings, error) {
	var s Settings
	if diags := gohcl.DecodeBody(file.Body, nil, &s); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode settings file %s: %w", filename, diags)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("invalid settings file %s: %w", filename, err)
	}
	return &s, nil
}

func (s *Settings) validate() error {
	if s.CDNBase != "" && !strings.HasPrefix(s.CDNBase, "https://") && !strings.HasPrefix(s.CDNBase, "http://") {
		return fmt.Errorf("cdn_base %q must be an http or https URL", s.CDNBase)
	}
	if strings.ContainsAny(s.JSPsychVersion, " /@") {
		return fmt.Errorf("jspsych_version %q is not a version", s.JSPsychVersion)
	}
	if strings.ContainsAny(s.PluginVersion, " /@") {
		return fmt.Errorf("plugin_version %q is not a version", s.PluginVersion)
	}
	return nil
}

// Locate returns the settings file for a workbook or directory source: the
// explicit path when given, otherwise expc.hcl beside the source. ok is false
// when no file applies.
func Locate(explicit, source string) (path string, ok bool, err error) {
	if explicit != "" {
		return explicit, true, nil
	}

	dir := source
	info, err := os.Stat(source)
	if err != nil {
		return "", false, fmt.Errorf("failed to stat source %s: %w", source, err)
	}
	if !info.IsDir() {
		dir = filepath.Dir(source)
	}

	candidate := filepath.Join(dir, DefaultFileName)
	if _, err := os.Stat(candidate); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to stat settings file %s: %w", candidate, err)
	}
	return candidate, true, nil
}
