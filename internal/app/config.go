package app

import (
	"errors"
	"strings"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SourcePath   string // workbook file or directory of workbooks
	OutPath      string // output file, or output directory for a directory source
	SettingsPath string

	// Nil means "not given on the command line".
	LocalImports          *bool
	InstructionsMandatory *bool

	Force     bool
	ServeAddr string

	LogFormat string
	LogLevel  string
	LogFile   string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.SourcePath == "" {
		return nil, errors.New("SourcePath is a required configuration field and cannot be empty")
	}
	if cfg.ServeAddr != "" && cfg.OutPath != "" {
		return nil, errors.New("an output path cannot be combined with the preview server")
	}
	if strings.TrimSpace(cfg.ServeAddr) != cfg.ServeAddr {
		return nil, errors.New("the preview address must not contain spaces")
	}
	return &cfg, nil
}
