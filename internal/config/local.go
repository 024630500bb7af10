package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// LocalConfigFileName is the per-directory override file, looked up in
// the working directory.
const LocalConfigFileName = ".pix.toml"

// Local holds per-directory configuration overrides from .pix.toml.
// Pointer fields distinguish "not set" (inherit from global) from an
// explicit zero value, which matters for delimiter and the booleans.
type Local struct {
	Prefix              *string `toml:"prefix"`
	FilenameTemplate    *string `toml:"filename_template"`
	FoldernameTemplate  *string `toml:"foldername_template"`
	Delimiter           *string `toml:"delimiter"`
	Format              *string `toml:"format"`
	Quality             *int    `toml:"quality"`
	CounterDigits       *int    `toml:"counter_digits"`
	CounterPosition     *string `toml:"counter_position"`
	PerDirectoryCounter *bool   `toml:"per_directory_counter"`
	OutputDir           *string `toml:"output_dir"`
	JobData             *string `toml:"job_data"`
	History             *bool   `toml:"history"`
}

// LoadLocal reads a per-directory .pix.toml from dir.
// Returns nil (no error) if the file doesn't exist.
// Returns an error only on parse failure.
func LoadLocal(dir string) (*Local, error) {
	configFile := filepath.Join(dir, LocalConfigFileName)

	data, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read local config %s: %w", configFile, err)
	}

	var local Local
	if err := toml.Unmarshal(data, &local); err != nil {
		return nil, fmt.Errorf("parse local config %s: %w", configFile, err)
	}

	if local.OutputDir != nil {
		// Local output dirs resolve against the directory that holds
		// the .pix.toml, not the process working directory.
		expanded, err := expandPath(*local.OutputDir)
		if err != nil {
			return nil, err
		}
		if !filepath.IsAbs(expanded) {
			abs, err := filepath.Abs(filepath.Join(dir, expanded))
			if err != nil {
				return nil, fmt.Errorf("resolve local output_dir: %w", err)
			}
			expanded = abs
		}
		local.OutputDir = &expanded
	}

	return &local, nil
}

const defaultLocalConfig = `# pix local config (per-directory overrides)
# Settings here override the global ~/.pix/config.toml when pix runs in
# this directory. Every key is optional; unset keys inherit the global
# value.

# prefix = "project"
# filename_template = "sampler_name, steps"
# foldername_template = "ckpt_name, ./sampler_name"
# delimiter = "-"
# format = ".jpg"
# quality = 92
# counter_digits = 4
# counter_position = "last"
# per_directory_counter = true

# Relative paths resolve against this file's directory.
# output_dir = "renders"

# job_data = "basic"
# history = true
`

// LocalTemplate returns the default local configuration file content.
func LocalTemplate() string {
	return defaultLocalConfig
}
