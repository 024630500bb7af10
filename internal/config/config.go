package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the pix configuration.
type Config struct {
	Prefix              string `toml:"prefix"`
	FilenameTemplate    string `toml:"filename_template"`
	FoldernameTemplate  string `toml:"foldername_template"`
	Delimiter           string `toml:"delimiter"`
	Format              string `toml:"format"`
	Quality             int    `toml:"quality"`
	CounterDigits       int    `toml:"counter_digits"`
	CounterPosition     string `toml:"counter_position"`
	PerDirectoryCounter bool   `toml:"per_directory_counter"`
	OutputDir           string `toml:"output_dir"`
	JobData             string `toml:"job_data"`
	History             bool   `toml:"history"`
}

// Default returns the default configuration. OutputDir is relative here;
// Load makes it absolute.
func Default() Config {
	return Config{
		Prefix:              "pix",
		FilenameTemplate:    "sampler_name, cfg, steps, %F %H-%M-%S",
		FoldernameTemplate:  "ckpt_name",
		Delimiter:           "-",
		Format:              ".png",
		Quality:             80,
		CounterDigits:       4,
		CounterPosition:     "last",
		PerDirectoryCounter: true,
		OutputDir:           "output",
		JobData:             "off",
		History:             true,
	}
}

type ctxKey struct{}

// WithConfig attaches the effective config to the context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext retrieves the config from context, or the defaults if none
// is attached.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok {
		return cfg
	}
	cfg := Default()
	return &cfg
}

// Path returns the global config file path, ~/.pix/config.toml.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".pix", "config.toml"), nil
}

// Load reads the config file at path, or the global one when path is
// empty. A missing file yields the defaults without error; a present but
// invalid file is an error. Values decode over the defaults, so absent
// keys keep their default.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		var err error
		if path, err = Path(); err != nil {
			return finishLoad(cfg)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return finishLoad(cfg)
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config file %s: %w", path, err)
	}

	return finishLoad(cfg)
}

// finishLoad normalizes paths after decoding.
func finishLoad(cfg Config) (Config, error) {
	dir, err := NormalizeOutputDir(cfg.OutputDir)
	if err != nil {
		return cfg, err
	}
	cfg.OutputDir = dir
	return cfg, nil
}

// NormalizeOutputDir expands a leading ~ and makes the directory
// absolute. Config files don't go through a shell, so ~ must be expanded
// here.
func NormalizeOutputDir(dir string) (string, error) {
	expanded, err := expandPath(dir)
	if err != nil {
		return "", fmt.Errorf("expand output_dir: %w", err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("resolve output_dir: %w", err)
	}
	return abs, nil
}

func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

const defaultConfig = `# pix configuration

# Prefix seeds every generated filename. Template values are appended to
# it with the delimiter. Note the prefix itself is used as-is, so keep it
# free of characters your filesystem dislikes.
prefix = "pix"

# Comma-separated template for the filename base. Token kinds:
#   sampler_name     parameter lookup (deep search, first match wins)
#   5.seed           explicit node lookup: node "5", input "seed"
#   %F %H-%M-%S      date directive (strftime)
#   ./subfolder      literal subfolder marker
# Unresolvable tokens are skipped silently; use "pix validate" to check a
# template against a params file.
filename_template = "sampler_name, cfg, steps, %F %H-%M-%S"

# Same token syntax, but builds the folder path under output_dir.
# Empty means no subfolder.
foldername_template = "ckpt_name"

# Separator between name parts. 1-3 characters recommended.
# Counters written with a delimiter other than "-" are invisible to the
# cold-start directory scan (see "pix doctor").
delimiter = "-"

# Output format. Supported: .png .jpg .jpeg .gif .tif .tiff .bmp
format = ".png"

# JPEG quality, 1-100. Ignored by formats without a quality knob.
quality = 80

# Counter formatting: zero-padded width and placement.
# counter_position is "last" (name-0001.png) or "first" (0001-name.png).
counter_digits = 4
counter_position = "last"

# true: one counter series per directory, shared by all prefixes.
# false: one series per (directory, generated base name).
per_directory_counter = true

# Root for all generated paths. Relative paths resolve against the
# working directory; ~ is expanded.
output_dir = "output"

# Sidecar job metadata per output directory (jobs.json).
# "off", "basic" (files + counters), or "full" (adds template values).
job_data = "off"

# Record saves in ~/.pix/history.json ("pix history").
history = true
`

// Template returns the default config file content.
func Template() string {
	return defaultConfig
}

// Init creates a default config file at ~/.pix/config.toml.
// If force is true, overwrites an existing file.
// Returns the path to the created file.
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return "", err
	}

	return path, nil
}
