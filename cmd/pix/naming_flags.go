package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/pix/internal/config"
	"github.com/raphi011/pix/internal/params"
)

// namingFlags are the per-invocation naming overrides shared by save,
// preview, watch and validate. Only flags the user actually set are
// applied, so an explicit empty value clears a setting (for example
// --foldername-template "" for a flat output directory).
type namingFlags struct {
	preset             string
	prefix             string
	filenameTemplate   string
	foldernameTemplate string
	delimiter          string
	format             string
	quality            int
	digits             int
	position           string
	out                string
}

// register binds the override flags to cmd.
func (f *namingFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.preset, "preset", "", "Apply a named preset before other overrides")
	fl.StringVar(&f.prefix, "prefix", "", "Static filename prefix")
	fl.StringVar(&f.filenameTemplate, "filename-template", "", "Comma-separated filename tokens")
	fl.StringVar(&f.foldernameTemplate, "foldername-template", "", "Comma-separated folder tokens")
	fl.StringVar(&f.delimiter, "delimiter", "", "Separator between name segments")
	fl.StringVar(&f.format, "format", "", "Output format: png, jpg, gif, tif or bmp")
	fl.IntVar(&f.quality, "quality", 0, "Quality 1-100 for formats that support it")
	fl.IntVar(&f.digits, "digits", 0, "Counter digits 1-8")
	fl.StringVar(&f.position, "position", "", "Counter position: first or last")
	fl.StringVarP(&f.out, "out", "o", "", "Output directory")

	cmd.RegisterFlagCompletionFunc("preset", completePresetNames)
	cmd.RegisterFlagCompletionFunc("format", completeFormats)
	cmd.RegisterFlagCompletionFunc("position", completePositions)
	cmd.MarkFlagDirname("out")
}

// apply overlays the preset and the explicitly set flags onto cfg, in
// that order, so flag overrides win over the preset.
func (f *namingFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	if f.preset != "" {
		if err := cfg.ApplyPreset(f.preset); err != nil {
			return err
		}
	}

	fl := cmd.Flags()
	if fl.Changed("prefix") {
		cfg.Prefix = f.prefix
	}
	if fl.Changed("filename-template") {
		cfg.FilenameTemplate = f.filenameTemplate
	}
	if fl.Changed("foldername-template") {
		cfg.FoldernameTemplate = f.foldernameTemplate
	}
	if fl.Changed("delimiter") {
		cfg.Delimiter = f.delimiter
	}
	if fl.Changed("format") {
		// Config stores the extension with its dot; the flag accepts
		// both "jpg" and ".jpg".
		ext := f.format
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		cfg.Format = ext
	}
	if fl.Changed("quality") {
		cfg.Quality = f.quality
	}
	if fl.Changed("digits") {
		cfg.CounterDigits = f.digits
	}
	if fl.Changed("position") {
		cfg.CounterPosition = f.position
	}
	if fl.Changed("out") {
		cfg.OutputDir = f.out
	}
	return nil
}

// loadParams parses the JSON parameter tree at path. An empty path means
// no parameters; templates then resolve only their date tokens.
func loadParams(path string) (params.Value, error) {
	if path == "" {
		return params.Null(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return params.Null(), fmt.Errorf("open params file: %w", err)
	}
	defer f.Close()

	v, err := params.Parse(f)
	if err != nil {
		return params.Null(), fmt.Errorf("parse %s: %w", path, err)
	}
	return v, nil
}
