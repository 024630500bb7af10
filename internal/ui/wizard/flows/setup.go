package flows

import (
	"fmt"

	"github.com/raphi011/pix/internal/config"
	"github.com/raphi011/pix/internal/encode"
	"github.com/raphi011/pix/internal/name"
	"github.com/raphi011/pix/internal/sanitize"
	"github.com/raphi011/pix/internal/template"
	"github.com/raphi011/pix/internal/ui/wizard/framework"
	"github.com/raphi011/pix/internal/ui/wizard/steps"
)

// SetupOptions holds the configuration gathered from the setup wizard.
type SetupOptions struct {
	Config    config.Config
	Cancelled bool
}

// Setup runs the interactive configuration wizard. Steps are prefilled
// from cfg, so rerunning over an existing config edits it in place.
// dest names where the result will be written and is only displayed.
func Setup(cfg config.Config, dest string) (SetupOptions, error) {
	prefixStep := steps.NewTextInput("prefix", "Prefix",
		"Prefix for every generated filename:", cfg.Prefix)
	prefixStep.SetValue(cfg.Prefix)
	prefixStep.SetAllowEmpty(true)
	prefixStep.SetValidate(validatePrefix)

	filenameStep := steps.NewTextInput("filename", "Filename",
		"Filename template (comma-separated tokens):", cfg.FilenameTemplate)
	filenameStep.SetValue(cfg.FilenameTemplate)
	filenameStep.SetAllowEmpty(true)
	filenameStep.SetWidth(60)
	filenameStep.SetValidate(validateTemplate)

	folderStep := steps.NewTextInput("folder", "Folder",
		"Folder template (empty for no subfolder):", cfg.FoldernameTemplate)
	folderStep.SetValue(cfg.FoldernameTemplate)
	folderStep.SetAllowEmpty(true)
	folderStep.SetWidth(60)
	folderStep.SetValidate(validateTemplate)

	delimiterStep := steps.NewTextInput("delimiter", "Delimiter",
		"Separator between name parts:", cfg.Delimiter)
	delimiterStep.SetValue(cfg.Delimiter)
	delimiterStep.SetCharLimit(3)
	delimiterStep.SetWidth(10)

	formatStep := steps.NewSingleSelect("format", "Format",
		"Output format:", formatOptions())
	selectOption(formatStep, cfg.Format)

	positionStep := steps.NewSingleSelect("position", "Counter",
		"Counter position:", positionOptions(cfg))
	selectOption(positionStep, cfg.CounterPosition)

	outputStep := steps.NewTextInput("output", "Output",
		"Output directory (~ is expanded):", cfg.OutputDir)
	outputStep.SetValue(cfg.OutputDir)
	outputStep.SetWidth(60)

	w := framework.NewWizard("pix configuration").
		AddStep(prefixStep).
		AddStep(filenameStep).
		AddStep(folderStep).
		AddStep(delimiterStep).
		AddStep(formatStep).
		AddStep(positionStep).
		AddStep(outputStep).
		WithSummary("Review configuration").
		WithInfoLine(func(*framework.Wizard) string {
			return "Writing to " + dest
		})

	done, err := w.Run()
	if err != nil {
		return SetupOptions{}, err
	}
	if done.IsCancelled() {
		return SetupOptions{Cancelled: true}, nil
	}

	out := cfg
	out.Prefix = done.GetString("prefix")
	out.FilenameTemplate = done.GetString("filename")
	out.FoldernameTemplate = done.GetString("folder")
	out.Delimiter = done.GetString("delimiter")
	out.Format = done.GetString("format")
	out.CounterPosition = done.GetString("position")
	out.OutputDir = done.GetString("output")

	return SetupOptions{Config: out}, nil
}

// validatePrefix blocks characters that sanitization would replace.
// Load tolerates them with a warning, but there is no reason to let an
// interactive user type a prefix that comes out different on disk.
func validatePrefix(v string) error {
	if s := sanitize.Segment(v); v != "" && s != v {
		return fmt.Errorf("not filename-safe, would be saved as %q", s)
	}
	return nil
}

// validateTemplate rejects templates with error-level problems.
// Warnings (odd path markers and the like) pass; validate reports them.
func validateTemplate(v string) error {
	for _, p := range template.Check(v) {
		if p.Severity == template.Error {
			return fmt.Errorf("%s: %s", p.Token, p.Message)
		}
	}
	return nil
}

func formatOptions() []framework.Option {
	formats := encode.Formats()
	opts := make([]framework.Option, len(formats))
	for i, f := range formats {
		desc := f.Name
		if f.SupportsQuality {
			desc += ", quality setting applies"
		}
		opts[i] = framework.Option{
			Label:       f.Ext,
			Value:       f.Ext,
			Description: desc,
		}
	}
	return opts
}

func positionOptions(cfg config.Config) []framework.Option {
	example := func(pos name.Position) string {
		return name.Filename("pix-euler", 1, cfg.CounterDigits, pos, cfg.Delimiter, cfg.Format)
	}
	return []framework.Option{
		{
			Label:       string(name.PositionLast),
			Value:       string(name.PositionLast),
			Description: example(name.PositionLast),
		},
		{
			Label:       string(name.PositionFirst),
			Value:       string(name.PositionFirst),
			Description: example(name.PositionFirst),
		},
	}
}

// selectOption moves the cursor to the option whose value matches, so
// prefilled selects open on the configured choice. The selection itself
// stays empty; the user still confirms each step.
func selectOption(s *steps.SingleSelectStep, value string) {
	for i := 0; i < s.OptionsCount(); i++ {
		if opt, ok := s.GetOption(i); ok && opt.Value == value {
			s.SetCursor(i)
			return
		}
	}
}
