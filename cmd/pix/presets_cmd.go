package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/raphi011/pix/internal/config"
	"github.com/raphi011/pix/internal/output"
	"github.com/raphi011/pix/internal/ui/prompt"
	"github.com/raphi011/pix/internal/ui/static"
)

// presetDisplay holds one preset for display
type presetDisplay struct {
	Name               string `json:"name"`
	Description        string `json:"description"`
	FilenameTemplate   string `json:"filename_template"`
	FoldernameTemplate string `json:"foldername_template"`
}

func newPresetsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "presets",
		Short:   "List the built-in naming presets",
		GroupID: GroupUtility,
		Args:    cobra.NoArgs,
		Long: `List the built-in naming presets.

A preset is a pair of filename and folder templates. Apply one for a
single run with --preset on save or preview, or make it permanent
with 'pix config init --interactive'.`,
		Example: `  pix presets                  # List all presets
  pix presets show detailed    # Show one preset in full
  pix save --preset organized  # Use a preset for one batch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			if jsonOutput {
				display := make([]presetDisplay, 0, len(config.Presets()))
				for _, p := range config.Presets() {
					display = append(display, presetDisplay(p))
				}
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				return enc.Encode(display)
			}

			headers := []string{"NAME", "FILENAME", "FOLDER", "DESCRIPTION"}
			var rows [][]string
			for _, p := range config.Presets() {
				folder := p.FoldernameTemplate
				if folder == "" {
					folder = "-"
				}
				rows = append(rows, []string{p.Name, p.FilenameTemplate, folder, p.Description})
			}
			out.Print(static.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	cmd.AddCommand(newPresetsShowCmd())

	return cmd
}

func newPresetsShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [NAME]",
		Short: "Show one preset in full",
		Args:  cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return completePresetNames(cmd, args, toComplete)
		},
		Example: `  pix presets show detailed  # Show the detailed preset
  pix presets show           # Pick one interactively`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			var name string
			if len(args) == 1 {
				name = args[0]
			} else {
				if !isatty.IsTerminal(os.Stdin.Fd()) {
					return fmt.Errorf("preset name required")
				}
				res, err := prompt.Select("Choose a preset", config.PresetNames())
				if err != nil {
					return err
				}
				if res.Cancelled {
					out.Println("Aborted")
					return nil
				}
				name = res.Value
			}

			p, ok := config.PresetByName(name)
			if !ok {
				return fmt.Errorf("unknown preset %q, run 'pix presets' to list them", name)
			}

			out.Print(static.RenderKeyValues([][2]string{
				{"name", p.Name},
				{"description", p.Description},
				{"filename_template", p.FilenameTemplate},
				{"foldername_template", p.FoldernameTemplate},
			}))
			return nil
		},
	}

	return cmd
}
