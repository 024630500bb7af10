package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/raphi011/pix/internal/config"
	"github.com/raphi011/pix/internal/log"
	"github.com/raphi011/pix/internal/output"
	"github.com/raphi011/pix/internal/ui/prompt"
	"github.com/raphi011/pix/internal/ui/static"
	"github.com/raphi011/pix/internal/ui/wizard/flows"
)

// configDisplay holds the effective config for JSON display
type configDisplay struct {
	Prefix              string `json:"prefix"`
	FilenameTemplate    string `json:"filename_template"`
	FoldernameTemplate  string `json:"foldername_template"`
	Delimiter           string `json:"delimiter"`
	Format              string `json:"format"`
	Quality             int    `json:"quality"`
	CounterDigits       int    `json:"counter_digits"`
	CounterPosition     string `json:"counter_position"`
	PerDirectoryCounter bool   `json:"per_directory_counter"`
	OutputDir           string `json:"output_dir"`
	JobData             string `json:"job_data"`
	History             bool   `json:"history"`
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage pix configuration.

Global config: ~/.pix/config.toml
Local config:  .pix.toml (in the directory pix runs from)`,
		Example: `  pix config init          # Write the global config
  pix config init --local  # Write a per-directory .pix.toml
  pix config show          # Show the effective config`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force       bool
		stdout      bool
		local       bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		Args:  cobra.NoArgs,
		Long: `Write a starter config file with every key and its default.

Without flags the global ~/.pix/config.toml is written. With --local a
.pix.toml goes into the current directory instead; its values override
the global config for saves run from there. --interactive walks
through the main naming choices first and writes the result.`,
		Example: `  pix config init                # Write ~/.pix/config.toml
  pix config init --local        # Write ./.pix.toml
  pix config init --interactive  # Choose preset, format and output first
  pix config init -s             # Print the template to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			dest, err := configInitDest(local)
			if err != nil {
				return err
			}

			var content []byte
			switch {
			case interactive:
				if !isatty.IsTerminal(os.Stdin.Fd()) {
					return fmt.Errorf("--interactive needs a terminal")
				}
				opts, err := flows.Setup(*config.FromContext(ctx), dest)
				if err != nil {
					return err
				}
				if opts.Cancelled {
					out.Println("Aborted")
					return nil
				}
				var buf bytes.Buffer
				if err := toml.NewEncoder(&buf).Encode(opts.Config); err != nil {
					return fmt.Errorf("encode config: %w", err)
				}
				content = buf.Bytes()
			case local:
				content = []byte(config.LocalTemplate())
			default:
				content = []byte(config.Template())
			}

			if stdout {
				out.Print(string(content))
				return nil
			}

			return writeConfigFile(cmd, dest, content, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print the config to stdout instead of writing it")
	cmd.Flags().BoolVar(&local, "local", false, "Write a per-directory .pix.toml instead of the global config")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Walk through the main choices first")

	return cmd
}

// configInitDest picks the file config init writes: the local .pix.toml,
// the --config override, or the global path.
func configInitDest(local bool) (string, error) {
	if local {
		wd := workDir
		if wd == "" {
			var err error
			if wd, err = os.Getwd(); err != nil {
				return "", err
			}
		}
		return filepath.Join(wd, config.LocalConfigFileName), nil
	}
	if configPath != "" {
		return configPath, nil
	}
	return config.Path()
}

// writeConfigFile writes content to dest. An existing file needs --force
// or an interactive confirmation.
func writeConfigFile(cmd *cobra.Command, dest string, content []byte, force bool) error {
	ctx := cmd.Context()
	out := output.FromContext(ctx)

	if _, err := os.Stat(dest); err == nil && !force {
		if !isatty.IsTerminal(os.Stdin.Fd()) {
			return fmt.Errorf("config file already exists: %s (use -f to overwrite)", dest)
		}
		res, err := prompt.Confirm(fmt.Sprintf("Overwrite %s?", dest))
		if err != nil {
			return err
		}
		if res.Cancelled || !res.Confirmed {
			out.Println("Aborted")
			return nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(dest, content, 0o644); err != nil {
		return err
	}

	out.Printf("Wrote %s\n", dest)
	return nil
}

func newConfigShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		Long: `Show the effective configuration after merging the global config,
a .pix.toml in the working directory, and the built-in defaults.

Values set by the local .pix.toml are marked (local).`,
		Example: `  pix config show         # Show the effective config
  pix config show --json  # Output as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := log.FromContext(ctx)
			out := output.FromContext(ctx)
			cfg := *config.FromContext(ctx)

			if jsonOutput {
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				return enc.Encode(configDisplay(cfg))
			}

			wd := workDir
			if wd == "" {
				wd, _ = os.Getwd()
			}
			local, err := config.LoadLocal(wd)
			if err != nil {
				logger.Warn().Err(err).Msg("local config unreadable, annotations skipped")
			}

			gp := configPath
			if gp == "" {
				if gp, err = config.Path(); err != nil {
					return err
				}
			}
			out.Printf("Global config: %s\n", gp)
			if local != nil {
				out.Printf("Local config:  %s\n", filepath.Join(wd, config.LocalConfigFileName))
			} else {
				out.Printf("Local config:  (none)\n")
			}
			out.Println()

			// Helper to annotate source
			source := func(isLocal bool) string {
				if isLocal {
					return " (local)"
				}
				return ""
			}
			l := local
			if l == nil {
				l = &config.Local{}
			}

			out.Print(static.RenderKeyValues([][2]string{
				{"prefix", cfg.Prefix + source(l.Prefix != nil)},
				{"filename_template", cfg.FilenameTemplate + source(l.FilenameTemplate != nil)},
				{"foldername_template", cfg.FoldernameTemplate + source(l.FoldernameTemplate != nil)},
				{"delimiter", cfg.Delimiter + source(l.Delimiter != nil)},
				{"format", cfg.Format + source(l.Format != nil)},
				{"quality", strconv.Itoa(cfg.Quality) + source(l.Quality != nil)},
				{"counter_digits", strconv.Itoa(cfg.CounterDigits) + source(l.CounterDigits != nil)},
				{"counter_position", cfg.CounterPosition + source(l.CounterPosition != nil)},
				{"per_directory_counter", strconv.FormatBool(cfg.PerDirectoryCounter) + source(l.PerDirectoryCounter != nil)},
				{"output_dir", cfg.OutputDir + source(l.OutputDir != nil)},
				{"job_data", cfg.JobData + source(l.JobData != nil)},
				{"history", strconv.FormatBool(cfg.History) + source(l.History != nil)},
			}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
