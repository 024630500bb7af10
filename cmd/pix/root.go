package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"

	"github.com/raphi011/pix/internal/config"
	"github.com/raphi011/pix/internal/log"
	"github.com/raphi011/pix/internal/output"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	configPath string

	// Shared state for doctor's environment report
	cfgLoadErr error
	workDir    string
)

// Command group IDs for organizing help output
const (
	GroupCore    = "core"
	GroupUtility = "utility"
	GroupConfig  = "config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pix",
	Short: "Deterministic image naming for batch pipelines",
	Long: `pix saves batch-generated images under deterministic names so files
sort chronologically, never collide, and carry the generation
parameters that produced them.

Filename and folder templates pull values from a JSON parameter tree
(for example a ComfyUI prompt graph); a per-series counter keeps every
name unique across runs and concurrent processes.`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2, // Enable typo suggestions
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Completion and help need no environment
		if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
			return nil
		}

		ctx := cmd.Context()

		// Logger on stderr for diagnostics, printer on stdout for
		// primary data. The color profile writer downgrades styling to
		// whatever the terminal supports.
		logger := log.New(os.Stderr, verbose, quiet)
		ctx = log.WithLogger(ctx, logger)
		ctx = output.WithPrinter(ctx, colorprofile.NewWriter(os.Stdout, os.Environ()))

		// A broken config file must not lock every command out; doctor
		// needs to run against it to report what is wrong.
		cfg, err := config.Load(configPath)
		if err != nil {
			cfgLoadErr = err
			logger.Warn().Err(err).Msg("config unreadable, using defaults")
		}

		workDir, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}

		local, err := config.LoadLocal(workDir)
		if err != nil {
			logger.Warn().Err(err).Msg("local config unreadable, ignoring")
		} else if local != nil {
			cfg = config.MergeLocal(cfg, local)
			logger.Debug().Str("file", config.LocalConfigFileName).Msg("applied local overrides")
		}

		ctx = config.WithConfig(ctx, &cfg)
		cmd.SetContext(ctx)
		return nil
	},
	// Run is not set - shows help when no subcommand provided
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	// Context with signal handling; watch and long saves stop cleanly
	// on Ctrl-C.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'pix -h' for help")
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.pix/config.toml)")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Add command groups for organized help output
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupUtility, Title: "Utility Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Core commands
	rootCmd.AddCommand(newSaveCmd())
	rootCmd.AddCommand(newPreviewCmd())
	rootCmd.AddCommand(newWatchCmd())

	// Utility commands
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newPresetsCmd())

	// Config commands
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDoctorCmd())
	rootCmd.AddCommand(newCompletionCmd())
}
