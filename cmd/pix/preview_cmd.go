package main

import (
	"encoding/json"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/raphi011/pix/internal/config"
	"github.com/raphi011/pix/internal/log"
	"github.com/raphi011/pix/internal/output"
	"github.com/raphi011/pix/internal/pipeline"
)

func newPreviewCmd() *cobra.Command {
	var (
		naming     namingFlags
		paramsFile string
		jsonOutput bool
		copyPath   bool
	)

	cmd := &cobra.Command{
		Use:     "preview",
		Short:   "Show the next filename without writing anything",
		Aliases: []string{"dry-run"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Show the file path the next save would produce.

Nothing is written and no counter is claimed; the example name always
uses counter 1. Tokens without a value render as [token] placeholders
so gaps are visible before a real save.`,
		Example: `  pix preview                       # Next name with config defaults
  pix preview -p prompt.json        # Resolve templates from prompt.json
  pix preview --preset organized    # Try a preset before committing to it
  pix preview --copy                # Copy the path to the clipboard`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := log.FromContext(ctx)
			out := output.FromContext(ctx)

			cfg := *config.FromContext(ctx)
			if err := naming.apply(cmd, &cfg); err != nil {
				return err
			}

			tree, err := loadParams(paramsFile)
			if err != nil {
				return err
			}

			saver, err := pipeline.New(cfg)
			if err != nil {
				return err
			}

			res, err := saver.Preview(ctx, pipeline.Event{Tree: tree})
			if err != nil {
				return err
			}
			path := res.Files[0]

			if jsonOutput {
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				if err := enc.Encode(saveDisplay{
					Dir:        res.Dir,
					Base:       res.Base,
					Files:      res.Files,
					Counters:   res.Counters,
					Unresolved: res.Unresolved,
				}); err != nil {
					return err
				}
			} else {
				out.Println(path)
			}

			if len(res.Unresolved) > 0 {
				logger.Warn().Strs("tokens", res.Unresolved).Msg("tokens without a value, shown as [token]")
			}

			if copyPath {
				if err := clipboard.WriteAll(path); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				logger.Info().Msg("path copied to clipboard")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&paramsFile, "params", "p", "", "JSON parameter tree for template tokens")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVarP(&copyPath, "copy", "c", false, "Copy the previewed path to the clipboard")
	naming.register(cmd)

	cmd.RegisterFlagCompletionFunc("params", completeJSONFiles)

	return cmd
}
