package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/raphi011/pix/internal/config"
	"github.com/raphi011/pix/internal/log"
	"github.com/raphi011/pix/internal/output"
	"github.com/raphi011/pix/internal/pipeline"
	"github.com/raphi011/pix/internal/ui/progress"
)

// saveDisplay holds a save or preview result for display
type saveDisplay struct {
	Dir        string   `json:"dir"`
	Base       string   `json:"base"`
	Files      []string `json:"files"`
	Counters   []int    `json:"counters"`
	Unresolved []string `json:"unresolved,omitempty"`
}

func newSaveCmd() *cobra.Command {
	var (
		naming     namingFlags
		paramsFile string
		jobData    string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:               "save IMAGE...",
		Short:             "Save images under generated names",
		GroupID:           GroupCore,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeImageFiles,
		Long: `Save images into the output directory under generated names.

Each image claims the next counter of its series, so re-runs and
concurrent saves never collide. Template tokens resolve against the
parameter tree given with --params; tokens without a value are
omitted from the name.`,
		Example: `  pix save render.png                      # Save with config defaults
  pix save -p prompt.json render.png       # Resolve templates from prompt.json
  pix save --preset detailed *.png         # Apply a preset for this batch
  pix save --format jpg --quality 90 a.png # Override format and quality
  pix save --json render.png               # Print the result as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := log.FromContext(ctx)
			out := output.FromContext(ctx)

			cfg := *config.FromContext(ctx)
			if err := naming.apply(cmd, &cfg); err != nil {
				return err
			}
			if cmd.Flags().Changed("job-data") {
				cfg.JobData = jobData
			}

			tree, err := loadParams(paramsFile)
			if err != nil {
				return err
			}

			saver, err := pipeline.New(cfg)
			if err != nil {
				return err
			}

			ev := pipeline.Event{Inputs: args, Tree: tree}

			var bar *progress.ProgressBar
			if len(args) > 1 && !jsonOutput && !quiet && isatty.IsTerminal(os.Stderr.Fd()) {
				bar = progress.NewProgressBar(len(args), fmt.Sprintf("Saving %d images", len(args)))
				bar.Start()
				ev.Progress = func(done int, path string) {
					bar.SetProgress(done, "Saved "+filepath.Base(path))
				}
			}

			res, err := saver.Save(ctx, ev)
			if bar != nil {
				bar.Stop()
			}
			if err != nil {
				return err
			}

			if len(res.Unresolved) > 0 {
				logger.Debug().Strs("tokens", res.Unresolved).Msg("tokens without a value were omitted")
			}

			if jsonOutput {
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				return enc.Encode(saveDisplay{
					Dir:        res.Dir,
					Base:       res.Base,
					Files:      res.Files,
					Counters:   res.Counters,
					Unresolved: res.Unresolved,
				})
			}

			for _, f := range res.Files {
				out.Println(f)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&paramsFile, "params", "p", "", "JSON parameter tree for template tokens")
	cmd.Flags().StringVar(&jobData, "job-data", "", "Sidecar export mode: off, basic or full")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	naming.register(cmd)

	cmd.RegisterFlagCompletionFunc("params", completeJSONFiles)
	cmd.RegisterFlagCompletionFunc("job-data", completeJobDataModes)

	return cmd
}
