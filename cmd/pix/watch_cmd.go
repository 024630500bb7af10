package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/raphi011/pix/internal/config"
	"github.com/raphi011/pix/internal/encode"
	"github.com/raphi011/pix/internal/log"
	"github.com/raphi011/pix/internal/output"
	"github.com/raphi011/pix/internal/pipeline"
	"github.com/raphi011/pix/internal/ui/progress"
	"github.com/raphi011/pix/internal/watch"
)

func newWatchCmd() *cobra.Command {
	var (
		naming      namingFlags
		paramsFile  string
		settle      time.Duration
		removeInput bool
	)

	cmd := &cobra.Command{
		Use:     "watch DIR",
		Short:   "Watch a directory and save arriving images",
		GroupID: GroupCore,
		Args:    cobra.ExactArgs(1),
		Long: `Watch a directory and run the save pipeline on every image that
appears in it.

A file is picked up once its size has held still for the settle
window, so half-written files are never read. Dotfiles and .tmp files
are ignored. Stop with Ctrl-C.`,
		Example: `  pix watch ~/comfy/output               # Save arriving images
  pix watch --remove ~/comfy/output      # Delete inputs after saving
  pix watch --settle 2s /mnt/slow-share  # Wait longer for slow writers
  pix watch -p prompt.json ./inbox       # Resolve templates for every save`,
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

			inbox, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			// Saves landing in the watched directory would be picked up
			// again, renamed, picked up again.
			if insideDir(saver.BaseDir(), inbox) {
				return fmt.Errorf("cannot watch %s: it is inside the output directory %s", inbox, saver.BaseDir())
			}

			handler := func(ctx context.Context, path string) {
				res, err := saver.Save(ctx, pipeline.Event{Inputs: []string{path}, Tree: tree})
				if err != nil {
					logger.Error().Err(err).Str("file", path).Msg("save failed")
					return
				}
				for _, f := range res.Files {
					out.Println(f)
				}
				if removeInput {
					if err := os.Remove(path); err != nil {
						logger.Warn().Err(err).Str("file", path).Msg("could not remove input")
					}
				}
			}

			w, err := watch.New(inbox, encode.InputExts(), settle, handler)
			if err != nil {
				return err
			}

			// Warm the counter cache so the first arriving image does
			// not pay the directory scan.
			if isatty.IsTerminal(os.Stderr.Fd()) && !quiet {
				sp := progress.NewSpinner("Scanning existing counter files")
				sp.Start()
				saver.PreloadCounters(ctx, saver.BaseDir())
				sp.Stop()
			} else {
				saver.PreloadCounters(ctx, saver.BaseDir())
			}

			return w.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&paramsFile, "params", "p", "", "JSON parameter tree for template tokens")
	cmd.Flags().DurationVar(&settle, "settle", 0, "How long a file's size must hold still (default 500ms)")
	cmd.Flags().BoolVar(&removeInput, "remove", false, "Delete each input after a successful save")
	naming.register(cmd)

	cmd.RegisterFlagCompletionFunc("params", completeJSONFiles)

	return cmd
}

// insideDir reports whether path is dir itself or nested under it.
func insideDir(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
