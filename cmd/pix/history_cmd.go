package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/raphi011/pix/internal/format"
	"github.com/raphi011/pix/internal/history"
	"github.com/raphi011/pix/internal/log"
	"github.com/raphi011/pix/internal/output"
	"github.com/raphi011/pix/internal/ui/prompt"
	"github.com/raphi011/pix/internal/ui/static"
)

// historyDisplay holds one history entry for display
type historyDisplay struct {
	Dir     string    `json:"dir"`
	File    string    `json:"file"`
	SavedAt time.Time `json:"saved_at"`
}

func newHistoryCmd() *cobra.Command {
	var (
		jsonOutput bool
		copyLast   bool
	)

	cmd := &cobra.Command{
		Use:     "history",
		Short:   "Show recently saved files",
		GroupID: GroupUtility,
		Args:    cobra.NoArgs,
		Long: `Show the most recently saved files, newest first.

The history keeps the last 50 saves across all pix processes. Use
--copy-last to put the newest path on the clipboard for pasting into
another tool.`,
		Example: `  pix history              # List recent saves
  pix history --copy-last  # Copy the newest path to the clipboard
  pix history --json       # Output as JSON
  pix history clear        # Forget all entries`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := log.FromContext(ctx)
			out := output.FromContext(ctx)

			path, err := history.DefaultPath()
			if err != nil {
				return err
			}
			h, err := history.Load(path)
			if err != nil {
				return fmt.Errorf("load history: %w", err)
			}

			if copyLast {
				e, ok := h.Latest()
				if !ok {
					return fmt.Errorf("history is empty")
				}
				full := filepath.Join(e.Dir, e.File)
				if err := clipboard.WriteAll(full); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				out.Println(full)
				logger.Info().Msg("path copied to clipboard")
				return nil
			}

			if jsonOutput {
				display := make([]historyDisplay, 0, len(h.Entries))
				for i := len(h.Entries) - 1; i >= 0; i-- {
					e := h.Entries[i]
					display = append(display, historyDisplay{Dir: e.Dir, File: e.File, SavedAt: e.SavedAt})
				}
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				return enc.Encode(display)
			}

			if len(h.Entries) == 0 {
				out.Println("No saves recorded yet")
				return nil
			}

			headers := []string{"FILE", "DIRECTORY", "SAVED"}
			var rows [][]string
			for i := len(h.Entries) - 1; i >= 0; i-- {
				e := h.Entries[i]
				rows = append(rows, []string{e.File, e.Dir, format.RelativeTime(e.SavedAt)})
			}
			out.Print(static.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&copyLast, "copy-last", false, "Copy the newest saved path to the clipboard")

	cmd.AddCommand(newHistoryClearCmd())

	return cmd
}

func newHistoryClearCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Forget all history entries",
		Args:  cobra.NoArgs,
		Example: `  pix history clear      # Ask, then clear
  pix history clear -f   # Clear without asking`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			path, err := history.DefaultPath()
			if err != nil {
				return err
			}

			if !force && isatty.IsTerminal(os.Stdin.Fd()) {
				res, err := prompt.Confirm("Clear the save history?")
				if err != nil {
					return err
				}
				if res.Cancelled || !res.Confirmed {
					out.Println("Aborted")
					return nil
				}
			}

			if err := history.Clear(path); err != nil {
				return fmt.Errorf("clear history: %w", err)
			}
			out.Println("History cleared")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Clear without confirmation")

	return cmd
}
