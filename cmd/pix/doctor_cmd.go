package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raphi011/pix/internal/config"
	"github.com/raphi011/pix/internal/doctor"
	"github.com/raphi011/pix/internal/output"
	"github.com/raphi011/pix/internal/ui/styles"
)

func newDoctorCmd() *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:     "doctor",
		Short:   "Check the pix environment for problems",
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		Long: `Check the config files, the settings, the output directory, the
counter scan and the history file.

With --fix, repairs that only create missing pieces are applied: the
output directory is created and a missing global config is written.
Doctor never rewrites an existing file.`,
		Example: `  pix doctor        # Report problems
  pix doctor --fix  # Also repair what can be repaired`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			wd := workDir
			if wd == "" {
				wd, _ = os.Getwd()
			}
			env := doctor.Env{
				Config:     *config.FromContext(ctx),
				ConfigPath: configPath,
				ConfigErr:  cfgLoadErr,
				WorkDir:    wd,
			}

			rep := doctor.Run(ctx, env)
			for _, c := range rep.Checks {
				out.Printf("%s %s: %s\n", statusGlyph(c.Status), c.Name, c.Detail)
			}

			okCount, warnCount, failCount := rep.Counts()
			out.Println()
			out.Printf("%d ok, %d warnings, %d problems\n", okCount, warnCount, failCount)

			if fix {
				outcomes := doctor.Apply(env, rep)
				if len(outcomes) == 0 {
					out.Println("Nothing to fix")
				}
				for _, o := range outcomes {
					if o.Err != nil {
						out.Printf("%s %s: %v\n", statusGlyph(doctor.StatusFail), o.Check.Name, o.Err)
						continue
					}
					out.Printf("%s %s: %s\n", statusGlyph(doctor.StatusOK), o.Check.Name, o.Detail)
				}
			} else if len(rep.Fixable()) > 0 {
				out.Println()
				out.Println("Run 'pix doctor --fix' to repair what can be repaired")
			}

			if failCount > 0 {
				return fmt.Errorf("%d problems found", failCount)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Repair what can be repaired")

	return cmd
}

// statusGlyph renders a check status as a colored glyph.
func statusGlyph(s doctor.Status) string {
	switch s {
	case doctor.StatusOK:
		return styles.SuccessStyle.Render(styles.GlyphOK)
	case doctor.StatusWarn:
		return styles.WarningStyle.Render(styles.GlyphWarn)
	}
	return styles.ErrorStyle.Render(styles.GlyphFail)
}
