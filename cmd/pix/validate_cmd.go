package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/raphi011/pix/internal/config"
	"github.com/raphi011/pix/internal/output"
	"github.com/raphi011/pix/internal/params"
	"github.com/raphi011/pix/internal/template"
	"github.com/raphi011/pix/internal/ui/styles"
)

// issueDisplay holds one validation finding for display
type issueDisplay struct {
	Field    string `json:"field"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

func newValidateCmd() *cobra.Command {
	var (
		naming     namingFlags
		paramsFile string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "validate",
		Short:   "Check config values and template tokens",
		GroupID: GroupUtility,
		Args:    cobra.NoArgs,
		Long: `Check the effective configuration for invalid values and templates
for tokens that cannot produce a value.

With --params, template tokens are also resolved against the given
parameter tree; tokens that stay empty are reported with suggestions
for near-miss key names. Errors make the command exit nonzero,
warnings do not.`,
		Example: `  pix validate                    # Check the effective config
  pix validate -p prompt.json     # Also check tokens against a tree
  pix validate --preset detailed  # Check a preset before adopting it
  pix validate --json             # Findings as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			cfg := *config.FromContext(ctx)
			if err := naming.apply(cmd, &cfg); err != nil {
				return err
			}

			var issues []issueDisplay
			for _, p := range cfg.Problems() {
				sev := "error"
				if p.Warning {
					sev = "warning"
				}
				issues = append(issues, issueDisplay{Field: p.Field, Message: p.Message, Severity: sev})
			}

			if paramsFile != "" {
				tree, err := loadParams(paramsFile)
				if err != nil {
					return err
				}
				issues = append(issues, tokenIssues(cfg, tree, paramsFile)...)
			}

			if jsonOutput {
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				if issues == nil {
					issues = []issueDisplay{}
				}
				return enc.Encode(issues)
			}

			if len(issues) == 0 {
				out.Printf("%s configuration is valid\n", styles.SuccessStyle.Render(styles.GlyphOK))
				return nil
			}

			errs := 0
			for _, is := range issues {
				glyph := styles.WarningStyle.Render(styles.GlyphWarn)
				if is.Severity == "error" {
					glyph = styles.ErrorStyle.Render(styles.GlyphFail)
					errs++
				}
				out.Printf("%s %s: %s\n", glyph, is.Field, is.Message)
			}
			out.Println()

			if errs > 0 {
				return fmt.Errorf("%d errors, %d warnings", errs, len(issues)-errs)
			}
			out.Printf("%d warnings\n", len(issues))
			return nil
		},
	}

	cmd.Flags().StringVarP(&paramsFile, "params", "p", "", "JSON parameter tree to resolve tokens against")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	naming.register(cmd)

	cmd.RegisterFlagCompletionFunc("params", completeJSONFiles)

	return cmd
}

// tokenIssues reports template tokens that produce no value against
// tree. These are warnings: the same template may be fine for another
// tree.
func tokenIssues(cfg config.Config, tree params.Value, source string) []issueDisplay {
	keys := tree.Keys()
	now := time.Now()

	var issues []issueDisplay
	check := func(field, spec string) {
		for _, r := range template.Resolve(template.ParseList(spec), tree, now) {
			if r.OK {
				continue
			}
			var msg string
			switch r.Token.Kind {
			case template.KindNodeRef:
				msg = fmt.Sprintf("node reference %q has no value in %s", r.Token.Raw, source)
			case template.KindLiteral:
				msg = fmt.Sprintf("no value for %q in %s", r.Token.Raw, source)
				if s := suggestKeys(r.Token.Raw, keys); s != "" {
					msg += fmt.Sprintf(" (did you mean %s?)", s)
				}
			default:
				// Bad date directives are already reported by the
				// static template check.
				continue
			}
			issues = append(issues, issueDisplay{Field: field, Message: msg, Severity: "warning"})
		}
	}

	check("filename_template", cfg.FilenameTemplate)
	check("foldername_template", cfg.FoldernameTemplate)
	return issues
}

// suggestKeys returns up to three quoted near-miss keys for a token, or
// "" when nothing comes close.
func suggestKeys(token string, keys []string) string {
	matches := fuzzy.Find(token, keys)
	if len(matches) > 3 {
		matches = matches[:3]
	}
	quoted := make([]string, 0, len(matches))
	for _, m := range matches {
		quoted = append(quoted, fmt.Sprintf("%q", m.Str))
	}
	return strings.Join(quoted, ", ")
}
