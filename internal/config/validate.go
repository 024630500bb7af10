package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/raphi011/pix/internal/encode"
	"github.com/raphi011/pix/internal/sanitize"
	"github.com/raphi011/pix/internal/template"
)

// Valid enum values for configuration fields.
var (
	ValidCounterPositions = []string{"first", "last"}
	ValidJobDataModes     = []string{"off", "basic", "full"}
)

// Problem is one configuration defect. Warnings don't prevent saving;
// errors do.
type Problem struct {
	Field   string
	Message string
	Warning bool
}

func (p Problem) String() string {
	kind := "error"
	if p.Warning {
		kind = "warning"
	}
	return fmt.Sprintf("%s: %s: %s", kind, p.Field, p.Message)
}

// HasErrors reports whether any problem is error-level.
func HasErrors(ps []Problem) bool {
	for _, p := range ps {
		if !p.Warning {
			return true
		}
	}
	return false
}

// Problems validates the config and reports everything wrong with it, in
// a stable order. Used by validate and doctor; the pipeline independently
// rejects the error-level subset.
func (c Config) Problems() []Problem {
	var ps []Problem

	if c.Quality < 1 || c.Quality > 100 {
		ps = append(ps, Problem{Field: "quality", Message: fmt.Sprintf("must be between 1 and 100, got %d", c.Quality)})
	}
	if c.CounterDigits < 1 || c.CounterDigits > 8 {
		ps = append(ps, Problem{Field: "counter_digits", Message: fmt.Sprintf("must be between 1 and 8, got %d", c.CounterDigits)})
	}
	if !slices.Contains(ValidCounterPositions, c.CounterPosition) {
		ps = append(ps, Problem{Field: "counter_position", Message: fmt.Sprintf("invalid value %q: must be %s", c.CounterPosition, formatOptions(ValidCounterPositions))})
	}
	if !slices.Contains(ValidJobDataModes, c.JobData) {
		ps = append(ps, Problem{Field: "job_data", Message: fmt.Sprintf("invalid value %q: must be %s", c.JobData, formatOptions(ValidJobDataModes))})
	}
	if _, ok := encode.ByExt(c.Format); !ok {
		ps = append(ps, Problem{Field: "format", Message: fmt.Sprintf("unsupported format %q: supported formats are %s", c.Format, strings.Join(encode.Exts(), " "))})
	}

	switch {
	case c.Delimiter == "":
		ps = append(ps, Problem{Field: "delimiter", Message: "empty delimiter makes name parts and counters run together", Warning: true})
	case len(c.Delimiter) > 3:
		ps = append(ps, Problem{Field: "delimiter", Message: fmt.Sprintf("%q is unusually long, 1-3 characters recommended", c.Delimiter), Warning: true})
	}
	if c.Delimiter != "-" && c.Delimiter != "" {
		ps = append(ps, Problem{Field: "delimiter", Message: fmt.Sprintf("counter scans only recognize \"-\" before the counter; files already named with %q will not seed a cold counter", c.Delimiter), Warning: true})
	}

	if s := sanitize.Segment(c.Prefix); s != c.Prefix {
		ps = append(ps, Problem{Field: "prefix", Message: fmt.Sprintf("%q contains characters that are not filename-safe (a sanitized segment would be %q)", c.Prefix, s), Warning: true})
	}

	for _, tpl := range []struct{ field, spec string }{
		{"filename_template", c.FilenameTemplate},
		{"foldername_template", c.FoldernameTemplate},
	} {
		for _, p := range template.Check(tpl.spec) {
			ps = append(ps, Problem{
				Field:   tpl.field,
				Message: fmt.Sprintf("token %q: %s", p.Token, p.Message),
				Warning: p.Severity == template.Warn,
			})
		}
	}

	return ps
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
