package doctor

// Status classifies a check outcome. Warnings describe degraded but
// workable setups; failures block saving.
type Status string

const (
	StatusOK   Status = "ok"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// FixAction identifies the repair --fix attempts for a check.
type FixAction string

const (
	// FixCreateOutputDir creates the configured output directory.
	FixCreateOutputDir FixAction = "create_output_dir"
	// FixWriteConfig writes the default global config file.
	FixWriteConfig FixAction = "write_config"
)

// Check is the outcome of one diagnostic.
type Check struct {
	Name   string // subject, e.g. "output directory"
	Status Status
	Detail string    // human-readable finding
	Fix    FixAction // empty when nothing can be repaired automatically
}

// Report collects the checks of one doctor run.
type Report struct {
	Checks []Check
}

// Counts tallies the checks by status.
func (r Report) Counts() (ok, warn, fail int) {
	for _, c := range r.Checks {
		switch c.Status {
		case StatusOK:
			ok++
		case StatusWarn:
			warn++
		case StatusFail:
			fail++
		}
	}
	return ok, warn, fail
}

// Fixable returns the checks --fix can attempt to repair.
func (r Report) Fixable() []Check {
	var out []Check
	for _, c := range r.Checks {
		if c.Fix != "" {
			out = append(out, c)
		}
	}
	return out
}

// Outcome is one attempted repair.
type Outcome struct {
	Check  Check
	Detail string // what the repair did, set on success
	Err    error
}
