package doctor

import (
	"context"

	"github.com/raphi011/pix/internal/config"
)

// Env is the environment one doctor run inspects. The command layer fills
// it from whatever config loading produced, load errors included, so
// doctor still runs with a broken config file.
type Env struct {
	// Config is the effective (merged) configuration.
	Config config.Config
	// ConfigPath is the global config file path; empty means the default
	// ~/.pix/config.toml.
	ConfigPath string
	// ConfigErr is the config load failure, nil when the file loaded or
	// does not exist.
	ConfigErr error
	// WorkDir is where the local .pix.toml override is looked up. Empty
	// skips the local check.
	WorkDir string
	// HistoryPath overrides the history file location, for tests.
	HistoryPath string
}

// Run executes all checks in a fixed order and never fails; problems are
// reported as check results.
func Run(ctx context.Context, env Env) Report {
	var checks []Check

	checks = append(checks, checkConfigFile(env))
	if c, ok := checkLocalConfig(env); ok {
		checks = append(checks, c)
	}
	checks = append(checks, checkSettings(env.Config)...)
	checks = append(checks, checkOutputDir(env.Config.OutputDir))
	checks = append(checks, checkCounterScan(ctx, env.Config))
	checks = append(checks, checkHistory(env.HistoryPath))

	return Report{Checks: checks}
}
