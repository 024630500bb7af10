package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/raphi011/pix/internal/config"
	"github.com/raphi011/pix/internal/counter"
	"github.com/raphi011/pix/internal/history"
	"github.com/raphi011/pix/internal/name"
)

// checkConfigFile reports whether the global config file loaded. A
// missing file at the default location is fixable; a missing --config
// path is not, since writing the default there could surprise scripts.
func checkConfigFile(env Env) Check {
	path := env.ConfigPath
	global := path == ""
	if global {
		p, err := config.Path()
		if err != nil {
			return Check{Name: "config file", Status: StatusFail, Detail: fmt.Sprintf("cannot locate: %v", err)}
		}
		path = p
	}

	if env.ConfigErr != nil {
		return Check{Name: "config file", Status: StatusFail, Detail: env.ConfigErr.Error()}
	}

	if _, err := os.Stat(path); err != nil {
		c := Check{Name: "config file", Status: StatusWarn, Detail: path + " not found, using defaults"}
		if global {
			c.Fix = FixWriteConfig
		}
		return c
	}
	return Check{Name: "config file", Status: StatusOK, Detail: "loaded " + path}
}

// checkLocalConfig reports a .pix.toml override in the working directory.
// No check is emitted when there is none.
func checkLocalConfig(env Env) (Check, bool) {
	if env.WorkDir == "" {
		return Check{}, false
	}
	local, err := config.LoadLocal(env.WorkDir)
	if err != nil {
		return Check{Name: "local config", Status: StatusFail, Detail: err.Error()}, true
	}
	if local == nil {
		return Check{}, false
	}
	path := filepath.Join(env.WorkDir, config.LocalConfigFileName)
	return Check{Name: "local config", Status: StatusOK, Detail: "overrides loaded from " + path}, true
}

// checkSettings maps every config problem to a check, one per finding.
func checkSettings(cfg config.Config) []Check {
	ps := cfg.Problems()
	if len(ps) == 0 {
		return []Check{{Name: "settings", Status: StatusOK, Detail: "all values valid"}}
	}

	checks := make([]Check, 0, len(ps))
	for _, p := range ps {
		status := StatusFail
		if p.Warning {
			status = StatusWarn
		}
		checks = append(checks, Check{Name: p.Field, Status: status, Detail: p.Message})
	}
	return checks
}

// checkOutputDir verifies the output directory exists and takes writes.
// The probe file is removed again.
func checkOutputDir(dir string) Check {
	info, err := os.Stat(dir)
	if err != nil {
		return Check{
			Name:   "output directory",
			Status: StatusWarn,
			Detail: dir + " does not exist yet, created on first save",
			Fix:    FixCreateOutputDir,
		}
	}
	if !info.IsDir() {
		return Check{Name: "output directory", Status: StatusFail, Detail: dir + " is a file, not a directory"}
	}

	probe, err := os.CreateTemp(dir, ".pix-doctor-*")
	if err != nil {
		return Check{Name: "output directory", Status: StatusFail, Detail: fmt.Sprintf("%s is not writable: %v", dir, err)}
	}
	probe.Close()
	os.Remove(probe.Name())

	return Check{Name: "output directory", Status: StatusOK, Detail: dir + " is writable"}
}

// checkCounterScan runs the cold-start directory scan and reports the
// counter the next save would claim. A throwaway registry keeps the dry
// run from advancing any live series.
func checkCounterScan(ctx context.Context, cfg config.Config) Check {
	pos, err := name.ParsePosition(cfg.CounterPosition)
	if err != nil {
		return Check{Name: "counter scan", Status: StatusWarn, Detail: "skipped, counter_position is invalid"}
	}
	if cfg.CounterDigits < 1 || cfg.CounterDigits > 8 {
		return Check{Name: "counter scan", Status: StatusWarn, Detail: "skipped, counter_digits is invalid"}
	}
	key, err := counter.NewKey(cfg.OutputDir, pos, cfg.Format, cfg.Prefix, cfg.PerDirectoryCounter)
	if err != nil {
		return Check{Name: "counter scan", Status: StatusWarn, Detail: fmt.Sprintf("skipped: %v", err)}
	}

	n := counter.New().Next(ctx, key, cfg.CounterDigits)
	return Check{
		Name:   "counter scan",
		Status: StatusOK,
		Detail: fmt.Sprintf("next counter in %s would be %0*d", key.Dir, cfg.CounterDigits, n),
	}
}

// checkHistory reports the state of the history file. An unreadable file
// is a warning: the next save replaces it.
func checkHistory(path string) Check {
	if path == "" {
		p, err := history.DefaultPath()
		if err != nil {
			return Check{Name: "history", Status: StatusWarn, Detail: fmt.Sprintf("cannot locate history file: %v", err)}
		}
		path = p
	}

	h, err := history.Load(path)
	if err != nil {
		return Check{Name: "history", Status: StatusWarn, Detail: fmt.Sprintf("unreadable, replaced on next save: %v", err)}
	}
	switch n := len(h.Entries); n {
	case 0:
		return Check{Name: "history", Status: StatusOK, Detail: "empty"}
	case 1:
		return Check{Name: "history", Status: StatusOK, Detail: "1 entry"}
	default:
		return Check{Name: "history", Status: StatusOK, Detail: fmt.Sprintf("%d entries", n)}
	}
}
