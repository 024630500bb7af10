package doctor

import (
	"errors"
	"os"

	"github.com/raphi011/pix/internal/config"
)

// Apply attempts the repair of every fixable check in r, in report order.
func Apply(env Env, r Report) []Outcome {
	var out []Outcome
	for _, c := range r.Fixable() {
		detail, err := applyFix(env, c.Fix)
		out = append(out, Outcome{Check: c, Detail: detail, Err: err})
	}
	return out
}

func applyFix(env Env, action FixAction) (string, error) {
	switch action {
	case FixCreateOutputDir:
		if err := os.MkdirAll(env.Config.OutputDir, 0o755); err != nil {
			return "", err
		}
		return "created " + env.Config.OutputDir, nil
	case FixWriteConfig:
		path, err := config.Init(false)
		if err != nil {
			return "", err
		}
		return "wrote " + path, nil
	default:
		return "", errors.New("no automatic repair for this check")
	}
}
