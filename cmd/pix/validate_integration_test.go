//go:build integration

package main

import (
	"encoding/json"
	"strings"
	"testing"
)

// TestValidate_CleanConfig passes a valid configuration.
//
// Scenario: User runs `pix validate` with default settings
// Expected: A success line, exit zero
func TestValidate_CleanConfig(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	ctx, out := testContextWithConfig(t, cfg)

	cmd := newValidateCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out.String(), "configuration is valid") {
		t.Errorf("output %q missing the success line", out.String())
	}
}

// TestValidate_BrokenConfig fails on invalid values.
//
// Scenario: User runs `pix validate` with quality 0 in the config
// Expected: The quality error is reported and the command exits nonzero
func TestValidate_BrokenConfig(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Quality = 0
	ctx, out := testContextWithConfig(t, cfg)

	cmd := newValidateCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error for an invalid config")
	}
	if !strings.Contains(out.String(), "quality") {
		t.Errorf("output %q missing the quality finding", out.String())
	}
}

// TestValidate_FlagOverride validates the overridden value, not the
// config one.
//
// Scenario: User runs `pix validate --quality 0` on a clean config
// Expected: The override is what gets validated, so the command fails
func TestValidate_FlagOverride(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	ctx, _ := testContextWithConfig(t, cfg)

	cmd := newValidateCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"--quality", "0"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected the quality override to fail validation")
	}
}

// TestValidate_TokenSuggestions suggests near-miss keys from the tree.
//
// Scenario: User runs `pix validate -p prompt.json` with a typo token
// Expected: A warning with a did-you-mean suggestion, exit zero
func TestValidate_TokenSuggestions(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.FilenameTemplate = "sampler_nam, steps"
	ctx, out := testContextWithConfig(t, cfg)
	paramsFile := testParams(t, t.TempDir())

	cmd := newValidateCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"-p", paramsFile})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("warnings must not exit nonzero: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "sampler_nam") {
		t.Fatalf("output %q missing the unresolved token", got)
	}
	if !strings.Contains(got, "sampler_name") {
		t.Errorf("output %q missing the suggestion", got)
	}
}

// TestValidate_JSON outputs findings as JSON.
//
// Scenario: User runs `pix validate --json` with a warning-only config
// Expected: Valid JSON findings with field, message and severity
func TestValidate_JSON(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Delimiter = "_"
	ctx, out := testContextWithConfig(t, cfg)

	cmd := newValidateCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"--json"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("validate failed: %v", err)
	}

	var findings []issueDisplay
	if err := json.Unmarshal(out.Bytes(), &findings); err != nil {
		t.Fatalf("invalid JSON %q: %v", out.String(), err)
	}
	found := false
	for _, f := range findings {
		if f.Field == "delimiter" && f.Severity == "warning" {
			found = true
		}
	}
	if !found {
		t.Errorf("findings %+v missing the delimiter warning", findings)
	}
}
