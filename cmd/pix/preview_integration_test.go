//go:build integration

package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestPreview_PrintsPath previews the next save without writing.
//
// Scenario: User runs `pix preview -p prompt.json`
// Expected: The next path is printed and nothing is written to disk
func TestPreview_PrintsPath(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	ctx, out := testContextWithConfig(t, cfg)
	paramsFile := testParams(t, t.TempDir())

	cmd := newPreviewCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"-p", paramsFile})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("preview failed: %v", err)
	}

	want := filepath.Join(cfg.OutputDir, "pix-euler-20-0001.png")
	if got := strings.TrimSpace(out.String()); got != want {
		t.Errorf("preview printed %q, want %q", got, want)
	}
	if _, err := os.Stat(cfg.OutputDir); !os.IsNotExist(err) {
		t.Error("preview must not create the output dir")
	}
}

// TestPreview_UnresolvedTokensVisible renders unresolved tokens as
// placeholders.
//
// Scenario: User runs `pix preview` without a params file
// Expected: Template tokens show as [token] instead of disappearing
func TestPreview_UnresolvedTokensVisible(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	ctx, out := testContextWithConfig(t, cfg)

	cmd := newPreviewCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("preview failed: %v", err)
	}

	if !strings.Contains(out.String(), "[sampler_name]") {
		t.Errorf("output %q should show the unresolved token placeholder", out.String())
	}
}

// TestPreview_JSON reports unresolved tokens in the JSON result.
//
// Scenario: User runs `pix preview --json` without a params file
// Expected: Valid JSON listing the unresolved tokens
func TestPreview_JSON(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	ctx, out := testContextWithConfig(t, cfg)

	cmd := newPreviewCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"--json"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("preview failed: %v", err)
	}

	var res saveDisplay
	if err := json.Unmarshal(out.Bytes(), &res); err != nil {
		t.Fatalf("invalid JSON %q: %v", out.String(), err)
	}
	if len(res.Files) != 1 {
		t.Fatalf("Files = %v, want one entry", res.Files)
	}
	if len(res.Unresolved) == 0 {
		t.Error("expected unresolved tokens without a params file")
	}
}

// TestPreview_PresetOverride previews with a preset applied.
//
// Scenario: User runs `pix preview --preset minimal`
// Expected: The minimal preset's timestamp-only name shape is used
func TestPreview_PresetOverride(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	ctx, out := testContextWithConfig(t, cfg)

	cmd := newPreviewCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"--preset", "minimal"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("preview failed: %v", err)
	}

	got := strings.TrimSpace(out.String())
	if strings.Contains(got, "[") {
		t.Errorf("minimal preset should resolve fully, got %q", got)
	}
	if !strings.HasPrefix(got, cfg.OutputDir) {
		t.Errorf("preview %q should be under %q", got, cfg.OutputDir)
	}
}
