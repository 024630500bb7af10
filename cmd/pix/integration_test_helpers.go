//go:build integration

package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/raphi011/pix/internal/config"
	"github.com/raphi011/pix/internal/log"
	"github.com/raphi011/pix/internal/output"
)

// testContext returns a context with a discarded logger and a printer
// capturing into the returned buffer. Commands under test are executed
// standalone, so the root command's PersistentPreRunE wiring is
// recreated here.
func testContext(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	ctx := context.Background()
	ctx = log.WithLogger(ctx, log.New(io.Discard, false, true))
	ctx = output.WithPrinter(ctx, &buf)
	return ctx, &buf
}

// testContextWithConfig additionally attaches cfg as the effective
// config.
func testContextWithConfig(t *testing.T, cfg *config.Config) (context.Context, *bytes.Buffer) {
	t.Helper()

	ctx, buf := testContext(t)
	return config.WithConfig(ctx, cfg), buf
}

// testConfig returns a valid config saving into a fresh temp dir, with
// history off so tests never touch ~/.pix.
func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.OutputDir = filepath.Join(t.TempDir(), "output")
	cfg.FilenameTemplate = "sampler_name, steps"
	cfg.FoldernameTemplate = ""
	cfg.History = false
	return &cfg
}

// testPNG writes a tiny PNG to path and returns path.
func testPNG(t *testing.T, path string) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 200, G: 40, B: 40, A: 255})
	img.Set(1, 1, color.RGBA{B: 200, A: 255})

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return path
}

// testParams writes a small KSampler prompt tree and returns its path.
func testParams(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "prompt.json")
	data := `{
		"3": {"class_type": "KSampler", "inputs": {"seed": 42, "steps": 20, "cfg": 7.5, "sampler_name": "euler"}},
		"4": {"class_type": "CheckpointLoaderSimple", "inputs": {"ckpt_name": "dreamshaper_8.safetensors"}}
	}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write params: %v", err)
	}
	return path
}
