package log

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestNew_Levels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, false, false)
	logger.Debug().Msg("hidden")
	logger.Info().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message logged without verbose")
	}
	if !strings.Contains(out, "shown") {
		t.Error("info message missing")
	}
}

func TestNew_Verbose(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, true, false)
	logger.Debug().Msg("details")

	if !strings.Contains(buf.String(), "details") {
		t.Error("debug message missing with verbose")
	}
}

func TestNew_Quiet(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, false, true)
	logger.Error().Msg("silenced")

	if buf.Len() != 0 {
		t.Errorf("quiet logger wrote output: %q", buf.String())
	}
}

func TestNew_StructuredFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, false, false)
	logger.Warn().Str("dir", "/tmp/out").Msg("scan failed")

	out := buf.String()
	if !strings.Contains(out, `"dir":"/tmp/out"`) {
		t.Errorf("output missing structured field: %q", out)
	}
	if !strings.Contains(out, `"level":"warn"`) {
		t.Errorf("output missing level: %q", out)
	}
}

func TestFromContext_Default(t *testing.T) {
	t.Parallel()

	// Must not panic and must not write anywhere.
	logger := FromContext(context.Background())
	logger.Info().Msg("nowhere")
}

func TestWithLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), New(&buf, false, false))
	logger := FromContext(ctx)
	logger.Info().Msg("carried")

	if !strings.Contains(buf.String(), "carried") {
		t.Error("context logger not used")
	}
}
