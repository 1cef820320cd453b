package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func capture(t *testing.T, v bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(v)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	if IsVerbose() {
		t.Error("expected verbose to be false initially")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be true after SetVerbose(true)")
	}
}

func TestDebug_WhenVerbose(t *testing.T) {
	buf := capture(t, true)

	Debug("fetched %d cards", 3)

	if got := buf.String(); got != "[DEBUG] fetched 3 cards\n" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestDebugAndInfo_WhenQuiet(t *testing.T) {
	buf := capture(t, false)

	Debug("hidden")
	Info("hidden")
	Section("hidden")

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestWarnAndError_AlwaysPrinted(t *testing.T) {
	buf := capture(t, false)

	Warn("lookup batch %d failed", 2)
	Error("boom")

	out := buf.String()
	if !strings.Contains(out, "[WARN] lookup batch 2 failed") {
		t.Errorf("missing warning in %q", out)
	}
	if !strings.Contains(out, "[ERROR] boom") {
		t.Errorf("missing error in %q", out)
	}
}

func TestSection_WhenVerbose(t *testing.T) {
	buf := capture(t, true)

	Section("Hydration")

	if !strings.Contains(buf.String(), "=== Hydration ===") {
		t.Errorf("unexpected output %q", buf.String())
	}
}
