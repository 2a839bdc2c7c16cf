package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestFor_TagsComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := Setup("debug", "text", &buf); err != nil {
		t.Fatalf("Setup: %v", err)
	}

	For(ComponentServer).Info("listening")

	output := buf.String()
	if !strings.Contains(output, "component=server") {
		t.Errorf("expected component=server in output, got: %s", output)
	}
	if !strings.Contains(output, "listening") {
		t.Errorf("expected message in output, got: %s", output)
	}
}

func TestSetup_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Setup("info", "JSON", &buf); err != nil {
		t.Fatalf("Setup: %v", err)
	}

	For(ComponentTriage).Info("triage complete")

	if !strings.Contains(buf.String(), `"level":"INFO"`) {
		t.Errorf("expected JSON level in output, got: %s", buf.String())
	}
	if !strings.Contains(buf.String(), `"component":"triage"`) {
		t.Errorf("expected JSON component in output, got: %s", buf.String())
	}
}

func TestSetup_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	if err := Setup("warn", "", &buf); err != nil {
		t.Fatalf("Setup: %v", err)
	}

	For(ComponentRetry).Info("should not appear")
	if buf.Len() != 0 {
		t.Errorf("expected info to be filtered at warn level, got: %s", buf.String())
	}
}

func TestSetup_RejectsBadFlags(t *testing.T) {
	if err := Setup("loud", "text", &bytes.Buffer{}); err == nil {
		t.Error("expected error for unknown level")
	}
	if err := Setup("info", "xml", &bytes.Buffer{}); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil {
			t.Errorf("ParseLevel(%q) unexpected error: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
