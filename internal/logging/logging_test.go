package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelWarn},
		{"verbose", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNew_TextFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer

	log := New(Options{Level: "info", Writer: &buf})
	log.Debug("hidden")
	log.Info("shown", "model", "res.partner")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug record should be filtered:\n%s", out)
	}

	for _, want := range []string{"level=INFO", "msg=shown", "model=res.partner"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer

	New(Options{Level: "debug", Format: "json", Writer: &buf}).Debug("hello", "k", "v")

	if !strings.Contains(buf.String(), `"msg":"hello"`) || !strings.Contains(buf.String(), `"k":"v"`) {
		t.Fatalf("unexpected JSON output: %s", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	// must not panic and must not be enabled for errors
	log := Discard()
	log.Error("nothing")

	if log.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("Discard logger should not be enabled")
	}
}
