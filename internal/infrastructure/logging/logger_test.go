package logging

import (
	"log/slog"
	"testing"

	"github.com/dcollard/maestro/internal/infrastructure/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"DEBUG", slog.LevelDebug},
		{"nonsense", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNew_FormatSelection(t *testing.T) {
	// Both formats should produce a usable logger without panicking.
	for _, format := range []string{"json", "text", ""} {
		log := New(config.LoggingConfig{Level: "error", Format: format, Output: "stderr"}, "test")
		if log == nil {
			t.Fatalf("New() returned nil for format %q", format)
		}
		log.Debug("suppressed at error level")
	}
}

func TestWith_AddsAttributes(t *testing.T) {
	log := New(config.LoggingConfig{Level: "error", Format: "json", Output: "stdout"}, "test")

	child := log.With("component", "test")
	if child == nil {
		t.Fatal("With() returned nil")
	}
	if child == log {
		t.Error("With() should return a new logger")
	}
}

func TestDefault(t *testing.T) {
	if Default() == nil {
		t.Fatal("Default() returned nil")
	}
}
