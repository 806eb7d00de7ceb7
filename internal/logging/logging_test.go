package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestInitSetsDefaultLevel(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	Init(false, slog.LevelWarn)

	ctx := context.Background()
	if slog.Default().Enabled(ctx, slog.LevelInfo) {
		t.Error("info enabled after Init at warn level")
	}
	if !slog.Default().Enabled(ctx, slog.LevelWarn) {
		t.Error("warn not enabled after Init at warn level")
	}
}

func TestInitJSONSetsDefaultLevel(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	Init(true, slog.LevelDebug)

	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug not enabled after Init at debug level")
	}
}
