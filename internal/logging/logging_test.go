package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{" warn ", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "citybuddy.log")

	logger, err := New(Options{Level: "debug", File: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Debug("geocode cache miss")
	logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "geocode cache miss") {
		t.Errorf("log file = %s, want message", data)
	}
	if !strings.Contains(string(data), `"logger":"citybuddy"`) {
		t.Errorf("log file = %s, want named logger", data)
	}
}

func TestNew_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "citybuddy.log")

	logger, err := New(Options{Level: "error", File: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("should be dropped")
	logger.Sync()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "should be dropped") {
		t.Errorf("info message logged at error level: %s", data)
	}
}
