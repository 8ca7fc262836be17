package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"DBG", slog.LevelDebug, true},
		{"warn", slog.LevelWarn, true},
		{"err", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		got, ok := levelFromString(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("levelFromString(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestInitLoggerWritesFile(t *testing.T) {
	previous := slog.Default()
	defer slog.SetDefault(previous)

	path := filepath.Join(t.TempDir(), "nested", "jacarex.log")
	f, err := InitLogger(path, "debug")
	if err != nil {
		t.Fatalf("InitLogger failed: %v", err)
	}

	slog.Debug("hello", "key", "value")
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), "msg=hello key=value") {
		t.Errorf("Expected log entry, got %q", data)
	}
}
