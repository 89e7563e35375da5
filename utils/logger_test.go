package utils

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultLogConfig()
	cfg.Output = &buf
	cfg.Format = "json"
	logger, closer, err := NewLogger(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer closer.Close()

	logger.Info("hidden")
	logger.Warn("shown", "file", "a.cl")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record passed warn level: %s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"file":"a.cl"`) {
		t.Errorf("output = %s", out)
	}
}

func TestNewLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coolfe.log")
	cfg := DefaultLogConfig()
	cfg.LogFile = path
	logger, closer, err := NewLogger(cfg)
	if err != nil {
		t.Fatal(err)
	}
	logger.Error("to file")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file = %q", data)
	}
}

func TestNewLoggerErrors(t *testing.T) {
	cfg := DefaultLogConfig()
	cfg.Format = "xml"
	if _, _, err := NewLogger(cfg); err == nil {
		t.Error("expected error for unknown format")
	}
	cfg = DefaultLogConfig()
	cfg.Level = "loud"
	if _, _, err := NewLogger(cfg); err == nil {
		t.Error("expected error for unknown level")
	}
}
