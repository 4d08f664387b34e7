package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewTestLogger(t *testing.T) {
	logger, buf := NewTestLogger()

	logger.Info("hello", "key", "value")

	output := buf.String()
	if !strings.Contains(output, "hello") {
		t.Errorf("Expected log output to contain 'hello', got: %s", output)
	}
	if !strings.Contains(output, "key") {
		t.Errorf("Expected log output to contain the key, got: %s", output)
	}
}

func TestNew_LevelParsing(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantError bool
	}{
		{name: "debug", level: "debug"},
		{name: "info", level: "info"},
		{name: "warn", level: "warn"},
		{name: "warning alias", level: "warning"},
		{name: "error", level: "error"},
		{name: "empty defaults to info", level: ""},
		{name: "mixed case", level: "DEBUG"},
		{name: "unknown level", level: "verbose", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New("test", tt.level, "")
			if tt.wantError {
				if err == nil {
					t.Fatalf("expected error for level %q", tt.level)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if logger == nil {
				t.Fatal("expected a logger")
			}
		})
	}
}

func TestNew_LogFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "server.log")

	logger, err := New("test", "info", logFile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Info("written to file")

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("expected log file to contain message, got: %s", data)
	}
}

func TestNew_LogFileUnwritable(t *testing.T) {
	_, err := New("test", "info", filepath.Join(t.TempDir(), "missing", "server.log"))
	if err == nil {
		t.Fatal("expected error for unwritable log file path")
	}
}

func TestDebug_SuppressedAboveDebugLevel(t *testing.T) {
	logger, buf := NewTestLogger()
	logger.logger.SetLevel(log.WarnLevel)

	logger.Debug("should not appear")

	if strings.Contains(buf.String(), "should not appear") {
		t.Errorf("expected debug message to be suppressed, got: %s", buf.String())
	}
}
