package logging_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"termplay/internal/logging"
	"termplay/internal/services"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}

func TestConsoleLoggerFormatsComponentAndAttrs(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.NewComponentLogger(logger, "download").Info("starting download", logging.String("video", "abc 123"), logging.Int("attempt", 1))

	content := readLog(t, logPath)
	if !strings.Contains(content, "INFO download: starting download") {
		t.Fatalf("expected component prefix, got %q", content)
	}
	if !strings.Contains(content, `video="abc 123"`) {
		t.Fatalf("expected quoted value, got %q", content)
	}
	if !strings.Contains(content, "attempt=1") {
		t.Fatalf("expected int attr, got %q", content)
	}
	if strings.Contains(content, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", content)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "debug.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("message with caller")

	if content := readLog(t, logPath); !strings.Contains(content, "logger_test.go:") {
		t.Fatalf("expected caller information in debug logs, got %q", content)
	}
}

func TestLevelFiltering(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "warn.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "warn", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")

	content := readLog(t, logPath)
	if strings.Contains(content, "hidden") {
		t.Fatalf("info line should be filtered, got %q", content)
	}
	if !strings.Contains(content, "WARN shown") {
		t.Fatalf("expected warn line, got %q", content)
	}
}

func TestJSONLoggerRenamesKeys(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "json.log")
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Warn("multiple files", logging.Int("count", 2))

	var payload map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(readLog(t, logPath))), &payload); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if payload["level"] != "warn" {
		t.Fatalf("expected lowercase level, got %v", payload["level"])
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", payload)
	}
	if payload["count"] != float64(2) {
		t.Fatalf("expected count attr, got %v", payload["count"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewForRunWritesRunFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	logger, err := logging.NewForRun("info", "console", dir, "run-1")
	if err != nil {
		t.Fatalf("NewForRun returned error: %v", err)
	}
	logger.Info("hello")
	if content := readLog(t, filepath.Join(dir, "termplay-run-1.log")); !strings.Contains(content, "hello") {
		t.Fatalf("expected run log to contain message, got %q", content)
	}
}

func TestWithContextAddsFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "ctx.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx := services.WithRequestID(context.Background(), "run-42")
	ctx = services.WithStage(ctx, "locate")
	logging.WithContext(ctx, logger).Info("scan")

	content := readLog(t, logPath)
	for _, want := range []string{"stage=locate", "correlation_id=run-42"} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in %q", want, content)
		}
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "warn-ctx.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.WarnWithContext(logger, "ambiguous", "artifact_ambiguous", logging.String(logging.FieldImpact, "first file used"))

	content := readLog(t, logPath)
	for _, want := range []string{"event_type=artifact_ambiguous", `impact="first file used"`, "error_hint="} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in %q", want, content)
		}
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), 0) {
		t.Fatal("expected nop logger to be disabled")
	}
	logging.WarnWithContext(nil, "ignored", "noop")
}
