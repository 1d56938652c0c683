package artifact

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"termplay/internal/logging"
	"termplay/internal/services"
	"termplay/internal/testsupport"
)

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	testsupport.WriteArtifact(t, dir, name, 4)
}

func TestLocateSingleFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "abc123.mp4")

	found, err := Locate(dir, logging.NewNop())
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if found.Name != "abc123.mp4" || found.Path != filepath.Join(dir, "abc123.mp4") {
		t.Fatalf("unexpected artifact %+v", found)
	}
	if found.Size != 4 {
		t.Fatalf("expected size 4, got %d", found.Size)
	}
}

func TestLocateEmptyDirectory(t *testing.T) {
	_, err := Locate(t.TempDir(), logging.NewNop())
	if !errors.Is(err, ErrNoArtifact) {
		t.Fatalf("expected ErrNoArtifact, got %v", err)
	}
	if services.ExitCode(err) != services.ExitFailure {
		t.Fatalf("expected generic failure code, got %d", services.ExitCode(err))
	}
}

func TestLocateUnreadableDirectory(t *testing.T) {
	_, err := Locate(filepath.Join(t.TempDir(), "missing"), logging.NewNop())
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected underlying not-exist error, got %v", err)
	}
}

func TestLocateMultipleFilesWarnsAndPicksFirst(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.webm")
	writeFile(t, dir, "a.mp4")
	writeFile(t, dir, "c.m4a")

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	found, err := Locate(dir, logger)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if found.Name != "a.mp4" {
		t.Fatalf("expected first entry by name, got %q", found.Name)
	}
	logs := buf.String()
	if !strings.Contains(logs, "level=WARN") || !strings.Contains(logs, "artifact_ambiguous") {
		t.Fatalf("expected ambiguity warning, got logs:\n%s", logs)
	}
	if !strings.Contains(logs, "count=3") {
		t.Fatalf("expected entry count in warning, got logs:\n%s", logs)
	}
}

func TestLocateSingleFileDoesNotWarn(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "abc123.mp4")

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	if _, err := Locate(dir, logger); err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if strings.Contains(buf.String(), "level=WARN") {
		t.Fatalf("unexpected warning: %s", buf.String())
	}
}
