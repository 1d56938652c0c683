package download

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tool")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestCommandExecutorRunsInDirectory(t *testing.T) {
	dir := t.TempDir()
	tool := writeScript(t, `touch "$3.mp4"`)

	code, err := commandExecutor{}.Run(context.Background(), dir, tool, []string{"--format", "best", "abc123"})
	if err != nil || code != 0 {
		t.Fatalf("Run = (%d, %v)", code, err)
	}
	if _, err := os.Stat(filepath.Join(dir, "abc123.mp4")); err != nil {
		t.Fatalf("expected artifact in working directory: %v", err)
	}
}

func TestCommandExecutorReportsExitStatus(t *testing.T) {
	code, err := commandExecutor{}.Run(context.Background(), t.TempDir(), writeScript(t, "exit 3"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != 3 {
		t.Fatalf("expected exit status 3, got %d", code)
	}
}

func TestCommandExecutorReportsSignal(t *testing.T) {
	code, err := commandExecutor{}.Run(context.Background(), t.TempDir(), writeScript(t, "kill -TERM $$"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != 128+15 {
		t.Fatalf("expected 143 for SIGTERM, got %d", code)
	}
}

func TestCommandExecutorSpawnFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing-tool")
	if _, err := (commandExecutor{}).Run(context.Background(), t.TempDir(), missing, nil); err == nil {
		t.Fatal("expected spawn error for missing binary")
	}
}

func TestExitStatusNil(t *testing.T) {
	if code, err := exitStatus(nil); code != 0 || err != nil {
		t.Fatalf("exitStatus(nil) = (%d, %v)", code, err)
	}
}
