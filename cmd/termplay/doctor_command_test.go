package main

import (
	"errors"
	"testing"

	"termplay/internal/config"
	"termplay/internal/services"
)

func TestDoctorReportsReadyTools(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"doctor"}, env.configPath)
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	requireContains(t, out, "== Tools ==")
	requireContains(t, out, "Downloader")
	requireContains(t, out, "2024.08.06")
	requireContains(t, out, "Ready (command: chafa)")
	requireContains(t, out, "PURPOSE")
	requireContains(t, out, "Required for fetching videos")
	requireContains(t, out, "Workspace root")
	requireContains(t, out, "truecolor (True Color)")
}

func TestDoctorFailsWhenToolMissing(t *testing.T) {
	env := setupCLITestEnv(t)
	env.rewrite(t, func(cfg *config.Config) {
		cfg.Render.Binary = "termplay-missing-renderer"
	})

	out, _, err := runCLI(t, []string{"doctor"}, env.configPath)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	requireContains(t, out, "[ERROR]")
	requireContains(t, out, "Missing tools")
	requireContains(t, out, "Renderer")
}
