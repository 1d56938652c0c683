package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"termplay/internal/config"
)

func TestLoadDefaultConfigWhenAbsent(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(tempHome, ".config", "termplay", "config.toml"); resolved != want {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, want)
	}
	if cfg.Download.Binary != "yt-dlp" {
		t.Fatalf("unexpected download binary: %q", cfg.Download.Binary)
	}
	if cfg.Playback.Rate != 24 || cfg.Playback.Ratio != 2 {
		t.Fatalf("unexpected playback defaults: %+v", cfg.Playback)
	}
	if cfg.Playback.Converter != "truecolor" {
		t.Fatalf("unexpected converter: %q", cfg.Playback.Converter)
	}
	if cfg.Terminal.AlternateScreen != config.AlternateScreenAuto {
		t.Fatalf("unexpected alternate screen policy: %q", cfg.Terminal.AlternateScreen)
	}
	if !cfg.Workspace.SweepOnStart {
		t.Fatal("expected sweep on start by default")
	}
	if cfg.WorkspaceRoot() != os.TempDir() {
		t.Fatalf("expected temp dir workspace root, got %q", cfg.WorkspaceRoot())
	}
	if cfg.ProbeTimeout().Seconds() != 10 {
		t.Fatalf("unexpected probe timeout: %v", cfg.ProbeTimeout())
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	configPath := filepath.Join(t.TempDir(), "termplay.toml")

	type payload struct {
		Paths struct {
			WorkspaceRoot string `toml:"workspace_root"`
		} `toml:"paths"`
		Download struct {
			Binary    string   `toml:"binary"`
			ExtraArgs []string `toml:"extra_args"`
		} `toml:"download"`
		Playback struct {
			Rate      int    `toml:"rate"`
			Converter string `toml:"converter"`
		} `toml:"playback"`
	}
	custom := payload{}
	custom.Paths.WorkspaceRoot = "~/scratch"
	custom.Download.Binary = "youtube-dl"
	custom.Download.ExtraArgs = []string{" --no-playlist ", ""}
	custom.Playback.Rate = 12
	custom.Playback.Converter = "ASCII"

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected custom config to be used, got %q exists=%v", resolved, exists)
	}
	if cfg.Paths.WorkspaceRoot != filepath.Join(tempHome, "scratch") {
		t.Fatalf("expected expanded workspace root, got %q", cfg.Paths.WorkspaceRoot)
	}
	if cfg.Download.Binary != "youtube-dl" {
		t.Fatalf("unexpected download binary %q", cfg.Download.Binary)
	}
	if len(cfg.Download.ExtraArgs) != 1 || cfg.Download.ExtraArgs[0] != "--no-playlist" {
		t.Fatalf("unexpected extra args %q", cfg.Download.ExtraArgs)
	}
	if cfg.Playback.Rate != 12 {
		t.Fatalf("unexpected rate %d", cfg.Playback.Rate)
	}
	if cfg.Playback.Converter != "ascii" {
		t.Fatalf("expected lowercased converter, got %q", cfg.Playback.Converter)
	}
	if cfg.Playback.Ratio != 2 {
		t.Fatalf("expected default ratio to survive partial file, got %d", cfg.Playback.Ratio)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(configPath, []byte("[playback\nrate = 1"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestCreateSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(target)
	if err != nil {
		t.Fatalf("sample config should load cleanly: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	defaults := config.Default()
	if cfg.Download.Binary != defaults.Download.Binary || cfg.Render.Binary != defaults.Render.Binary {
		t.Fatalf("sample config diverges from defaults: %+v", cfg)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"empty downloader", func(c *config.Config) { c.Download.Binary = "" }, "download.binary"},
		{"empty ffmpeg", func(c *config.Config) { c.FFmpeg.Binary = "" }, "ffmpeg.binary"},
		{"empty ffprobe", func(c *config.Config) { c.FFmpeg.FFprobeBinary = "" }, "ffmpeg.ffprobe_binary"},
		{"empty renderer", func(c *config.Config) { c.Render.Binary = "" }, "render.binary"},
		{"negative workers", func(c *config.Config) { c.Render.Workers = -1 }, "render.workers"},
		{"zero rate", func(c *config.Config) { c.Playback.Rate = 0 }, "playback.rate"},
		{"zero ratio", func(c *config.Config) { c.Playback.Ratio = 0 }, "playback.ratio"},
		{"bad converter", func(c *config.Config) { c.Playback.Converter = "sixel" }, "playback.converter"},
		{"bad alternate screen", func(c *config.Config) { c.Terminal.AlternateScreen = "sometimes" }, "terminal.alternate_screen"},
		{"zero stale age", func(c *config.Config) { c.Workspace.StaleAfterHours = 0 }, "workspace.stale_after_hours"},
		{"zero probe timeout", func(c *config.Config) { c.Preflight.ProbeTimeoutSeconds = 0 }, "preflight.probe_timeout_seconds"},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"bad log level", func(c *config.Config) { c.Logging.Level = "trace" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected validation error containing %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected %q in %q", tt.want, err.Error())
			}
		})
	}

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}
