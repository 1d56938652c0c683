package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"termplay/internal/config"
	"termplay/internal/testsupport"
)

const (
	downloaderStub = `if [ "$1" = "--version" ]; then echo "2024.08.06"; exit 0; fi
for last; do :; done
printf 'video' > "$last.mp4"`
	ffprobeStub = `if [ "$1" = "-version" ]; then echo "ffprobe version 7.0"; exit 0; fi
echo '{"streams":[{"index":0,"codec_type":"video","width":640,"height":360}],"format":{"duration":"1.0"}}'`
	ffmpegStub = `if [ "$1" = "-version" ]; then echo "ffmpeg version 7.0"; exit 0; fi
for last; do :; done
out=$(dirname "$last")
for i in 1 2 3; do : > "$out/$(printf '%06d' $i).png"; done`
	rendererStub = `if [ "$1" = "--version" ]; then echo "Chafa version 1.14.0"; exit 0; fi
for last; do :; done
echo "frame $(basename "$last" .png)"`
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

// setupCLITestEnv writes a config backed by stub tools. Options are applied
// after the default stubs, so a test can replace any of them.
func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	base := []testsupport.ConfigOption{
		testsupport.WithStubScript("yt-dlp", downloaderStub),
		testsupport.WithStubScript("ffprobe", ffprobeStub),
		testsupport.WithStubScript("ffmpeg", ffmpegStub),
		testsupport.WithStubScript("chafa", rendererStub),
	}
	cfg := testsupport.NewConfig(t, append(base, opts...)...)
	baseDir := testsupport.BaseDir(cfg)
	configPath := filepath.Join(baseDir, "config.toml")
	testsupport.WriteConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: baseDir}
}

// rewrite applies mutate to the env's config and writes it back.
func (e *cliTestEnv) rewrite(t *testing.T, mutate func(*config.Config)) {
	t.Helper()
	mutate(e.cfg)
	testsupport.WriteConfig(t, e.configPath, e.cfg)
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	flags = append(flags, "--log-level", "error")
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
