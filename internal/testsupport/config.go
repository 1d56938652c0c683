package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"termplay/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.WorkspaceRoot = filepath.Join(base, "workspaces")
	cfgVal.Terminal.AlternateScreen = config.AlternateScreenNever
	cfgVal.Workspace.SweepOnStart = false
	cfgVal.Render.Workers = 2
	if err := os.MkdirAll(cfgVal.Paths.WorkspaceRoot, 0o755); err != nil {
		t.Fatalf("mkdir workspace root: %v", err)
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithLogDir enables per-run log files under the config's base directory.
func WithLogDir() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Logging.Dir = filepath.Join(b.baseDir, "logs")
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, every external tool termplay
// runs is stubbed. Stubs exit 0 without output.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{
				b.cfg.Download.Binary,
				b.cfg.FFmpeg.Binary,
				b.cfg.FFmpeg.FFprobeBinary,
				b.cfg.Render.Binary,
			}
		}
		for _, name := range names {
			writeStub(b, name, "exit 0")
		}
	}
}

// WithStubScript writes a stub executable named name running the given
// shell body and prepends the stub directory to PATH.
func WithStubScript(name, body string) ConfigOption {
	return func(b *configBuilder) {
		writeStub(b, name, body)
	}
}

func writeStub(b *configBuilder, name, body string) {
	binDir := StubDir(b.baseDir)
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		b.t.Fatalf("mkdir bin dir: %v", err)
	}
	script := []byte("#!/bin/sh\n" + body + "\n")
	if err := os.WriteFile(filepath.Join(binDir, name), script, 0o755); err != nil {
		b.t.Fatalf("write stub %s: %v", name, err)
	}
	path := os.Getenv("PATH")
	prefix := binDir + string(os.PathListSeparator)
	if strings.HasPrefix(path, prefix) {
		return
	}
	b.t.Setenv("PATH", prefix+path)
}

// StubDir returns the directory stub executables are written to.
func StubDir(baseDir string) string {
	return filepath.Join(baseDir, "bin")
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.WorkspaceRoot)
}

// WriteConfig encodes cfg as TOML at path.
func WriteConfig(t testing.TB, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}
