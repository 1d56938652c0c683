package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	WorkspaceRoot string `toml:"workspace_root"`
}

// Download configures the external download tool.
type Download struct {
	Binary     string   `toml:"binary"`
	VersionArg string   `toml:"version_arg"`
	ExtraArgs  []string `toml:"extra_args"`
}

// FFmpeg configures the transcoding binaries used for frame extraction.
type FFmpeg struct {
	Binary        string `toml:"binary"`
	FFprobeBinary string `toml:"ffprobe_binary"`
}

// Render configures the image-to-text renderer binary.
type Render struct {
	Binary  string `toml:"binary"`
	Workers int    `toml:"workers"`
}

// Playback holds the defaults applied when flags are not given.
type Playback struct {
	Rate      uint8  `toml:"rate"`
	Ratio     uint8  `toml:"ratio"`
	Converter string `toml:"converter"`
}

// Terminal controls escape sequences written around external tools.
type Terminal struct {
	// AlternateScreen is one of "auto", "always" or "never".
	AlternateScreen string `toml:"alternate_screen"`
}

// Workspace controls the stale workspace sweeper.
type Workspace struct {
	SweepOnStart    bool `toml:"sweep_on_start"`
	StaleAfterHours int  `toml:"stale_after_hours"`
}

// Preflight configures tool probing.
type Preflight struct {
	ProbeTimeoutSeconds int `toml:"probe_timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Config encapsulates all configuration values for termplay.
type Config struct {
	Paths     Paths     `toml:"paths"`
	Download  Download  `toml:"download"`
	FFmpeg    FFmpeg    `toml:"ffmpeg"`
	Render    Render    `toml:"render"`
	Playback  Playback  `toml:"playback"`
	Terminal  Terminal  `toml:"terminal"`
	Workspace Workspace `toml:"workspace"`
	Preflight Preflight `toml:"preflight"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("termplay.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// WorkspaceRoot returns the directory new workspaces are created under.
func (c *Config) WorkspaceRoot() string {
	if root := strings.TrimSpace(c.Paths.WorkspaceRoot); root != "" {
		return root
	}
	return os.TempDir()
}

// StaleAfter returns the age beyond which an unlocked workspace is swept.
func (c *Config) StaleAfter() time.Duration {
	return time.Duration(c.Workspace.StaleAfterHours) * time.Hour
}

// ProbeTimeout returns the per-tool preflight probe timeout.
func (c *Config) ProbeTimeout() time.Duration {
	return time.Duration(c.Preflight.ProbeTimeoutSeconds) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
