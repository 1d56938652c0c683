package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizePlayback()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.WorkspaceRoot, err = expandPath(strings.TrimSpace(c.Paths.WorkspaceRoot)); err != nil {
		return fmt.Errorf("paths.workspace_root: %w", err)
	}
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTools() {
	c.Download.Binary = strings.TrimSpace(c.Download.Binary)
	c.Download.VersionArg = strings.TrimSpace(c.Download.VersionArg)
	if c.Download.VersionArg == "" {
		c.Download.VersionArg = defaultDownloadVersionArg
	}
	args := c.Download.ExtraArgs[:0]
	for _, arg := range c.Download.ExtraArgs {
		if trimmed := strings.TrimSpace(arg); trimmed != "" {
			args = append(args, trimmed)
		}
	}
	c.Download.ExtraArgs = args

	c.FFmpeg.Binary = strings.TrimSpace(c.FFmpeg.Binary)
	c.FFmpeg.FFprobeBinary = strings.TrimSpace(c.FFmpeg.FFprobeBinary)
	c.Render.Binary = strings.TrimSpace(c.Render.Binary)
}

func (c *Config) normalizePlayback() {
	c.Playback.Converter = strings.ToLower(strings.TrimSpace(c.Playback.Converter))
	if c.Playback.Converter == "" {
		c.Playback.Converter = defaultConverter
	}
	c.Terminal.AlternateScreen = strings.ToLower(strings.TrimSpace(c.Terminal.AlternateScreen))
	if c.Terminal.AlternateScreen == "" {
		c.Terminal.AlternateScreen = defaultAlternateScreen
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
