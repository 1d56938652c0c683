package config

import (
	"errors"
	"fmt"

	"termplay/internal/frames"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTools(); err != nil {
		return err
	}
	if err := c.validatePlayback(); err != nil {
		return err
	}
	if err := c.validateTerminal(); err != nil {
		return err
	}
	if err := c.validateTimers(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateTools() error {
	if c.Download.Binary == "" {
		return errors.New("download.binary must be set")
	}
	if c.FFmpeg.Binary == "" {
		return errors.New("ffmpeg.binary must be set")
	}
	if c.FFmpeg.FFprobeBinary == "" {
		return errors.New("ffmpeg.ffprobe_binary must be set")
	}
	if c.Render.Binary == "" {
		return errors.New("render.binary must be set")
	}
	if c.Render.Workers < 0 {
		return errors.New("render.workers must be zero (auto) or positive")
	}
	return nil
}

func (c *Config) validatePlayback() error {
	if c.Playback.Rate == 0 {
		return errors.New("playback.rate must be positive")
	}
	if c.Playback.Ratio == 0 {
		return errors.New("playback.ratio must be positive")
	}
	if _, err := frames.ParseConverter(c.Playback.Converter); err != nil {
		return fmt.Errorf("playback.converter: %w", err)
	}
	return nil
}

func (c *Config) validateTerminal() error {
	switch c.Terminal.AlternateScreen {
	case AlternateScreenAuto, AlternateScreenAlways, AlternateScreenNever:
		return nil
	default:
		return fmt.Errorf("terminal.alternate_screen: unsupported value %q (want auto, always or never)", c.Terminal.AlternateScreen)
	}
}

func (c *Config) validateTimers() error {
	if c.Workspace.StaleAfterHours <= 0 {
		return errors.New("workspace.stale_after_hours must be positive")
	}
	if c.Preflight.ProbeTimeoutSeconds <= 0 {
		return errors.New("preflight.probe_timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
