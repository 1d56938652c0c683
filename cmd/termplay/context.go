package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"termplay/internal/config"
	"termplay/internal/logging"
	"termplay/internal/services"
)

type globalFlags struct {
	config    string
	logLevel  string
	logFormat string
}

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) configPath() string {
	if c.flags == nil {
		return ""
	}
	return strings.TrimSpace(c.flags.config)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "config", "load", "", err)
			return
		}
		if c.flags != nil {
			if level := strings.TrimSpace(c.flags.logLevel); level != "" {
				cfg.Logging.Level = level
			}
			if format := strings.TrimSpace(c.flags.logFormat); format != "" {
				cfg.Logging.Format = format
			}
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// logger builds the run logger. The per-run log file, when enabled, is named
// after runID.
func (c *commandContext) logger(runID string) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewForRun(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Dir, runID)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "logging", "init", "", err)
	}
	return logger, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
