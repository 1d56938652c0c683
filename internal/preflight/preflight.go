package preflight

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"termplay/internal/config"
	"termplay/internal/deps"
	"termplay/internal/logging"
	"termplay/internal/services"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Requirements lists the executables a playback run needs, in probe order.
func Requirements(cfg *config.Config) []deps.Requirement {
	return []deps.Requirement{
		{
			Name:        "Downloader",
			Command:     cfg.Download.Binary,
			VersionArg:  cfg.Download.VersionArg,
			Description: "Required for fetching videos",
		},
		{
			Name:        "FFmpeg",
			Command:     cfg.FFmpeg.Binary,
			VersionArg:  "-version",
			Description: "Required for frame extraction",
		},
		{
			Name:        "FFprobe",
			Command:     cfg.FFmpeg.FFprobeBinary,
			VersionArg:  "-version",
			Description: "Required for source dimension probing",
		},
		{
			Name:        "Renderer",
			Command:     cfg.Render.Binary,
			VersionArg:  "--version",
			Description: "Required for converting frames to terminal text",
		},
	}
}

// Tools probes each requirement in order and fails on the first one that
// cannot be invoked.
type Tools struct {
	Requirements []deps.Requirement
	Timeout      time.Duration
	Logger       *slog.Logger
}

// NewTools builds the tool checker for cfg.
func NewTools(cfg *config.Config, logger *slog.Logger) *Tools {
	return &Tools{
		Requirements: Requirements(cfg),
		Timeout:      cfg.ProbeTimeout(),
		Logger:       logging.NewComponentLogger(logger, "preflight"),
	}
}

// Check runs the version probe of every requirement. Probes are bounded by
// the timeout only; cancellation is acted on once Check returns.
func (t *Tools) Check(ctx context.Context) error {
	logger := logging.WithContext(ctx, t.Logger)
	probeCtx := context.WithoutCancel(ctx)
	for _, req := range t.Requirements {
		version, err := deps.Probe(probeCtx, req.Command, req.VersionArg, t.Timeout)
		if err != nil {
			return services.Wrap(services.ErrExternalTool, "preflight", req.Name,
				fmt.Sprintf("%s is not available (install it or set its binary in the config)", req.Command), err)
		}
		logger.Debug("tool available",
			logging.String("tool", req.Name),
			logging.String("command", req.Command),
			logging.String("version", version),
		)
	}
	return nil
}

// RunAll evaluates every requirement plus the workspace root for the doctor
// report. Unlike Tools.Check it never stops early.
func RunAll(ctx context.Context, cfg *config.Config) ([]deps.Status, []Result) {
	if cfg == nil {
		return nil, nil
	}
	statuses := deps.CheckBinaries(ctx, Requirements(cfg), cfg.ProbeTimeout())
	results := []Result{CheckDirectoryAccess("Workspace root", cfg.WorkspaceRoot())}
	if cfg.Logging.Dir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Logging.Dir))
	}
	return statuses, results
}
