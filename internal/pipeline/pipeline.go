package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"termplay/internal/artifact"
	"termplay/internal/frames"
	"termplay/internal/logging"
	"termplay/internal/services"
	"termplay/internal/workspace"
)

// Stage names, in execution order.
const (
	StagePreflight = "preflight"
	StageWorkspace = "workspace"
	StageDownload  = "download"
	StageLocate    = "locate"
	StageExtract   = "extract"
	StagePlay      = "play"
)

// Preflight verifies the external tools are invocable.
type Preflight interface {
	Check(ctx context.Context) error
}

// Workspaces creates the run workspace.
type Workspaces interface {
	Create() (*workspace.Workspace, error)
}

// Downloader fetches the video into dir.
type Downloader interface {
	Download(ctx context.Context, dir, video, format string) error
}

// Extractor converts the artifact into text frames and returns their count.
type Extractor interface {
	Extract(ctx context.Context, req frames.Request) (int, error)
}

// Player shows count frames from dir at rate frames per second.
type Player interface {
	Play(ctx context.Context, dir string, count int, rate uint8) error
}

// LocateFunc picks the downloaded file out of a workspace.
type LocateFunc func(dir string, logger *slog.Logger) (artifact.Artifact, error)

// Pipeline runs the stages of one playback in strict order. Every stage
// returns its failure to Run; nothing is retried.
type Pipeline struct {
	Preflight  Preflight
	Workspaces Workspaces
	Downloader Downloader
	Locate     LocateFunc
	Extractor  Extractor
	Player     Player

	// Cancel is checked before each stage. A nil Cancel never fires.
	Cancel *Cancellation

	// Progress receives one line per stage for the user.
	Progress io.Writer
	Logger   *slog.Logger
}

// Run executes the pipeline for req. The returned error maps to the
// process exit status through services.ExitCode. The workspace is removed
// before Run returns on every path that created it.
func (p *Pipeline) Run(ctx context.Context, req Request) (err error) {
	logger := logging.NewComponentLogger(p.Logger, "pipeline")
	if err := req.Validate(); err != nil {
		return services.Wrap(services.ErrValidation, "pipeline", "request", "invalid request", err)
	}
	started := time.Now()
	defer func() {
		p.logResult(ctx, logger, started, err)
	}()

	if err := p.enter(ctx, logger, StagePreflight, "Checking tools..."); err != nil {
		return err
	}
	if err := p.Preflight.Check(services.WithStage(ctx, StagePreflight)); err != nil {
		return err
	}

	if err := p.enter(ctx, logger, StageWorkspace, "Creating workspace..."); err != nil {
		return err
	}
	ws, err := p.Workspaces.Create()
	if err != nil {
		return services.Wrap(services.ErrConfiguration, StageWorkspace, "create", "", err)
	}
	defer func() {
		_ = ws.Close()
	}()

	if err := p.enter(ctx, logger, StageDownload, "Downloading video..."); err != nil {
		return err
	}
	if err := p.Downloader.Download(services.WithStage(ctx, StageDownload), ws.Path(), req.Video, req.Format); err != nil {
		return err
	}

	if err := p.enter(ctx, logger, StageLocate, "Finding downloaded file..."); err != nil {
		return err
	}
	locate := p.Locate
	if locate == nil {
		locate = artifact.Locate
	}
	found, err := locate(ws.Path(), logging.WithContext(ctx, logger))
	if err != nil {
		return err
	}

	if err := p.enter(ctx, logger, StageExtract, fmt.Sprintf("Extracting frames from %s...", found.Name)); err != nil {
		return err
	}
	count, err := p.Extractor.Extract(services.WithStage(ctx, StageExtract), req.framesRequest(found.Path, ws.Path()))
	if err != nil {
		return err
	}
	if count < 0 {
		return services.Wrap(services.ErrExternalTool, StageExtract, "", fmt.Sprintf("negative frame count %d", count), nil)
	}

	if err := p.enter(ctx, logger, StagePlay, fmt.Sprintf("Playing %d frames...", count)); err != nil {
		return err
	}
	return p.Player.Play(services.WithStage(ctx, StagePlay), ws.Path(), count, req.Rate)
}

// enter checks the cancellation flag and announces the stage.
func (p *Pipeline) enter(ctx context.Context, logger *slog.Logger, stage, progress string) error {
	if err := p.Cancel.Check(stage); err != nil {
		return err
	}
	if p.Progress != nil {
		fmt.Fprintln(p.Progress, progress)
	}
	logging.WithContext(services.WithStage(ctx, stage), logger).Debug("stage started",
		logging.String(logging.FieldEventType, "stage_start"),
	)
	return nil
}

func (p *Pipeline) logResult(ctx context.Context, logger *slog.Logger, started time.Time, err error) {
	logger = logging.WithContext(ctx, logger)
	elapsed := logging.Duration("duration", time.Since(started))
	code := services.ExitCode(err)
	switch {
	case err == nil:
		logger.Info("playback finished", elapsed, logging.String(logging.FieldEventType, "pipeline_complete"))
	case code == services.ExitCancelled:
		logger.Info("playback cancelled", elapsed, logging.String(logging.FieldEventType, "pipeline_cancelled"))
	default:
		logging.ErrorWithContext(logger, "playback failed", "pipeline_failed",
			elapsed,
			logging.Int("exit_code", code),
			logging.Error(err),
		)
	}
}
