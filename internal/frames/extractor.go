package frames

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"termplay/internal/logging"
	"termplay/internal/media/ffprobe"
	"termplay/internal/services"
)

// ProbeFunc inspects a media file.
type ProbeFunc func(ctx context.Context, binary, path string) (ffprobe.Result, error)

// Option configures the extractor.
type Option func(*Extractor)

// WithBounds sets the terminal area used when no size is requested.
func WithBounds(bounds Bounds) Option {
	return func(e *Extractor) {
		e.bounds = bounds
	}
}

// WithWorkers limits concurrent renderer processes. Values below 1 use the
// number of CPUs.
func WithWorkers(workers int) Option {
	return func(e *Extractor) {
		e.workers = workers
	}
}

// WithProbe replaces the ffprobe call (primarily for tests).
func WithProbe(probe ProbeFunc) Option {
	return func(e *Extractor) {
		if probe != nil {
			e.probe = probe
		}
	}
}

// WithLogger sets the extractor's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logging.NewComponentLogger(logger, "frames")
	}
}

// Extractor turns a video file into numbered text frames inside a workspace.
// ffmpeg decodes and scales the video to PNG images, then the renderer
// binary converts each image to terminal text.
type Extractor struct {
	ffmpeg   string
	ffprobe  string
	renderer string
	workers  int
	bounds   Bounds
	probe    ProbeFunc
	logger   *slog.Logger
}

// NewExtractor constructs an extractor for the given binaries.
func NewExtractor(ffmpegBinary, ffprobeBinary, rendererBinary string, opts ...Option) *Extractor {
	e := &Extractor{
		ffmpeg:   strings.TrimSpace(ffmpegBinary),
		ffprobe:  strings.TrimSpace(ffprobeBinary),
		renderer: strings.TrimSpace(rendererBinary),
		probe:    ffprobe.Inspect,
		logger:   logging.NewComponentLogger(nil, "frames"),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers < 1 {
		e.workers = runtime.NumCPU()
	}
	return e
}

// Extract writes text frames for req and returns how many were produced.
func (e *Extractor) Extract(ctx context.Context, req Request) (int, error) {
	if err := req.Validate(); err != nil {
		return 0, services.Wrap(services.ErrValidation, "extract", "request", "invalid extraction request", err)
	}
	logger := logging.WithContext(ctx, e.logger)
	started := time.Now()

	probe, err := e.probe(context.WithoutCancel(ctx), e.ffprobe, req.ArtifactPath)
	if err != nil {
		return 0, toolError("probe", e.ffprobe, err)
	}
	srcWidth, srcHeight, err := probe.Dimensions()
	if err != nil {
		return 0, services.Wrap(services.ErrValidation, "extract", "probe", req.ArtifactPath, err)
	}
	width, height := Dimensions(req, srcWidth, srcHeight, e.bounds)
	logger.Info("extracting frames",
		logging.String("source", fmt.Sprintf("%dx%d", srcWidth, srcHeight)),
		logging.String("cells", fmt.Sprintf("%dx%d", width, height)),
		logging.Int("rate", int(req.Rate)),
		logging.String("converter", req.Converter.String()),
		logging.String(logging.FieldEventType, "extract_start"),
	)

	if err := os.MkdirAll(Dir(req.WorkspacePath), 0o755); err != nil {
		return 0, fmt.Errorf("create frames directory: %w", err)
	}
	if err := e.decode(ctx, req, width, height); err != nil {
		return 0, err
	}
	count := countImages(req.WorkspacePath)
	if count == 0 {
		return 0, nil
	}
	if err := e.renderAll(ctx, req, width, height, count); err != nil {
		return 0, err
	}

	logger.Info("frames extracted",
		logging.Int("frames", count),
		logging.Duration("duration", time.Since(started)),
		logging.String(logging.FieldEventType, "extract_complete"),
	)
	return count, nil
}

// FFmpegArgs builds the decode command line for req at width x height.
func FFmpegArgs(req Request, width, height int) []string {
	filters := []string{
		fmt.Sprintf("scale=%d:%d", width, height),
		"fps=" + strconv.Itoa(int(req.Rate)),
	}
	if req.Converter.Grayscale() {
		filters = append(filters, "format=gray")
	}
	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-nostdin",
		"-i", req.ArtifactPath,
		"-vf", strings.Join(filters, ","),
		imagePattern(req.WorkspacePath),
	}
}

// RendererArgs builds the renderer command line for one image.
func RendererArgs(conv Converter, width, height int, image string) []string {
	args := []string{
		"--format", "symbols",
		"--stretch",
		"--size", fmt.Sprintf("%dx%d", width, height),
	}
	args = append(args, conv.rendererArgs()...)
	return append(args, image)
}

// decode does not kill ffmpeg on cancellation: a running ffmpeg is waited
// for, and cancellation is noticed after it exits. An interrupt from the
// terminal also reaches ffmpeg, so a failure after cancellation is reported
// as the cancellation.
func (e *Extractor) decode(ctx context.Context, req Request, width, height int) error {
	cmd := exec.Command(e.ffmpeg, FFmpegArgs(req, width, height)...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return services.ErrCancelled
		}
		return toolError("decode", e.ffmpeg, withOutput(err, output))
	}
	if ctx.Err() != nil {
		return services.ErrCancelled
	}
	return nil
}

func (e *Extractor) renderAll(ctx context.Context, req Request, width, height, count int) error {
	g, gctx := errgroup.WithContext(context.WithoutCancel(ctx))
	g.SetLimit(e.workers)
	for n := 1; n <= count; n++ {
		if ctx.Err() != nil || gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := e.render(gctx, req, width, height, n); err != nil {
				if ctx.Err() != nil {
					return services.ErrCancelled
				}
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if ctx.Err() != nil {
		return services.ErrCancelled
	}
	return nil
}

func (e *Extractor) render(ctx context.Context, req Request, width, height, n int) error {
	image := imagePath(req.WorkspacePath, n)
	cmd := exec.CommandContext(ctx, e.renderer, RendererArgs(req.Converter, width, height, image)...) //nolint:gosec
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			err = withOutput(err, exitErr.Stderr)
		}
		return toolError(fmt.Sprintf("render frame %d", n), e.renderer, err)
	}
	if err := os.WriteFile(TextPath(req.WorkspacePath, n), output, 0o644); err != nil {
		return fmt.Errorf("write frame %d: %w", n, err)
	}
	if err := os.Remove(image); err != nil {
		return fmt.Errorf("remove frame image %d: %w", n, err)
	}
	return nil
}

// countImages counts the contiguous run of decoded images starting at 1.
func countImages(workspace string) int {
	n := 0
	for {
		if _, err := os.Stat(imagePath(workspace, n+1)); err != nil {
			return n
		}
		n++
	}
}

// toolError carries a failing tool's exit status so it reaches the process
// boundary unchanged.
func toolError(operation, binary string, err error) error {
	wrapped := services.Wrap(services.ErrExternalTool, "extract", operation, binary, err)
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return services.WithExitCode(exitErr.ExitCode(), wrapped)
	}
	return wrapped
}

func withOutput(err error, output []byte) error {
	detail := strings.TrimSpace(string(output))
	if detail == "" {
		return err
	}
	return fmt.Errorf("%w: %s", err, detail)
}
