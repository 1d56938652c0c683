package download

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"termplay/internal/logging"
	"termplay/internal/services"
	"termplay/internal/terminal"
)

// Executor abstracts command execution for testability. Run returns the
// process exit status; a non-nil error means the process could not be run.
type Executor interface {
	Run(ctx context.Context, dir, binary string, args []string) (int, error)
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithScreen sets the terminal the alternate screen sequences are written to.
func WithScreen(screen *terminal.Screen) Option {
	return func(c *Client) {
		c.screen = screen
	}
}

// WithLogger sets the client's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.NewComponentLogger(logger, "download")
	}
}

// Client wraps the external download tool.
type Client struct {
	binary    string
	extraArgs []string
	exec      Executor
	screen    *terminal.Screen
	logger    *slog.Logger
}

// New constructs a download client for binary.
func New(binary string, extraArgs []string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("download binary required")
	}
	client := &Client{
		binary:    binary,
		extraArgs: append([]string(nil), extraArgs...),
		exec:      commandExecutor{},
		logger:    logging.NewComponentLogger(nil, "download"),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Args builds the download tool's argument list. The video identifier comes
// after "--" so identifiers beginning with a dash are not read as flags.
func (c *Client) Args(video, format string) []string {
	args := make([]string, 0, len(c.extraArgs)+4)
	args = append(args, "--format", format)
	args = append(args, c.extraArgs...)
	return append(args, "--", video)
}

// Download runs the tool inside dir. The terminal switches to the alternate
// screen for the duration of the process and is restored on every path. A
// non-zero exit is returned as a *services.ExitError carrying the tool's
// status.
func (c *Client) Download(ctx context.Context, dir, video, format string) error {
	if strings.TrimSpace(dir) == "" {
		return services.Wrap(services.ErrValidation, "download", "prepare", "workspace directory required", nil)
	}
	if strings.TrimSpace(video) == "" {
		return services.Wrap(services.ErrValidation, "download", "prepare", "video identifier required", nil)
	}
	logger := logging.WithContext(ctx, c.logger)
	args := c.Args(video, format)

	logger.Info("download started",
		logging.String("binary", c.binary),
		logging.String("video", video),
		logging.String("format", format),
		logging.String(logging.FieldEventType, "download_start"),
	)
	started := time.Now()

	restore := c.screen.EnterAlternate()
	code, err := c.exec.Run(ctx, dir, c.binary, args)
	restore()

	if err != nil {
		logger.Error("download tool could not be started",
			logging.String("binary", c.binary),
			logging.Error(err),
			logging.String(logging.FieldEventType, "download_spawn_failed"),
			logging.String(logging.FieldErrorHint, "check download.binary in the config"),
		)
		return services.Wrap(services.ErrExternalTool, "download", c.binary, "failed to run download tool", err)
	}
	if code != 0 {
		logger.Error("download tool failed",
			logging.String("binary", c.binary),
			logging.Int("exit_code", code),
			logging.String(logging.FieldEventType, "download_failed"),
			logging.String(logging.FieldErrorHint, "see the download tool output above"),
		)
		return services.WithExitCode(code,
			services.Wrap(services.ErrExternalTool, "download", c.binary, fmt.Sprintf("exited with status %d", code), nil))
	}

	logger.Info("download completed",
		logging.Duration("duration", time.Since(started)),
		logging.String(logging.FieldEventType, "download_complete"),
	)
	return nil
}

type commandExecutor struct{}

// Run attaches the tool to the process's terminal and waits for it. The
// context is not used to kill the process: an interrupt reaches the child
// through the terminal and the pipeline acts on it after the tool exits.
func (commandExecutor) Run(_ context.Context, dir, binary string, args []string) (int, error) {
	cmd := exec.Command(binary, args...) //nolint:gosec
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return exitStatus(cmd.Run())
}

// exitStatus splits a Cmd.Run error into an exit status and a run failure.
// A process killed by a signal reports 128 plus the signal number.
func exitStatus(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return 0, err
	}
	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return 128 + int(status.Signal()), nil
	}
	if code := exitErr.ExitCode(); code > 0 {
		return code, nil
	}
	return services.ExitFailure, nil
}
