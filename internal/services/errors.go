package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrExternalTool  = errors.New("external tool error")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrCancelled     = errors.New("cancelled")
)

const (
	// ExitOK is returned when the pipeline completes.
	ExitOK = 0
	// ExitFailure covers local I/O, spawn, preflight and usage failures.
	ExitFailure = 1
	// ExitCancelled is returned after a user interrupt (128 + SIGINT).
	ExitCancelled = 130
)

// ExitError carries a process exit status that must reach the process
// boundary unchanged, such as a failing external tool's own exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return fmt.Sprintf("%v (exit status %d)", e.Err, e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WithExitCode attaches an exit status to err. A nil err still produces an
// error so that a non-zero code is never lost.
func WithExitCode(code int, err error) error {
	return &ExitError{Code: code, Err: err}
}

// ExitCode maps an error returned by the pipeline to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Code != ExitOK {
		return exitErr.Code
	}
	if errors.Is(err, ErrCancelled) {
		return ExitCancelled
	}
	return ExitFailure
}

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
