package deps

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Requirement defines an external executable termplay relies on.
type Requirement struct {
	Name        string
	Command     string
	VersionArg  string
	Description string
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Available   bool
	Version     string
	Detail      string
}

// ErrNotFound is returned by Probe when the executable cannot be resolved.
var ErrNotFound = errors.New("binary not found")

// CheckBinaries evaluates the provided requirements and reports availability.
// A requirement is available only when its binary resolves on PATH and its
// version probe exits successfully within timeout.
func CheckBinaries(ctx context.Context, requirements []Requirement, timeout time.Duration) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		version, err := Probe(ctx, cmd, req.VersionArg, timeout)
		if err != nil {
			status.Detail = err.Error()
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Version = version
		results = append(results, status)
	}
	return results
}

// Probe resolves command on PATH and runs it with versionArg, returning the
// first non-empty line of its output. Output beyond that is discarded.
func Probe(ctx context.Context, command, versionArg string, timeout time.Duration) (string, error) {
	command = strings.TrimSpace(command)
	resolved, err := exec.LookPath(command)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrNotFound, command)
	}

	probeCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		probeCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var args []string
	if arg := strings.TrimSpace(versionArg); arg != "" {
		args = append(args, arg)
	}
	output, err := exec.CommandContext(probeCtx, resolved, args...).CombinedOutput()
	if err != nil {
		if probeCtx.Err() != nil {
			return "", fmt.Errorf("%s probe timed out: %w", command, probeCtx.Err())
		}
		return "", fmt.Errorf("%s probe failed: %w", command, err)
	}
	return firstLine(output), nil
}

// Missing returns the statuses that are unavailable.
func Missing(statuses []Status) []Status {
	var missing []Status
	for _, status := range statuses {
		if !status.Available {
			missing = append(missing, status)
		}
	}
	return missing
}

func firstLine(output []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			return line
		}
	}
	return ""
}
