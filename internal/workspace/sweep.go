package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"termplay/internal/logging"
)

// SweepResult contains the outcome of a stale workspace sweep.
type SweepResult struct {
	Removed []string
	Skipped []string
	Errors  []SweepError
}

// SweepError pairs a workspace path with its cleanup error.
type SweepError struct {
	Path  string
	Error error
}

// Sweep removes workspaces older than maxAge that no running process holds.
// Workspaces left behind by a killed run are the only ones it can remove;
// a live run keeps its lock until Close.
func (m *Manager) Sweep(maxAge time.Duration) SweepResult {
	result := SweepResult{}
	if m.root == "" {
		return result
	}

	entries, err := os.ReadDir(m.root)
	if err != nil {
		if !os.IsNotExist(err) {
			result.Errors = append(result.Errors, SweepError{Path: m.root, Error: err})
		}
		return result
	}

	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), Prefix) {
			continue
		}
		dirPath := filepath.Join(m.root, entry.Name())
		info, err := entry.Info()
		if err != nil {
			result.Errors = append(result.Errors, SweepError{Path: dirPath, Error: err})
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}

		lock := flock.New(lockPathFor(dirPath))
		ok, err := lock.TryLock()
		if err != nil {
			result.Errors = append(result.Errors, SweepError{Path: dirPath, Error: err})
			continue
		}
		if !ok {
			result.Skipped = append(result.Skipped, dirPath)
			m.logger.Debug("workspace in use, skipping",
				logging.String("path", dirPath),
				logging.String(logging.FieldEventType, "workspace_sweep_skipped"),
			)
			continue
		}

		removeErr := os.RemoveAll(dirPath)
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
		if removeErr != nil {
			result.Errors = append(result.Errors, SweepError{Path: dirPath, Error: removeErr})
			logging.WarnWithContext(m.logger, "failed to remove stale workspace", "workspace_sweep_failed",
				logging.String("path", dirPath),
				logging.Error(removeErr),
				logging.String(logging.FieldErrorHint, "check workspace_root permissions"),
				logging.String(logging.FieldImpact, "disk space not reclaimed"),
			)
			continue
		}
		result.Removed = append(result.Removed, dirPath)
		m.logger.Info("removed stale workspace",
			logging.String("path", dirPath),
			logging.Duration("age", time.Since(info.ModTime())),
			logging.String(logging.FieldEventType, "workspace_sweep"),
		)
	}
	return result
}
