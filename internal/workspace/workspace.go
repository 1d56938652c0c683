package workspace

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/flock"

	"termplay/internal/logging"
)

// Prefix is the name prefix of every workspace directory.
const Prefix = "termplay-"

const lockSuffix = ".lock"

// Manager creates and sweeps run workspaces under a root directory.
type Manager struct {
	root   string
	logger *slog.Logger
}

// NewManager returns a manager rooted at root.
func NewManager(root string, logger *slog.Logger) *Manager {
	return &Manager{
		root:   strings.TrimSpace(root),
		logger: logging.NewComponentLogger(logger, "workspace"),
	}
}

// Workspace is an exclusively owned run directory. Close removes it.
type Workspace struct {
	path   string
	lock   *flock.Flock
	logger *slog.Logger

	once     sync.Once
	closeErr error
}

// Create makes a fresh, uniquely named directory and locks it for this
// process. The caller must Close the returned workspace.
func (m *Manager) Create() (*Workspace, error) {
	if m.root == "" {
		return nil, errors.New("create workspace: root directory not configured")
	}
	if err := os.MkdirAll(m.root, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace root: %w", err)
	}
	dir, err := os.MkdirTemp(m.root, Prefix)
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}

	lock := flock.New(lockPathFor(dir))
	ok, err := lock.TryLock()
	if err != nil || !ok {
		_ = os.RemoveAll(dir)
		_ = os.Remove(lockPathFor(dir))
		if err == nil {
			err = errors.New("lock held by another process")
		}
		return nil, fmt.Errorf("lock workspace %s: %w", dir, err)
	}

	m.logger.Debug("workspace created",
		logging.String("path", dir),
		logging.String(logging.FieldEventType, "workspace_created"),
	)
	return &Workspace{path: dir, lock: lock, logger: m.logger}, nil
}

// Path returns the workspace directory.
func (w *Workspace) Path() string {
	return w.path
}

// Close removes the directory with its contents and releases the lock. Only
// the first call does any work; later calls return the same result.
func (w *Workspace) Close() error {
	if w == nil {
		return nil
	}
	w.once.Do(func() {
		w.closeErr = os.RemoveAll(w.path)
		if err := w.lock.Unlock(); err != nil && w.closeErr == nil {
			w.closeErr = err
		}
		if err := os.Remove(w.lock.Path()); err != nil && !os.IsNotExist(err) && w.closeErr == nil {
			w.closeErr = err
		}
		if w.closeErr != nil {
			logging.WarnWithContext(w.logger, "workspace cleanup incomplete", "workspace_cleanup_failed",
				logging.String("path", w.path),
				logging.Error(w.closeErr),
				logging.String(logging.FieldErrorHint, "remove the directory manually or run termplay clean"),
				logging.String(logging.FieldImpact, "disk space not reclaimed"),
			)
			return
		}
		w.logger.Debug("workspace removed",
			logging.String("path", w.path),
			logging.String(logging.FieldEventType, "workspace_removed"),
		)
	})
	return w.closeErr
}

func lockPathFor(dir string) string {
	return filepath.Clean(dir) + lockSuffix
}
