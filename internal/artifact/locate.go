package artifact

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"termplay/internal/logging"
	"termplay/internal/services"
)

// ErrNoArtifact is returned when the workspace holds no entries.
var ErrNoArtifact = errors.New("no file found, possibly deleted concurrently")

// Artifact is the file the download tool produced.
type Artifact struct {
	Path string
	Name string
	Size int64
}

// Locate picks the downloaded file out of dir. Entries are read in name
// order and the first one is used. More than one entry is only a warning,
// since nothing here can tell which file is the video.
func Locate(dir string, logger *slog.Logger) (Artifact, error) {
	logger = logging.NewComponentLogger(logger, "artifact")

	entries, err := os.ReadDir(dir)
	if err != nil {
		return Artifact{}, services.Wrap(services.ErrNotFound, "locate", "read workspace", dir, err)
	}
	if len(entries) == 0 {
		return Artifact{}, services.Wrap(services.ErrNotFound, "locate", "", dir, ErrNoArtifact)
	}

	first := entries[0]
	info, err := first.Info()
	if err != nil {
		return Artifact{}, services.Wrap(services.ErrNotFound, "locate", "stat artifact", first.Name(), err)
	}
	found := Artifact{
		Path: filepath.Join(dir, first.Name()),
		Name: first.Name(),
		Size: info.Size(),
	}

	if len(entries) > 1 {
		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			names = append(names, entry.Name())
		}
		logging.WarnWithContext(logger, "download produced more than one file, using the first", "artifact_ambiguous",
			logging.String("selected", found.Name),
			logging.Int("count", len(entries)),
			logging.Any("entries", names),
			logging.String(logging.FieldErrorHint, "pick a --format that yields a single file"),
			logging.String(logging.FieldImpact, fmt.Sprintf("playing %s, which may not be the intended video", found.Name)),
		)
	}

	logger.Debug("artifact located",
		logging.String("path", found.Path),
		logging.Int64("size", found.Size),
		logging.String(logging.FieldEventType, "artifact_located"),
	)
	return found, nil
}
