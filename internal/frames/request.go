package frames

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Request carries the extraction parameters for one run. Width and Height
// are zero when they should be derived from the source.
type Request struct {
	ArtifactPath  string
	WorkspacePath string
	Width         uint16
	Height        uint16
	Ratio         uint8
	KeepSize      bool
	Rate          uint8
	Converter     Converter
}

// Validate checks the invariants extraction relies on.
func (r Request) Validate() error {
	var errs []error
	if strings.TrimSpace(r.ArtifactPath) == "" {
		errs = append(errs, errors.New("artifact path is required"))
	}
	if strings.TrimSpace(r.WorkspacePath) == "" {
		errs = append(errs, errors.New("workspace path is required"))
	}
	if r.Ratio == 0 {
		errs = append(errs, errors.New("ratio must be positive"))
	}
	if r.Rate == 0 {
		errs = append(errs, errors.New("rate must be positive"))
	}
	if _, err := ParseConverter(string(r.Converter)); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Dir returns the directory frames are written to inside a workspace.
func Dir(workspace string) string {
	return filepath.Join(workspace, "frames")
}

// TextPath returns the path of the 1-based text frame n.
func TextPath(workspace string, n int) string {
	return filepath.Join(Dir(workspace), fmt.Sprintf("%06d.txt", n))
}

func imagePath(workspace string, n int) string {
	return filepath.Join(Dir(workspace), fmt.Sprintf("%06d.png", n))
}

func imagePattern(workspace string) string {
	return filepath.Join(Dir(workspace), "%06d.png")
}
