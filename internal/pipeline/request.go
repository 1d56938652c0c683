package pipeline

import (
	"errors"
	"strings"

	"termplay/internal/frames"
)

// Request is the input of one playback run. It is not modified once Run
// starts. Width and Height are zero when unset.
type Request struct {
	Video     string
	Format    string
	Width     uint16
	Height    uint16
	Ratio     uint8
	KeepSize  bool
	Rate      uint8
	Converter frames.Converter
}

// Validate checks the fields every run needs.
func (r Request) Validate() error {
	var errs []error
	if strings.TrimSpace(r.Video) == "" {
		errs = append(errs, errors.New("video is required"))
	}
	if strings.TrimSpace(r.Format) == "" {
		errs = append(errs, errors.New("format is required"))
	}
	if r.Ratio == 0 {
		errs = append(errs, errors.New("ratio must be positive"))
	}
	if r.Rate == 0 {
		errs = append(errs, errors.New("rate must be positive"))
	}
	if _, err := frames.ParseConverter(string(r.Converter)); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (r Request) framesRequest(artifactPath, workspacePath string) frames.Request {
	return frames.Request{
		ArtifactPath:  artifactPath,
		WorkspacePath: workspacePath,
		Width:         r.Width,
		Height:        r.Height,
		Ratio:         r.Ratio,
		KeepSize:      r.KeepSize,
		Rate:          r.Rate,
		Converter:     r.Converter,
	}
}
