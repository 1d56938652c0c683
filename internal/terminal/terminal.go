package terminal

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Control sequences written around external tools and playback.
const (
	AlternateOn  = "\x1b[?1049h"
	AlternateOff = "\x1b[?1049l"
	HideCursor   = "\x1b[?25l"
	ShowCursor   = "\x1b[?25h"
	CursorHome   = "\x1b[H"
	ClearScreen  = "\x1b[2J"
)

// Alternate screen policies, mirrored from the configuration values.
const (
	PolicyAuto   = "auto"
	PolicyAlways = "always"
	PolicyNever  = "never"
)

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Size returns the column and row count of the terminal behind w.
func Size(w io.Writer) (int, int, bool) {
	file, ok := w.(*os.File)
	if !ok || !IsTerminal(w) {
		return 0, 0, false
	}
	cols, rows, err := term.GetSize(int(file.Fd()))
	if err != nil || cols <= 0 || rows <= 0 {
		return 0, 0, false
	}
	return cols, rows, true
}

// Screen writes buffer-switching sequences to out according to a policy.
type Screen struct {
	out     io.Writer
	enabled bool
}

// NewScreen resolves policy against out. Unknown policies behave like auto.
func NewScreen(out io.Writer, policy string) *Screen {
	if out == nil {
		out = io.Discard
	}
	enabled := false
	switch policy {
	case PolicyAlways:
		enabled = true
	case PolicyNever:
		enabled = false
	default:
		enabled = IsTerminal(out)
	}
	return &Screen{out: out, enabled: enabled}
}

// Enabled reports whether sequences are written.
func (s *Screen) Enabled() bool {
	return s != nil && s.enabled
}

// EnterAlternate switches to the alternate screen buffer and returns a
// function restoring the primary buffer. The restore function writes at most
// once, so it is safe to defer and also call early.
func (s *Screen) EnterAlternate(extra ...string) func() {
	if !s.Enabled() {
		return func() {}
	}
	seq := AlternateOn
	for _, e := range extra {
		seq += e
	}
	_, _ = io.WriteString(s.out, seq)
	done := false
	return func() {
		if done {
			return
		}
		done = true
		_, _ = io.WriteString(s.out, ShowCursor+AlternateOff)
	}
}
