package playback

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"termplay/internal/frames"
	"termplay/internal/logging"
	"termplay/internal/services"
	"termplay/internal/terminal"
)

// Player writes text frames to a terminal at a fixed rate.
type Player struct {
	out    io.Writer
	screen *terminal.Screen
	logger *slog.Logger
}

// NewPlayer returns a player writing to out. screen controls the alternate
// buffer around playback and may be nil.
func NewPlayer(out io.Writer, screen *terminal.Screen, logger *slog.Logger) *Player {
	if out == nil {
		out = os.Stdout
	}
	return &Player{
		out:    out,
		screen: screen,
		logger: logging.NewComponentLogger(logger, "playback"),
	}
}

// Play shows frames 1..count from the workspace at rate frames per second.
// It returns services.ErrCancelled when ctx ends before the last frame.
func (p *Player) Play(ctx context.Context, dir string, count int, rate uint8) error {
	if count <= 0 {
		return nil
	}
	if rate == 0 {
		return services.Wrap(services.ErrValidation, "play", "", "rate must be positive", nil)
	}
	if err := ctx.Err(); err != nil {
		return services.ErrCancelled
	}
	logger := logging.WithContext(ctx, p.logger)
	interval := time.Second / time.Duration(rate)

	restore := p.screen.EnterAlternate(terminal.HideCursor, terminal.ClearScreen)
	defer restore()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	started := time.Now()
	for n := 1; n <= count; n++ {
		data, err := os.ReadFile(frames.TextPath(dir, n))
		if err != nil {
			return services.Wrap(services.ErrNotFound, "play", fmt.Sprintf("frame %d", n), "", err)
		}
		buf := make([]byte, 0, len(terminal.CursorHome)+len(data))
		buf = append(buf, terminal.CursorHome...)
		buf = append(buf, data...)
		if _, err := p.out.Write(buf); err != nil {
			return fmt.Errorf("write frame %d: %w", n, err)
		}
		if n == count {
			break
		}
		select {
		case <-ctx.Done():
			logger.Info("playback interrupted",
				logging.Int("frame", n),
				logging.Int("frames", count),
				logging.String(logging.FieldEventType, "play_cancelled"),
			)
			return services.ErrCancelled
		case <-ticker.C:
		}
	}

	logger.Debug("playback finished",
		logging.Int("frames", count),
		logging.Duration("duration", time.Since(started)),
		logging.String(logging.FieldEventType, "play_complete"),
	)
	return nil
}
