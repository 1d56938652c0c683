package pipeline

import (
	"context"
	"errors"
	"os"
	"syscall"
	"testing"
	"time"

	"termplay/internal/services"
)

func TestCancellationCheck(t *testing.T) {
	c := NewCancellation(context.Background())
	defer c.Stop()

	if err := c.Check(StageDownload); err != nil {
		t.Fatalf("unset flag must not fail, got %v", err)
	}
	c.Cancel()
	err := c.Check(StageDownload)
	if !errors.Is(err, services.ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if c.Context().Err() == nil {
		t.Fatal("context should end once cancelled")
	}
}

func TestNilCancellationNeverFires(t *testing.T) {
	var c *Cancellation
	if c.Cancelled() {
		t.Fatal("nil cancellation must not report cancelled")
	}
	if err := c.Check(StagePlay); err != nil {
		t.Fatalf("nil cancellation Check: %v", err)
	}
}

func TestCancellationWatchSignal(t *testing.T) {
	c := NewCancellation(context.Background())
	c.Watch(syscall.SIGUSR1)
	defer c.Stop()

	proc, err := os.FindProcess(os.Getpid())
	if err != nil {
		t.Fatalf("find process: %v", err)
	}
	if err := proc.Signal(syscall.SIGUSR1); err != nil {
		t.Fatalf("signal: %v", err)
	}

	select {
	case <-c.Context().Done():
	case <-time.After(2 * time.Second):
		t.Fatal("signal did not set the flag")
	}
	if !c.Cancelled() {
		t.Fatal("flag should be set after the signal")
	}
}

func TestCancellationStopIsIdempotent(t *testing.T) {
	c := NewCancellation(context.Background())
	c.Watch(syscall.SIGUSR2)
	c.Stop()
	c.Stop()
	if c.Cancelled() {
		t.Fatal("Stop must not set the flag")
	}
}
