package pipeline

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"termplay/internal/services"
)

// Cancellation is the run-wide interrupt flag. A signal handler sets it
// asynchronously; the pipeline reads it between stages only.
type Cancellation struct {
	flag   atomic.Bool
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	signals chan os.Signal
	done    chan struct{}
}

// NewCancellation returns an unset flag whose Context ends when the flag is
// set or parent ends.
func NewCancellation(parent context.Context) *Cancellation {
	ctx, cancel := context.WithCancel(parent)
	return &Cancellation{ctx: ctx, cancel: cancel}
}

// Watch sets the flag when the process receives one of sigs (SIGINT and
// SIGTERM when none are given). Installing the handler also stops Go from
// exiting on those signals, so a child tool that shares the terminal gets
// to handle the interrupt itself.
func (c *Cancellation) Watch(sigs ...os.Signal) {
	if len(sigs) == 0 {
		sigs = []os.Signal{os.Interrupt, syscall.SIGTERM}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.signals != nil {
		return
	}
	c.signals = make(chan os.Signal, 1)
	c.done = make(chan struct{})
	signal.Notify(c.signals, sigs...)

	go func(signals <-chan os.Signal, done <-chan struct{}) {
		select {
		case <-signals:
			c.Cancel()
		case <-done:
		}
	}(c.signals, c.done)
}

// Stop removes the signal handler and releases the context.
func (c *Cancellation) Stop() {
	c.mu.Lock()
	if c.signals != nil {
		signal.Stop(c.signals)
		close(c.done)
		c.signals = nil
	}
	c.mu.Unlock()
	c.cancel()
}

// Cancel sets the flag.
func (c *Cancellation) Cancel() {
	c.flag.Store(true)
	c.cancel()
}

// Cancelled reports whether the flag is set.
func (c *Cancellation) Cancelled() bool {
	return c != nil && c.flag.Load()
}

// Context ends when the flag is set. It is handed to in-process
// collaborators; external tool waits never observe it.
func (c *Cancellation) Context() context.Context {
	return c.ctx
}

// Check returns services.ErrCancelled, tagged with the stage that was about
// to start, once the flag is set.
func (c *Cancellation) Check(stage string) error {
	if !c.Cancelled() {
		return nil
	}
	return services.Wrap(services.ErrCancelled, stage, "", "interrupted before stage started", nil)
}
