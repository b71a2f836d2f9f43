package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// AutosaverConfig holds configuration for the autosaver.
type AutosaverConfig struct {
	// Interval is how often to flush dirty months (default: 30s)
	Interval time.Duration
}

// DefaultAutosaverConfig returns sensible defaults.
func DefaultAutosaverConfig() AutosaverConfig {
	return AutosaverConfig{Interval: 30 * time.Second}
}

// Autosaver periodically flushes every dirty month through the
// service. A failed flush leaves the month dirty; it is retried on the
// next tick.
type Autosaver struct {
	service *FinanceService
	config  AutosaverConfig

	// Lifecycle management
	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func NewAutosaver(service *FinanceService, config AutosaverConfig) *Autosaver {
	if config.Interval <= 0 {
		config.Interval = DefaultAutosaverConfig().Interval
	}
	return &Autosaver{service: service, config: config}
}

// Start begins the flush loop. Returns an error if already running.
func (a *Autosaver) Start(ctx context.Context) error {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return fmt.Errorf("autosaver is already running")
	}
	a.running = true
	a.stopCh = make(chan struct{})
	a.doneCh = make(chan struct{})
	a.mu.Unlock()

	go a.runLoop(ctx)

	slog.InfoContext(ctx, "Autosaver started", "interval", a.config.Interval)
	return nil
}

// Stop flushes once more and waits for the loop to finish, or gives up
// when ctx is cancelled.
func (a *Autosaver) Stop(ctx context.Context) error {
	a.mu.Lock()
	if !a.running {
		a.mu.Unlock()
		return nil
	}
	a.mu.Unlock()

	close(a.stopCh)

	select {
	case <-a.doneCh:
		slog.InfoContext(ctx, "Autosaver stopped gracefully")
	case <-ctx.Done():
		slog.WarnContext(ctx, "Autosaver stop timed out")
		return ctx.Err()
	}

	a.mu.Lock()
	a.running = false
	a.mu.Unlock()

	return nil
}

// IsRunning returns whether the flush loop is active.
func (a *Autosaver) IsRunning() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}

func (a *Autosaver) runLoop(ctx context.Context) {
	defer close(a.doneCh)

	ticker := time.NewTicker(a.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-a.stopCh:
			// Final flush so a clean shutdown never loses entries.
			a.Flush(ctx)
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.Flush(ctx)
		}
	}
}

// Flush saves every dirty month once. Failures are logged and retried
// on the next tick because the dirty mark survives a failed save.
func (a *Autosaver) Flush(ctx context.Context) {
	for _, month := range a.service.DirtyMonths() {
		if err := a.service.SaveMonth(ctx, month); err != nil {
			slog.WarnContext(ctx, "Autosave failed, will retry",
				"month", month, "error", err)
			continue
		}
		slog.DebugContext(ctx, "Autosaved month", "month", month)
	}
}
