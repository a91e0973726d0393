// Package watch polls adb for attached devices and reacts to new ones.
// It does not act on devices itself; it invokes a callback for every device
// that appears.
package watch

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// Lister returns the serials of devices that are ready for commands.
type Lister interface {
	OnlineSerials(ctx context.Context) ([]string, error)
}

// Handler is called once for every device that appears. It runs on its own
// goroutine and should return when ctx is cancelled.
type Handler func(ctx context.Context, serial string)

// Watcher tracks attached devices.
type Watcher struct {
	lister   Lister
	interval time.Duration
	clock    clockwork.Clock
	logger   *zap.Logger
	targets  map[string]bool

	onDevice Handler

	seen map[string]bool
	wg   sync.WaitGroup
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithClock replaces the real clock, for tests.
func WithClock(c clockwork.Clock) Option {
	return func(w *Watcher) { w.clock = c }
}

// WithSerials restricts the watcher to the given serials. Empty means all.
func WithSerials(serials []string) Option {
	return func(w *Watcher) {
		if len(serials) == 0 {
			return
		}
		w.targets = make(map[string]bool, len(serials))
		for _, s := range serials {
			w.targets[s] = true
		}
	}
}

// New creates a Watcher that polls lister every interval.
func New(lister Lister, interval time.Duration, logger *zap.Logger, opts ...Option) *Watcher {
	w := &Watcher{
		lister:   lister,
		interval: interval,
		clock:    clockwork.NewRealClock(),
		logger:   logger.Named("watch"),
		seen:     make(map[string]bool),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// OnDevice sets the callback invoked when a device appears.
func (w *Watcher) OnDevice(fn Handler) {
	w.onDevice = fn
}

// Run polls until ctx is cancelled, then waits for running handlers.
func (w *Watcher) Run(ctx context.Context) {
	ticker := w.clock.NewTicker(w.interval)
	defer ticker.Stop()
	defer w.wg.Wait()

	w.logger.Info("Watching for devices", zap.Duration("interval", w.interval))

	w.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Stopped watching for devices")
			return
		case <-ticker.Chan():
			w.poll(ctx)
		}
	}
}

// poll diffs the attached devices against the previous poll. Devices that
// disappear are forgotten so reattaching them triggers the handler again.
// A failed poll keeps the previous state.
func (w *Watcher) poll(ctx context.Context) {
	serials, err := w.lister.OnlineSerials(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Warn("Listing devices failed", zap.Error(err))
		}
		return
	}

	current := make(map[string]bool, len(serials))
	for _, s := range serials {
		if w.targets != nil && !w.targets[s] {
			continue
		}
		current[s] = true
		if w.seen[s] {
			continue
		}
		w.logger.Info("Device attached", zap.String("serial", s))
		w.dispatch(ctx, s)
	}
	for s := range w.seen {
		if !current[s] {
			w.logger.Info("Device detached", zap.String("serial", s))
		}
	}
	w.seen = current
}

func (w *Watcher) dispatch(ctx context.Context, serial string) {
	if w.onDevice == nil {
		return
	}
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.onDevice(ctx, serial)
	}()
}
