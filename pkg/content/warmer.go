package content

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dmitrymomot/folio/pkg/logger"
)

// Warmer preloads the index and profile data on a fixed interval so that
// visitors rarely wait for the content store.
type Warmer struct {
	cron     *cron.Cron
	index    *IndexLoader
	profile  *Profile
	langs    []string
	interval time.Duration
	log      *slog.Logger
	initial  sync.WaitGroup
}

// WarmerOption configures a Warmer.
type WarmerOption func(*Warmer)

// WithWarmerLogger sets the logger.
func WithWarmerLogger(log *slog.Logger) WarmerOption {
	return func(w *Warmer) {
		if log != nil {
			w.log = log
		}
	}
}

// WithProfile also warms experiences and education for langs.
func WithProfile(p *Profile, langs ...string) WarmerOption {
	return func(w *Warmer) {
		w.profile = p
		w.langs = langs
	}
}

// NewWarmer creates a warmer refreshing index every interval.
func NewWarmer(index *IndexLoader, interval time.Duration, opts ...WarmerOption) *Warmer {
	w := &Warmer{
		cron:     cron.New(),
		index:    index,
		interval: interval,
		log:      logger.NewNope(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start warms once, then schedules "@every <interval>". The first pass runs
// in the background so a slow content store does not delay startup.
func (w *Warmer) Start(ctx context.Context) error {
	if w.interval <= 0 {
		return fmt.Errorf("content: warmer interval must be positive, got %s", w.interval)
	}
	if _, err := w.cron.AddFunc("@every "+w.interval.String(), w.run); err != nil {
		return fmt.Errorf("content: schedule warmer: %w", err)
	}
	w.initial.Add(1)
	go func() {
		defer w.initial.Done()
		w.run()
	}()
	w.cron.Start()

	w.log.InfoContext(ctx, "content warmer started", slog.Duration("interval", w.interval))
	return nil
}

// Stop waits for running passes, the first one included, to finish or ctx
// to expire.
func (w *Warmer) Stop(ctx context.Context) error {
	stopped := w.cron.Stop()
	done := make(chan struct{})
	go func() {
		<-stopped.Done()
		w.initial.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// StartFunc adapts Start to a startup hook.
func (w *Warmer) StartFunc() func(context.Context) error {
	return w.Start
}

// Shutdown adapts Stop to a shutdown hook.
func (w *Warmer) Shutdown() func(context.Context) error {
	return w.Stop
}

func (w *Warmer) run() {
	ctx, cancel := context.WithTimeout(context.Background(), w.interval)
	defer cancel()

	start := time.Now()
	if _, err := w.index.Refresh(ctx); err != nil {
		w.log.WarnContext(ctx, "content index warm-up failed", slog.String("error", err.Error()))
	}
	if w.profile != nil {
		w.profile.Warm(ctx, w.langs...)
	}
	w.log.DebugContext(ctx, "content warmed", slog.Duration("took", time.Since(start)))
}
