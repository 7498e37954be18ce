package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/folio/pkg/cache"
	"github.com/dmitrymomot/folio/pkg/logger"
)

// DefaultStaleAfter is how long a snapshot is served without refetching.
const DefaultStaleAfter = 10 * time.Minute

const (
	snapshotKey     = "content:index"
	lastSnapshotKey = "content:index:last"
)

// IndexLoader serves the current Snapshot and refreshes it when stale.
// Concurrent callers share one refetch.
type IndexLoader struct {
	provider   IndexProvider
	loader     *cache.Loader[Snapshot]
	staleAfter time.Duration
	log        *slog.Logger
	now        func() time.Time
}

// LoaderOption configures an IndexLoader.
type LoaderOption func(*IndexLoader)

// WithStaleAfter sets the staleness window. Default: 10 minutes.
func WithStaleAfter(d time.Duration) LoaderOption {
	return func(l *IndexLoader) {
		if d > 0 {
			l.staleAfter = d
		}
	}
}

// WithSnapshotCache stores snapshots in c instead of a private in-memory
// cache, e.g. Redis to share them between replicas.
func WithSnapshotCache(c cache.Cache[Snapshot]) LoaderOption {
	return func(l *IndexLoader) {
		if c != nil {
			l.loader = cache.NewLoader(c)
		}
	}
}

// WithLogger sets the logger for refresh failures.
func WithLogger(log *slog.Logger) LoaderOption {
	return func(l *IndexLoader) {
		if log != nil {
			l.log = log
		}
	}
}

// NewIndexLoader creates a loader over provider.
func NewIndexLoader(provider IndexProvider, opts ...LoaderOption) *IndexLoader {
	l := &IndexLoader{
		provider:   provider,
		staleAfter: DefaultStaleAfter,
		log:        logger.NewNope(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.loader == nil {
		l.loader = cache.NewLoader[Snapshot](cache.NewMemory[Snapshot](cache.WithMaxEntries(4)))
	}
	return l
}

// Load returns a snapshot no older than the staleness window when the
// provider is reachable. When a refetch fails, the previous snapshot is
// returned and the failure is logged; without one the error is returned.
func (l *IndexLoader) Load(ctx context.Context) (*Snapshot, error) {
	snap, err := l.loader.Load(ctx, snapshotKey, l.fetch)
	if err == nil {
		return &snap, nil
	}

	last, lastErr := l.loader.Cache().Get(ctx, lastSnapshotKey)
	if lastErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoIndex, err)
	}

	l.log.WarnContext(ctx, "content index refresh failed, serving previous snapshot",
		slog.String("error", err.Error()),
		slog.Time("fetched_at", last.FetchedAt),
	)
	return &last, nil
}

// Refresh discards the current snapshot and loads a new one.
func (l *IndexLoader) Refresh(ctx context.Context) (*Snapshot, error) {
	if err := l.loader.Cache().Delete(ctx, snapshotKey); err != nil {
		return nil, err
	}
	return l.Load(ctx)
}

// Healthcheck reports whether any snapshot can be served.
func (l *IndexLoader) Healthcheck() func(context.Context) error {
	return func(ctx context.Context) error {
		_, err := l.Load(ctx)
		return err
	}
}

func (l *IndexLoader) fetch(ctx context.Context) (Snapshot, time.Duration, error) {
	idx, err := l.provider.FetchIndex(ctx)
	if err != nil {
		return Snapshot{}, 0, err
	}
	if idx == nil {
		return Snapshot{}, 0, errors.New("content: provider returned no index")
	}

	snap := Snapshot{Index: idx, FetchedAt: l.now()}
	if err := l.loader.Cache().Set(ctx, lastSnapshotKey, snap, cache.NoExpiry); err != nil {
		l.log.WarnContext(ctx, "failed to store last good content index", slog.String("error", err.Error()))
	}
	return snap, l.staleAfter, nil
}
