package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/folio/pkg/logger"
	"github.com/dmitrymomot/folio/pkg/storage"
)

// Builder regenerates index.json from the markdown objects of a bucket.
type Builder struct {
	store       storage.Storage
	concurrency int
	now         func() time.Time
	log         *slog.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithConcurrency bounds parallel object reads. Default: 8.
func WithConcurrency(n int) BuilderOption {
	return func(b *Builder) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithBuilderLogger sets the logger.
func WithBuilderLogger(log *slog.Logger) BuilderOption {
	return func(b *Builder) {
		if log != nil {
			b.log = log
		}
	}
}

// NewBuilder creates a builder over store.
func NewBuilder(store storage.Storage, opts ...BuilderOption) *Builder {
	b := &Builder{
		store:       store,
		concurrency: 8,
		now:         time.Now,
		log:         logger.NewNope(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build lists every kind folder and reads each markdown title. Items keep
// the listing order.
func (b *Builder) Build(ctx context.Context) (*Index, error) {
	idx := &Index{GeneratedAt: b.now().UTC().Format(time.RFC3339)}
	for _, kind := range Kinds {
		items, err := b.buildKind(ctx, kind)
		if err != nil {
			return nil, err
		}
		switch kind {
		case KindArticles:
			idx.Articles = items
		case KindShowcases:
			idx.Showcases = items
		}
	}
	return idx, nil
}

// Write stores idx as IndexFile.
func (b *Builder) Write(ctx context.Context, idx *Index) error {
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: index: %v", ErrDecode, err)
	}
	return b.store.Put(ctx, IndexFile, bytes.NewReader(data),
		storage.WithContentType("application/json"),
		storage.WithCacheControl("no-cache"),
	)
}

func (b *Builder) buildKind(ctx context.Context, kind Kind) ([]Item, error) {
	objects, err := b.store.List(ctx, string(kind)+"/")
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %w", ErrFetch, kind, err)
	}

	items := make([]Item, 0, len(objects))
	for _, obj := range objects {
		if strings.HasSuffix(obj.Key, ".md") {
			items = append(items, Item{Name: obj.Key})
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)
	for i := range items {
		g.Go(func() error {
			title, err := b.title(gctx, items[i].Name)
			if err != nil {
				return err
			}
			items[i].Title = title
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	b.log.InfoContext(ctx, "content folder indexed",
		slog.String("kind", string(kind)),
		slog.Int("items", len(items)),
	)
	return items, nil
}

func (b *Builder) title(ctx context.Context, key string) (string, error) {
	rc, err := b.store.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrFetch, key, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxDocumentSize))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrFetch, key, err)
	}
	doc, err := ParseDocument(key, data)
	if err != nil {
		return "", err
	}
	if doc.Title == "" {
		return "", nil
	}
	return "# " + doc.Title, nil
}
