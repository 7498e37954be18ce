package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/folio/middlewares"
	"github.com/dmitrymomot/folio/pkg/cache"
	"github.com/dmitrymomot/folio/pkg/config"
	"github.com/dmitrymomot/folio/pkg/content"
	"github.com/dmitrymomot/folio/pkg/logger"
	"github.com/dmitrymomot/folio/pkg/redis"
	"github.com/dmitrymomot/folio/pkg/storage"
)

// cachePrefix namespaces every shared cache key of this site.
const cachePrefix = "folio"

// stack is the content side of the site, shared by serve and the content
// commands.
type stack struct {
	cfg      *config.Config
	log      *slog.Logger
	rdb      goredis.UniversalClient
	store    storage.Storage
	src      content.Source
	index    *content.IndexLoader
	strategy content.Strategy
	catalog  *content.Catalog
	docs     *content.Documents
	profile  *content.Profile
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger tags every record with the request ID and the language.
// CLI commands pass stderr so log lines stay out of their output.
func newLogger(cfg *config.Config, out io.Writer) *slog.Logger {
	lc := cfg.Log
	if out != nil {
		lc.Output = out
	}
	return logger.New(lc, middlewares.RequestIDExtractor(), middlewares.LanguageExtractor())
}

func openStack(ctx context.Context, cfg *config.Config, log *slog.Logger) (*stack, error) {
	s := &stack{cfg: cfg, log: log}

	if cfg.Redis.Enabled() {
		rdb, err := redis.Open(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		s.rdb = rdb
	}

	if cfg.Storage.Bucket != "" {
		store, err := storage.New(cfg.Storage)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("storage: %w", err)
		}
		s.store = store
	}

	httpClient := &http.Client{Timeout: cfg.Content.FetchTimeout}
	httpOpts := []content.HTTPOption{
		content.WithHTTPClient(httpClient),
		content.WithHeaders(cfg.Content.Headers),
	}

	switch cfg.Content.Source {
	case config.SourceStorage:
		s.src = content.NewStorageSource(s.store)
	default:
		s.src = content.NewHTTPSource(cfg.Content.BaseURL, httpOpts...)
	}

	var provider content.IndexProvider = content.NewDocumentIndex(s.src)
	if cfg.Content.Index == config.IndexListing {
		provider = content.NewListingIndex(cfg.Content.ListingURL, httpOpts...)
	}

	strategy, err := content.NewStrategy(cfg.Content.Strategy)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.strategy = strategy

	loaderOpts := []content.LoaderOption{
		content.WithStaleAfter(cfg.Content.StaleAfter),
		content.WithLogger(log),
	}
	var docOpts []content.DocumentsOption
	switch {
	case s.rdb != nil:
		loaderOpts = append(loaderOpts, content.WithSnapshotCache(
			cache.NewRedis[content.Snapshot](s.rdb, cache.JSONCodec[content.Snapshot]{}, cache.WithPrefix(cachePrefix)),
		))
		docOpts = append(docOpts, content.WithDocumentCache(
			cache.NewRedis[content.Document](s.rdb, cache.JSONCodec[content.Document]{}, cache.WithPrefix(cachePrefix)),
		))
	case cfg.Content.CacheEntries > 0:
		docOpts = append(docOpts, content.WithDocumentCache(
			cache.NewMemory[content.Document](cache.WithMaxEntries(cfg.Content.CacheEntries)),
		))
	}

	s.index = content.NewIndexLoader(provider, loaderOpts...)
	s.catalog = content.NewCatalog(s.index, s.strategy)
	s.docs = content.NewDocuments(s.src, docOpts...)
	s.profile = content.NewProfile(s.src,
		content.WithProfileTTL(cfg.Content.StaleAfter),
		content.WithProfileLogger(log),
	)
	return s, nil
}

// imageURL resolves the profile picture: an explicit URL wins over the
// object key in the content store.
func (s *stack) imageURL(ctx context.Context) string {
	if s.cfg.Profile.ImageURL != "" || s.cfg.Profile.ImageKey == "" {
		return s.cfg.Profile.ImageURL
	}
	u, err := s.src.URL(ctx, s.cfg.Profile.ImageKey)
	if err != nil {
		s.log.WarnContext(ctx, "profile image unavailable, using placeholder",
			slog.String("key", s.cfg.Profile.ImageKey),
			slog.String("error", err.Error()),
		)
		return ""
	}
	return u
}

// Close releases the redis connection, if any.
func (s *stack) Close() {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Close(); err != nil {
		s.log.Warn("redis close failed", slog.String("error", err.Error()))
	}
}
