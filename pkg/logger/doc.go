// Package logger builds the structured slog.Logger used across folio.
//
// Loggers write JSON (or text, for local development) to the configured
// writer and optionally forward warnings and errors to Sentry. Request-scoped
// values such as the request ID or the resolved language are attached to
// every record through context extractors.
//
// # Basic Usage
//
//	log := logger.New(logger.Config{Level: "debug"},
//		middlewares.RequestIDExtractor(),
//		middlewares.LanguageExtractor(),
//	)
//	log.InfoContext(ctx, "index refreshed", slog.Int("articles", 12))
//
// # Sentry
//
// When Config.Sentry.DSN is set, errors become Sentry issues and warnings are
// stored as breadcrumb logs. An empty DSN keeps logging on the local writer only,
// so the same code path works in development. Call Flush during shutdown to
// deliver buffered events:
//
//	folio.ShutdownHook(logger.Flush)
//
// # Context Extractors
//
// A ContextExtractor returns an attribute and true when the value is present:
//
//	type ContextExtractor func(ctx context.Context) (slog.Attr, bool)
//
// Extractors run on every log call so request-scoped values stay fresh.
package logger
