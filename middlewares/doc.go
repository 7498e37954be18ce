// Package middlewares provides the HTTP middleware the folio site runs.
//
// # Request ID
//
// RequestID assigns a UUIDv7 to each request, or keeps the one an upstream
// proxy sent. Pair it with RequestIDExtractor so every log record carries it:
//
//	app := folio.New(
//	    folio.WithLogger(cfg.Log, middlewares.RequestIDExtractor(), middlewares.LanguageExtractor()),
//	    folio.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Language
//
// Language resolves the visitor's language and stores an *i18n.Translator in
// the request context. The lookup order is the ?lang= query parameter, the
// preferred-language cookie, the primary Accept-Language tag, then the
// catalogue default. Unsupported values are skipped.
//
//	folio.WithMiddleware(middlewares.Language(catalogue, middlewares.WithLanguageNamespace("ui")))
//
// # Recover
//
// Recover turns panics into *PanicError values for the app error handler.
//
// # Timeout
//
// Timeout attaches a deadline to the request context. Outbound calls made
// with the context are cancelled when it passes and the handler's error is
// reported as *TimeoutError:
//
//	r.POST("/analyze", h.analyze, middlewares.Timeout(30*time.Second))
//
// # CORS
//
// CORS answers preflight requests and adds Access-Control-* headers for
// allowed origins. It guards the read-only JSON API:
//
//	r.Route("/api", func(r folio.Router) {
//	    r.Use(middlewares.CORS(middlewares.WithAllowOrigins(cfg.Server.CORSOrigins...)))
//	    ...
//	})
package middlewares
