// Package folio is a bilingual (en/fr) portfolio site: a profile, an
// experience and education timeline, articles and project showcases read
// from a remote content store, and a job-fit analyzer backed by an external
// scoring service.
//
// The package is a thin facade over the HTTP application in internal/.
// The binary in cmd/folio wires configuration, content, rendering and the
// handlers together:
//
//	app := folio.New(
//	    folio.WithCustomLogger(log),
//	    folio.WithI18n(catalogue, views.Namespace),
//	    folio.WithMiddleware(
//	        middlewares.Recover(),
//	        middlewares.RequestID(),
//	        middlewares.Language(catalogue, middlewares.WithLanguageNamespace(views.Namespace)),
//	    ),
//	    folio.WithHandlers(
//	        handlers.NewHome(site, profile, catalog),
//	        handlers.NewContent(content.KindArticles, site, catalog, docs, md),
//	    ),
//	)
//
//	if err := app.Run(":8080", folio.Logger(log)); err != nil {
//	    log.Error("server stopped", "error", err)
//	}
//
// # Handlers
//
// Handlers implement the [Handler] interface to declare routes:
//
//	func (h *Schedule) Routes(r folio.Router) {
//	    r.GET("/schedule", h.show)
//	}
//
// A handler returns an error instead of writing one. The [ErrorHandler]
// renders it as a page, as an inline HTMX fragment, or as JSON for /api
// routes.
//
// # Shutdown
//
// The application handles SIGINT/SIGTERM for graceful shutdown. Cleanup
// functions registered with [WithShutdownHook] or [ShutdownHook] run after
// the server stops accepting requests:
//
//	err := app.Run(addr,
//	    folio.StartupHook(warmer.StartFunc()),
//	    folio.ShutdownHook(warmer.Shutdown()),
//	)
package folio
