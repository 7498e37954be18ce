// Package internal provides the core HTTP types for the folio site.
//
// Import "github.com/dmitrymomot/folio" instead, which re-exports the
// public API.
//
// # Core Types
//
//   - App: owns the chi router, middleware, health endpoints and lifecycle hooks
//   - Context: request/response access, rendering, cookies and the request translator
//   - Router: the interface handlers use to declare routes
//   - Handler: implemented by types that declare routes on a router
//   - HandlerFunc: a route handler that returns an error
//   - Middleware: wraps handlers to add cross-cutting concerns
//   - ErrorHandler: turns handler errors into responses
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed straight to outbound
// calls. When the client goes away the upstream request is cancelled:
//
//	func (h *Content) body(c folio.Context) error {
//	    doc, err := h.docs.Get(c, item.Path)
//	    ...
//	}
//
// # Localization
//
// The Language middleware stores an *i18n.Translator in the request context.
// T, Tn, Pick, Language and MonthYear read it; without the middleware they
// fall back to the catalogue passed with WithI18n, then to the raw key.
//
// # HTMX
//
// Render and RenderPartial cooperate with htmx. HTMX requests always receive
// HTTP 200 so error fragments are swapped in like any other fragment, while
// ResponseWriter.Status still reports the status the handler chose.
//
// # Errors
//
// Handlers return errors. *HTTPError carries the status, a user-facing
// message and an optional catalogue key (ErrorCode) the error handler
// translates. Anything else is treated as a 500.
//
// # Lifecycle
//
// App.Run binds the listener, runs startup hooks (the content warmer, for
// example), serves until SIGINT/SIGTERM or the base context ends, then shuts
// the server down and runs shutdown hooks within the shutdown timeout.
package internal
