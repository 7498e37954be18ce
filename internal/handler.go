package internal

// Handler declares routes on a router.
//
// Example:
//
//	type ScheduleHandler struct {
//	    url string
//	}
//
//	func (h *ScheduleHandler) Routes(r folio.Router) {
//	    r.GET("/schedule", h.show)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// It receives a Context and returns an error.
// Returning a non-nil error triggers the app's error handler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
//
// Example:
//
//	func NoStore(next folio.HandlerFunc) folio.HandlerFunc {
//	    return func(c folio.Context) error {
//	        c.SetHeader("Cache-Control", "no-store")
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error
