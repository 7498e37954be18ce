package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrymomot/folio/internal"
)

type routes func(r internal.Router)

func (f routes) Routes(r internal.Router) { f(r) }

// run mounts h behind route-level mw on every method at "/" and sends req
// through a real App. Route-level middleware sees the handler's error.
func run(t *testing.T, req *http.Request, h internal.HandlerFunc, mw []internal.Middleware, opts ...internal.Option) *httptest.ResponseRecorder {
	t.Helper()

	opts = append(opts,
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/", h, mw...)
			r.POST("/", h, mw...)
			r.OPTIONS("/", h, mw...)
		})),
	)
	w := httptest.NewRecorder()
	internal.New(opts...).ServeHTTP(w, req)
	return w
}

func ok(c internal.Context) error {
	return c.String(http.StatusOK, "ok")
}
