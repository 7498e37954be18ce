package folio_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio"
)

type ctxKey struct{}

type pages struct{}

func (pages) Routes(r folio.Router) {
	r.GET("/", func(c folio.Context) error {
		return c.String(http.StatusOK, "home")
	})
	r.GET("/value", func(c folio.Context) error {
		return c.String(http.StatusOK, folio.ContextValue[string](c, ctxKey{}))
	})
	r.GET("/broken", func(c folio.Context) error {
		return folio.ErrBadGateway("content store down", folio.WithErrorCode("content"))
	})
	r.Route("/api", func(r folio.Router) {
		r.GET("/ping", func(c folio.Context) error {
			return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
		})
	})
}

func withValue(v string) folio.Middleware {
	return func(next folio.HandlerFunc) folio.HandlerFunc {
		return func(c folio.Context) error {
			c.Set(ctxKey{}, v)
			return next(c)
		}
	}
}

func serve(app *folio.App, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestApp(t *testing.T) {
	t.Parallel()

	assets := fstest.MapFS{"static/app.css": {Data: []byte("body{}")}}

	app := folio.New(
		folio.WithMiddleware(withValue("carried")),
		folio.WithHandlers(pages{}),
		folio.WithStaticFiles("/static/", assets, "static"),
		folio.WithErrorHandler(func(c folio.Context, err error) error {
			if httpErr := folio.AsHTTPError(err); httpErr != nil {
				return c.String(httpErr.Code, httpErr.ErrorCode)
			}
			return c.String(http.StatusInternalServerError, "internal")
		}),
		folio.WithNotFoundHandler(func(c folio.Context) error {
			return folio.ErrNotFound("missing", folio.WithErrorCode("not_found"))
		}),
		folio.WithHealthChecks(
			folio.WithReadinessCheck("content", func(context.Context) error { return errors.New("down") }),
		),
	)

	t.Run("routes", func(t *testing.T) {
		w := serve(app, http.MethodGet, "/")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "home", w.Body.String())

		w = serve(app, http.MethodGet, "/api/ping")
		require.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	})

	t.Run("middleware values reach handlers", func(t *testing.T) {
		require.Equal(t, "carried", serve(app, http.MethodGet, "/value").Body.String())
	})

	t.Run("errors go through the error handler", func(t *testing.T) {
		w := serve(app, http.MethodGet, "/broken")
		require.Equal(t, http.StatusBadGateway, w.Code)
		require.Equal(t, "content", w.Body.String())

		w = serve(app, http.MethodGet, "/nowhere")
		require.Equal(t, http.StatusNotFound, w.Code)
		require.Equal(t, "not_found", w.Body.String())
	})

	t.Run("static files", func(t *testing.T) {
		w := serve(app, http.MethodGet, "/static/app.css")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "body{}", w.Body.String())
		require.Equal(t, "public, max-age=3600", w.Header().Get("Cache-Control"))

		require.Equal(t, http.StatusNotFound, serve(app, http.MethodGet, "/static/").Code)
	})

	t.Run("health", func(t *testing.T) {
		require.Equal(t, http.StatusOK, serve(app, http.MethodGet, "/health/live").Code)
		require.Equal(t, http.StatusServiceUnavailable, serve(app, http.MethodGet, "/health/ready").Code)
	})
}
