package middlewares_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/internal"
	"github.com/dmitrymomot/folio/middlewares"
	"github.com/dmitrymomot/folio/pkg/logger"
)

func echoRequestID(c internal.Context) error {
	return c.String(http.StatusOK, middlewares.GetRequestID(c))
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates a uuid v7", func(t *testing.T) {
		t.Parallel()

		w := run(t, httptest.NewRequest(http.MethodGet, "/", nil), echoRequestID,
			[]internal.Middleware{middlewares.RequestID()})

		id, err := uuid.Parse(w.Body.String())
		require.NoError(t, err)
		require.Equal(t, uuid.Version(7), id.Version())
		require.Equal(t, w.Body.String(), w.Header().Get("X-Request-ID"))
	})

	t.Run("keeps the upstream id", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Correlation-ID", "edge-42")
		w := run(t, req, echoRequestID, []internal.Middleware{middlewares.RequestID()})
		require.Equal(t, "edge-42", w.Body.String())
	})

	t.Run("rejects oversized ids", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", strings.Repeat("x", 500))
		w := run(t, req, echoRequestID, []internal.Middleware{
			middlewares.RequestID(middlewares.WithRequestIDGenerator(func() string { return "fresh" })),
		})
		require.Equal(t, "fresh", w.Body.String())
	})

	t.Run("custom headers", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "ignored")
		req.Header.Set("X-Trace", "trace-1")
		w := run(t, req, echoRequestID, []internal.Middleware{
			middlewares.RequestID(middlewares.WithRequestIDHeaders("X-Trace")),
		})
		require.Equal(t, "trace-1", w.Body.String())
	})

	t.Run("missing middleware yields empty id", func(t *testing.T) {
		t.Parallel()

		w := run(t, httptest.NewRequest(http.MethodGet, "/", nil), echoRequestID, nil)
		require.Empty(t, w.Body.String())
	})
}

func TestRequestIDExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(logger.NewContextHandler(slog.NewJSONHandler(&buf, nil), middlewares.RequestIDExtractor()))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-7")
	run(t, req, func(c internal.Context) error {
		c.LogInfo("handled")
		return c.NoContent(http.StatusNoContent)
	}, []internal.Middleware{middlewares.RequestID()}, internal.WithCustomLogger(log))

	require.Contains(t, buf.String(), `"request_id":"req-7"`)
}
