package internal_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/internal"
	"github.com/dmitrymomot/folio/pkg/htmx"
	"github.com/dmitrymomot/folio/pkg/i18n"
)

// requestVia registers fn at GET / on a fresh App and sends req through it.
func requestVia(t *testing.T, req *http.Request, opts []internal.Option, fn func(c internal.Context) error) *httptest.ResponseRecorder {
	t.Helper()

	opts = append(opts, internal.WithHandlers(routes(func(r internal.Router) {
		r.GET("/", fn)
		r.POST("/", fn)
	})))
	return serve(internal.New(opts...), req)
}

func testCatalogue(t *testing.T) *i18n.I18n {
	t.Helper()

	svc, err := i18n.New(
		i18n.WithLanguages(i18n.EN, i18n.FR),
		i18n.WithTranslations(i18n.EN, "ui", map[string]any{
			"present":  "Present",
			"articles": map[string]any{"one": "{{count}} article", "other": "{{count}} articles"},
		}),
		i18n.WithTranslations(i18n.FR, "ui", map[string]any{
			"present": "Présent",
		}),
	)
	require.NoError(t, err)
	return svc
}

type component string

func (s component) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, string(s))
	return err
}

func TestContext_ContextInterface(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	type key struct{}
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(context.WithValue(ctx, key{}, "v"))

	requestVia(t, req, nil, func(c internal.Context) error {
		_, ok := c.Deadline()
		require.True(t, ok)
		require.NoError(t, c.Err())
		require.Equal(t, "v", c.Value(key{}))
		return nil
	})
}

func TestContext_Render(t *testing.T) {
	t.Parallel()

	full, partial := component("<html>page</html>"), component("<div>fragment</div>")
	handler := func(c internal.Context) error {
		return c.RenderPartial(http.StatusOK, full, partial, htmx.WithRetarget("#body"))
	}

	t.Run("full page", func(t *testing.T) {
		t.Parallel()

		w := requestVia(t, httptest.NewRequest(http.MethodGet, "/", nil), nil, handler)
		require.Equal(t, "<html>page</html>", w.Body.String())
		require.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
		require.Empty(t, w.Header().Get(htmx.HeaderHXRetarget))
	})

	t.Run("htmx partial", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(htmx.HeaderHXRequest, "true")
		w := requestVia(t, req, nil, handler)
		require.Equal(t, "<div>fragment</div>", w.Body.String())
		require.Equal(t, "#body", w.Header().Get(htmx.HeaderHXRetarget))
	})
}

func TestContext_Redirect(t *testing.T) {
	t.Parallel()

	handler := func(c internal.Context) error {
		return c.RedirectBack("/")
	}

	t.Run("plain request", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Referer", "http://example.com/articles?lang=fr&page=2")
		w := requestVia(t, req, nil, handler)
		require.Equal(t, http.StatusFound, w.Code)
		require.Equal(t, "/articles?page=2", w.Header().Get("Location"))
	})

	t.Run("htmx request", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set(htmx.HeaderHXRequest, "true")
		req.Header.Set(htmx.HeaderHXCurrentURL, "http://example.com/projects/etl")
		w := requestVia(t, req, nil, handler)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "/projects/etl", w.Header().Get(htmx.HeaderHXRedirect))
	})
}

func TestContext_Cookies(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "preferred-language", Value: "fr"})

	w := requestVia(t, req, nil, func(c internal.Context) error {
		v, err := c.Cookie("preferred-language")
		require.NoError(t, err)
		require.Equal(t, "fr", v)

		_, err = c.Cookie("missing")
		require.Error(t, err)

		c.SetCookie("preferred-language", "en", 3600)
		return c.NoContent(http.StatusNoContent)
	})

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "en", cookies[0].Value)
	require.Equal(t, 3600, cookies[0].MaxAge)
	require.True(t, cookies[0].HttpOnly)
}

func TestContext_Translator(t *testing.T) {
	t.Parallel()

	svc := testCatalogue(t)

	t.Run("request translator wins", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(i18n.WithTranslator(req.Context(), i18n.NewTranslator(svc, i18n.FR, "ui")))

		requestVia(t, req, []internal.Option{internal.WithI18n(svc, "ui")}, func(c internal.Context) error {
			require.Equal(t, i18n.FR, c.Language())
			require.Equal(t, "Présent", c.T("present"))
			require.Equal(t, "Bonjour", c.Pick(i18n.Text{i18n.EN: "Hello", i18n.FR: "Bonjour"}))
			require.Equal(t, "janv. 2023", c.MonthYear(time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)))
			return nil
		})
	})

	t.Run("app catalogue is the fallback", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		requestVia(t, req, []internal.Option{internal.WithI18n(svc, "ui")}, func(c internal.Context) error {
			require.Equal(t, i18n.EN, c.Language())
			require.Equal(t, "Present", c.T("present"))
			require.Equal(t, "2 articles", c.Tn("articles", 2))
			return nil
		})
	})

	t.Run("without a catalogue keys come back", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		requestVia(t, req, nil, func(c internal.Context) error {
			require.Nil(t, c.Translator())
			require.Equal(t, "present", c.T("present"))
			require.Equal(t, "Hello", c.Pick(i18n.Text{i18n.EN: "Hello", i18n.FR: "Bonjour"}))
			require.Equal(t, "Jan 2023", c.MonthYear(time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)))
			return nil
		})
	})
}

func TestContext_Form(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/?kind=articles", strings.NewReader("lang=fr"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	requestVia(t, req, nil, func(c internal.Context) error {
		require.Equal(t, "fr", c.Form("lang"))
		require.Equal(t, "articles", c.Query("kind"))
		require.Equal(t, "en", c.QueryDefault("lang", "en"))
		return nil
	})
}

func TestHTTPError(t *testing.T) {
	t.Parallel()

	cause := errors.New("upstream 502")
	err := internal.ErrBadGateway("Failed to load content.",
		internal.WithError(cause),
		internal.WithErrorCode("errors.load_content"),
		internal.WithRequestID("req-1"),
	)

	require.Equal(t, http.StatusBadGateway, err.StatusCode())
	require.Equal(t, "Bad Gateway", err.StatusText())
	require.ErrorIs(t, err, cause)
	require.Equal(t, "errors.load_content", err.ErrorCode)

	wrapped := fmt.Errorf("render: %w", err)
	require.True(t, internal.IsHTTPError(wrapped))
	require.Same(t, err, internal.AsHTTPError(wrapped))
	require.Nil(t, internal.AsHTTPError(cause))
	require.Nil(t, internal.AsHTTPError(nil))
}
