package internal_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/internal"
)

func TestExtractor(t *testing.T) {
	t.Parallel()

	normalize := func(v string) (string, bool) {
		v = strings.ToLower(v)
		return v, v == "en" || v == "fr"
	}
	ext := internal.NewExtractor(
		internal.Accepting(internal.FromQuery("lang"), normalize),
		internal.Accepting(internal.FromCookie("preferred-language"), normalize),
		internal.FromHeader("X-Lang"),
	)

	tests := []struct {
		name   string
		setup  func(r *http.Request)
		want   string
		wantOK bool
	}{
		{
			name:   "query first",
			setup:  func(r *http.Request) { r.URL.RawQuery = "lang=FR" },
			want:   "fr",
			wantOK: true,
		},
		{
			name: "unsupported query falls through to cookie",
			setup: func(r *http.Request) {
				r.URL.RawQuery = "lang=de"
				r.AddCookie(&http.Cookie{Name: "preferred-language", Value: "en"})
			},
			want:   "en",
			wantOK: true,
		},
		{
			name:   "header last",
			setup:  func(r *http.Request) { r.Header.Set("X-Lang", "fr") },
			want:   "fr",
			wantOK: true,
		},
		{
			name:  "nothing matches",
			setup: func(r *http.Request) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(req)

			var got string
			var ok bool
			requestVia(t, req, nil, func(c internal.Context) error {
				got, ok = ext.Extract(c)
				return nil
			})
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestExtractor_ParamAndForm(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHandlers(routes(func(r internal.Router) {
		r.POST("/{kind}", func(c internal.Context) error {
			kind, _ := internal.NewExtractor(internal.FromParam("kind")).Extract(c)
			lang, _ := internal.NewExtractor(internal.FromForm("lang")).Extract(c)
			return c.String(http.StatusOK, kind+"/"+lang)
		})
	})))

	req := httptest.NewRequest(http.MethodPost, "/articles", strings.NewReader("lang=fr"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := serve(app, req)
	require.Equal(t, "articles/fr", w.Body.String())
}

func TestQueryDefault(t *testing.T) {
	t.Parallel()

	type kind string

	req := httptest.NewRequest(http.MethodGet, "/?limit=3&draft=true&kind=showcases&bad=x", nil)
	requestVia(t, req, nil, func(c internal.Context) error {
		require.Equal(t, 3, internal.QueryDefault(c, "limit", 10))
		require.Equal(t, 10, internal.QueryDefault(c, "bad", 10))
		require.Equal(t, 10, internal.QueryDefault(c, "missing", 10))
		require.True(t, internal.QueryDefault(c, "draft", false))
		require.Equal(t, kind("showcases"), internal.QueryDefault(c, "kind", kind("articles")))
		return nil
	})
}
