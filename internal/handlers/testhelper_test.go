package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/internal"
	"github.com/dmitrymomot/folio/internal/handlers"
	"github.com/dmitrymomot/folio/internal/views"
	"github.com/dmitrymomot/folio/middlewares"
	"github.com/dmitrymomot/folio/pkg/analyzer"
	"github.com/dmitrymomot/folio/pkg/config"
	"github.com/dmitrymomot/folio/pkg/content"
	"github.com/dmitrymomot/folio/pkg/markdown"
)

const manifest = `{
  "generated_at": "2025-01-01T00:00:00Z",
  "articles": [
    {"name": "articles/intro.en.md", "title": "# Intro"},
    {"name": "articles/intro.fr.md", "title": "# Introduction"},
    {"name": "articles/solo.fr.md", "title": "# Seulement en français"}
  ],
  "showcases": ["showcases/rag.en.md"]
}`

// upstream is the content host. It counts hits per path and fails the
// first fail[path] requests of a path with a 500.
type upstream struct {
	mu    sync.Mutex
	files map[string]string
	hits  map[string]int
	fail  map[string]int
}

func (u *upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	u.mu.Lock()
	u.hits[r.URL.Path]++
	failing := u.fail[r.URL.Path] > 0
	if failing {
		u.fail[r.URL.Path]--
	}
	body, ok := u.files[r.URL.Path]
	u.mu.Unlock()

	switch {
	case failing:
		http.Error(w, "boom", http.StatusInternalServerError)
	case !ok:
		http.NotFound(w, r)
	default:
		_, _ = io.WriteString(w, body)
	}
}

func (u *upstream) failNext(path string, n int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.fail[path] = n
}

func (u *upstream) count(path string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.hits[path]
}

type fixture struct {
	app *internal.App
	up  *upstream
}

// scoring answers like the real analyzer: a score for text, a reason for files.
func scoring(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/analyze-application-text":
		_, _ = io.WriteString(w, `{"fitting_score": 7, "reasons": ["x", "y"]}`)
	case "/analyze-application":
		_, _ = io.WriteString(w, `{"reason": "Strong match for the role."}`)
	default:
		http.NotFound(w, r)
	}
}

func newFixture(t *testing.T, analyze http.HandlerFunc) *fixture {
	t.Helper()

	up := &upstream{
		files: map[string]string{
			"/index.json":           manifest,
			"/articles/intro.en.md": "# Intro\n\nHello **world**",
			"/articles/intro.fr.md": "# Introduction\n\nBonjour",
			"/articles/solo.fr.md":  "---\ntitle: Seul\n---\n# Seulement en français\n\nTexte",
			"/showcases/rag.en.md":  "# RAG\n\nRetrieval",
		},
		hits: make(map[string]int),
		fail: make(map[string]int),
	}
	contentSrv := httptest.NewServer(up)
	t.Cleanup(contentSrv.Close)

	if analyze == nil {
		analyze = scoring
	}
	analyzerSrv := httptest.NewServer(analyze)
	t.Cleanup(analyzerSrv.Close)

	svc, err := views.NewCatalogue()
	require.NoError(t, err)

	src := content.NewHTTPSource(contentSrv.URL)
	catalog := content.NewCatalog(content.NewIndexLoader(content.NewDocumentIndex(src)), content.SuffixStrategy{})
	docs := content.NewDocuments(src)
	md := markdown.New()
	site := handlers.Site{Profile: views.Profile{
		Name:        "Enzo Lebrun",
		Roles:       []string{"Lead Backend & GenAI"},
		ImageURL:    contentSrv.URL + "/me.png",
		Placeholder: config.PlaceholderImage,
		ScheduleURL: "https://calendar.example/new?text=Meeting",
	}}

	app := internal.New(
		internal.WithI18n(svc, views.Namespace),
		internal.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Language(svc, middlewares.WithLanguageNamespace(views.Namespace)),
		),
		internal.WithErrorHandler(handlers.ErrorHandler(site)),
		internal.WithNotFoundHandler(handlers.NotFound),
		internal.WithHandlers(
			handlers.NewHome(site, content.NewProfile(src), catalog),
			handlers.NewContent(content.KindArticles, site, catalog, docs, md),
			handlers.NewContent(content.KindShowcases, site, catalog, docs, md),
			handlers.NewAnalyze(analyzer.New(analyzerSrv.URL)),
			handlers.NewLanguage(svc),
			handlers.NewSchedule(site),
			handlers.NewAPI(catalog, middlewares.CORS()),
		),
	)
	return &fixture{app: app, up: up}
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.app.ServeHTTP(w, req)
	return w
}

func (f *fixture) get(target string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return f.do(req)
}

func form(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}
