package content_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/content"
)

// docServer serves markdown bodies and counts hits per path. The first
// failFirst requests for any path answer 500.
type docServer struct {
	mu        sync.Mutex
	hits      map[string]int
	failFirst int
	delay     time.Duration
	bodies    map[string]string
}

func newDocServer(t *testing.T, bodies map[string]string) (*docServer, *httptest.Server) {
	t.Helper()

	ds := &docServer{hits: make(map[string]int), bodies: bodies}
	srv := httptest.NewServer(ds)
	t.Cleanup(srv.Close)
	return ds, srv
}

func (d *docServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	d.hits[r.URL.Path]++
	n := d.hits[r.URL.Path]
	body, ok := d.bodies[r.URL.Path]
	d.mu.Unlock()

	if d.delay > 0 {
		time.Sleep(d.delay)
	}
	switch {
	case n <= d.failFirst:
		http.Error(w, "boom", http.StatusInternalServerError)
	case !ok:
		http.NotFound(w, r)
	default:
		_, _ = w.Write([]byte(body))
	}
}

func (d *docServer) count(path string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hits[path]
}

func TestDocuments_FetchedOnce(t *testing.T) {
	t.Parallel()

	ds, srv := newDocServer(t, map[string]string{"/articles/a.en.md": "# Hello\n\nBody"})
	docs := content.NewDocuments(content.NewHTTPSource(srv.URL))

	for range 2 {
		doc, err := docs.Get(context.Background(), "articles/a.en.md")
		require.NoError(t, err)
		require.Equal(t, "Hello", doc.Title)
		require.Contains(t, doc.Body, "Body")
	}
	require.Equal(t, 1, ds.count("/articles/a.en.md"))
}

func TestDocuments_FailureNotCached(t *testing.T) {
	t.Parallel()

	ds, srv := newDocServer(t, map[string]string{"/articles/a.en.md": "# Hello"})
	ds.failFirst = 1
	docs := content.NewDocuments(content.NewHTTPSource(srv.URL))

	_, err := docs.Get(context.Background(), "articles/a.en.md")
	require.ErrorIs(t, err, content.ErrFetch)
	require.Equal(t, 1, ds.count("/articles/a.en.md"))

	_, err = docs.Get(context.Background(), "articles/a.en.md")
	require.NoError(t, err)
	require.Equal(t, 2, ds.count("/articles/a.en.md"))

	_, err = docs.Get(context.Background(), "articles/a.en.md")
	require.NoError(t, err)
	require.Equal(t, 2, ds.count("/articles/a.en.md"))
}

func TestDocuments_KeyedByPath(t *testing.T) {
	t.Parallel()

	ds, srv := newDocServer(t, map[string]string{
		"/articles/a.en.md": "# Hello",
		"/articles/a.fr.md": "# Bonjour",
	})
	docs := content.NewDocuments(content.NewHTTPSource(srv.URL))

	en, err := docs.Get(context.Background(), "articles/a.en.md")
	require.NoError(t, err)
	fr, err := docs.Get(context.Background(), "articles/a.fr.md")
	require.NoError(t, err)
	again, err := docs.Get(context.Background(), "articles/a.en.md")
	require.NoError(t, err)

	require.Equal(t, "Hello", en.Title)
	require.Equal(t, "Bonjour", fr.Title)
	require.Equal(t, en, again)
	require.Equal(t, 1, ds.count("/articles/a.en.md"))
	require.Equal(t, 1, ds.count("/articles/a.fr.md"))
}

func TestDocuments_ConcurrentRequestsCoalesce(t *testing.T) {
	t.Parallel()

	ds, srv := newDocServer(t, map[string]string{"/a.en.md": "# A"})
	ds.delay = 50 * time.Millisecond
	docs := content.NewDocuments(content.NewHTTPSource(srv.URL))

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = docs.Get(context.Background(), "a.en.md")
		}()
	}
	wg.Wait()

	require.Equal(t, 1, ds.count("/a.en.md"))
}

func TestDocuments_CancelledVisitorDoesNotFailOthers(t *testing.T) {
	t.Parallel()

	ds, srv := newDocServer(t, map[string]string{"/a.en.md": "# A"})
	ds.delay = 100 * time.Millisecond
	docs := content.NewDocuments(content.NewHTTPSource(srv.URL))

	first, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := docs.Get(first, "a.en.md")
		firstErr <- err
	}()

	time.Sleep(10 * time.Millisecond)
	type result struct {
		doc content.Document
		err error
	}
	second := make(chan result, 1)
	go func() {
		doc, err := docs.Get(context.Background(), "a.en.md")
		second <- result{doc, err}
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()
	require.ErrorIs(t, <-firstErr, context.Canceled)

	res := <-second
	require.NoError(t, res.err)
	require.Equal(t, "A", res.doc.Title)
	require.Equal(t, 1, ds.count("/a.en.md"))
}

func TestParseDocument(t *testing.T) {
	t.Parallel()

	t.Run("front matter title wins", func(t *testing.T) {
		t.Parallel()

		doc, err := content.ParseDocument("a.md", []byte("---\ntitle: From meta\ntags: [go, rag]\n---\n# From heading\n\ntext\n"))
		require.NoError(t, err)
		require.Equal(t, "From meta", doc.Title)
		require.Equal(t, []string{"go", "rag"}, doc.Meta.Tags)
		require.NotContains(t, doc.Body, "title:")
		require.Contains(t, doc.Body, "# From heading")
	})

	t.Run("first heading outside code fences", func(t *testing.T) {
		t.Parallel()

		doc, err := content.ParseDocument("a.md", []byte("intro\n```\n# not a title\n```\n## Sub\n# Real title\n"))
		require.NoError(t, err)
		require.Equal(t, "Real title", doc.Title)
	})

	t.Run("no heading", func(t *testing.T) {
		t.Parallel()

		doc, err := content.ParseDocument("a.md", []byte("just text"))
		require.NoError(t, err)
		require.Empty(t, doc.Title)
		require.Contains(t, doc.Body, "just text")
	})
}
