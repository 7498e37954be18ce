package storage_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/storage"
)

// fakeS3 serves the path-style subset of the S3 API used by S3Storage.
type fakeS3 struct {
	mu      sync.Mutex
	bucket  string
	objects map[string]string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, "/"+f.bucket), "/")

	switch {
	case r.Method == http.MethodGet && key == "" && r.URL.Query().Get("list-type") == "2":
		prefix := r.URL.Query().Get("prefix")
		var b strings.Builder
		b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">`)
		fmt.Fprintf(&b, "<Name>%s</Name><Prefix>%s</Prefix><IsTruncated>false</IsTruncated>", f.bucket, prefix)
		for k, v := range f.objects {
			if strings.HasPrefix(k, prefix) {
				fmt.Fprintf(&b, "<Contents><Key>%s</Key><Size>%d</Size></Contents>", k, len(v))
			}
		}
		b.WriteString(`</ListBucketResult>`)
		w.Header().Set("Content-Type", "application/xml")
		_, _ = io.WriteString(w, b.String())

	case r.Method == http.MethodGet:
		body, ok := f.objects[key]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`)
			return
		}
		_, _ = io.WriteString(w, body)

	case r.Method == http.MethodPut:
		data, _ := io.ReadAll(r.Body)
		f.objects[key] = string(data)
		w.WriteHeader(http.StatusOK)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestStorage(t *testing.T, objects map[string]string, mod ...func(*storage.Config)) (*storage.S3Storage, *fakeS3) {
	t.Helper()

	fake := &fakeS3{bucket: "portfolio", objects: objects}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	cfg := storage.Config{
		Bucket:    "portfolio",
		AccessKey: "test",
		SecretKey: "test",
		Endpoint:  srv.URL,
		PathStyle: true,
	}
	for _, m := range mod {
		m(&cfg)
	}

	store, err := storage.New(cfg)
	require.NoError(t, err)
	return store, fake
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()

	store, err := storage.New(storage.Config{Bucket: "b"})
	require.ErrorIs(t, err, storage.ErrInvalidConfig)
	require.Nil(t, store)
}

func TestS3Storage_Get(t *testing.T) {
	t.Parallel()

	store, _ := newTestStorage(t, map[string]string{"articles/a.en.md": "# Hello"})
	ctx := context.Background()

	rc, err := store.Get(ctx, "articles/a.en.md")
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, "# Hello", string(body))

	_, err = store.Get(ctx, "articles/missing.md")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestS3Storage_List(t *testing.T) {
	t.Parallel()

	store, _ := newTestStorage(t, map[string]string{
		"articles/a.en.md":  "a",
		"articles/a.fr.md":  "aa",
		"showcases/x.en.md": "x",
	})

	objs, err := store.List(context.Background(), "articles/")
	require.NoError(t, err)
	require.Len(t, objs, 2)

	keys := []string{objs[0].Key, objs[1].Key}
	require.ElementsMatch(t, []string{"articles/a.en.md", "articles/a.fr.md"}, keys)
}

func TestS3Storage_Put(t *testing.T) {
	t.Parallel()

	store, fake := newTestStorage(t, map[string]string{})

	err := store.Put(context.Background(), "index.json", strings.NewReader(`{"articles":[]}`),
		storage.WithContentType("application/json"),
		storage.WithCacheControl("no-cache"),
	)
	require.NoError(t, err)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	require.Contains(t, fake.objects["index.json"], `{"articles":[]}`)
}

func TestS3Storage_URL(t *testing.T) {
	t.Parallel()

	t.Run("public url", func(t *testing.T) {
		t.Parallel()

		store, _ := newTestStorage(t, nil, func(c *storage.Config) { c.PublicURL = "https://cdn.example.com/" })
		u, err := store.URL(context.Background(), "me.png")
		require.NoError(t, err)
		require.Equal(t, "https://cdn.example.com/me.png", u)
	})

	t.Run("presigned url", func(t *testing.T) {
		t.Parallel()

		store, _ := newTestStorage(t, nil)
		u, err := store.URL(context.Background(), "me.png")
		require.NoError(t, err)
		require.Contains(t, u, "/portfolio/me.png")
		require.Contains(t, u, "X-Amz-Signature=")
	})

	t.Run("forced signature", func(t *testing.T) {
		t.Parallel()

		store, _ := newTestStorage(t, nil, func(c *storage.Config) { c.PublicURL = "https://cdn.example.com" })
		u, err := store.URL(context.Background(), "me.png", storage.WithSigned())
		require.NoError(t, err)
		require.Contains(t, u, "X-Amz-Signature=")
	})
}
