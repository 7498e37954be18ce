package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/folio/pkg/storage"
)

// maxDocumentSize bounds a single fetched object.
const maxDocumentSize = 8 << 20

// Source reads content objects by path relative to the content root.
type Source interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
	// URL returns a browser-usable address for path.
	URL(ctx context.Context, path string) (string, error)
}

// HTTPSource reads objects from a public base URL.
type HTTPSource struct {
	base    string
	client  *http.Client
	headers map[string]string
}

// HTTPOption configures an HTTPSource.
type HTTPOption func(*HTTPSource)

// WithHTTPClient replaces the default client (10s timeout).
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		if c != nil {
			s.client = c
		}
	}
}

// WithHeaders adds fixed request headers, e.g. "ngrok-skip-browser-warning".
func WithHeaders(h map[string]string) HTTPOption {
	return func(s *HTTPSource) {
		for k, v := range h {
			s.headers[k] = v
		}
	}
}

// NewHTTPSource creates a source rooted at base.
func NewHTTPSource(base string, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		base:    strings.TrimSuffix(base, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
		headers: make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *HTTPSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	u, _ := s.URL(ctx, path)
	return getBody(ctx, s.client, u, s.headers)
}

func (s *HTTPSource) URL(_ context.Context, path string) (string, error) {
	return s.base + "/" + escapePath(path), nil
}

// StorageSource reads objects from a bucket.
type StorageSource struct {
	store storage.Storage
}

// NewStorageSource wraps store.
func NewStorageSource(store storage.Storage) *StorageSource {
	return &StorageSource{store: store}
}

func (s *StorageSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	rc, err := s.store.Get(ctx, strings.TrimPrefix(path, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, path, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetch, path, err)
	}
	return data, nil
}

func (s *StorageSource) URL(ctx context.Context, path string) (string, error) {
	u, err := s.store.URL(ctx, strings.TrimPrefix(path, "/"), storage.WithExpiry(time.Hour))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrFetch, path, err)
	}
	return u, nil
}

// getBody performs a GET and returns the body of a 2xx response.
func getBody(ctx context.Context, client *http.Client, u string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetch, u, err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: %s: status %d", ErrFetch, u, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetch, u, err)
	}
	return data, nil
}

func escapePath(p string) string {
	parts := strings.Split(strings.TrimPrefix(p, "/"), "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
