package content

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// IndexFile is the manifest path relative to the content root.
const IndexFile = "index.json"

// IndexProvider produces a fresh Index on every call.
type IndexProvider interface {
	FetchIndex(ctx context.Context) (*Index, error)
}

// DocumentIndex reads a pre-built index.json from a Source.
type DocumentIndex struct {
	src  Source
	path string
}

// NewDocumentIndex reads IndexFile from src.
func NewDocumentIndex(src Source) *DocumentIndex {
	return &DocumentIndex{src: src, path: IndexFile}
}

func (d *DocumentIndex) FetchIndex(ctx context.Context) (*Index, error) {
	data, err := d.src.Fetch(ctx, d.path)
	if err != nil {
		return nil, err
	}
	return DecodeIndex(data)
}

// ListingIndex builds the Index from Git-hosted-content directory listings,
// one request per kind. Titles are left empty.
type ListingIndex struct {
	base    string
	client  *http.Client
	headers map[string]string
	now     func() time.Time
}

// NewListingIndex lists folders under base, e.g.
// https://api.github.com/repos/{owner}/{repo}/contents.
func NewListingIndex(base string, opts ...HTTPOption) *ListingIndex {
	// Reuse the HTTPSource options for client and headers.
	s := NewHTTPSource(base, opts...)
	if _, ok := s.headers["Accept"]; !ok {
		s.headers["Accept"] = "application/vnd.github+json"
	}
	return &ListingIndex{base: s.base, client: s.client, headers: s.headers, now: time.Now}
}

type listingEntry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
}

func (l *ListingIndex) FetchIndex(ctx context.Context) (*Index, error) {
	idx := &Index{GeneratedAt: l.now().UTC().Format(time.RFC3339)}
	for _, kind := range Kinds {
		items, err := l.list(ctx, string(kind))
		if err != nil {
			return nil, err
		}
		switch kind {
		case KindArticles:
			idx.Articles = items
		case KindShowcases:
			idx.Showcases = items
		}
	}
	return idx, nil
}

func (l *ListingIndex) list(ctx context.Context, folder string) ([]Item, error) {
	data, err := getBody(ctx, l.client, l.base+"/"+folder, l.headers)
	if err != nil {
		return nil, err
	}

	var entries []listingEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: listing %s: %v", ErrDecode, folder, err)
	}

	items := make([]Item, 0, len(entries))
	for _, e := range entries {
		if e.Type != "" && e.Type != "file" {
			continue
		}
		if !strings.HasSuffix(e.Name, ".md") {
			continue
		}
		name := e.Path
		if name == "" {
			name = folder + "/" + e.Name
		}
		items = append(items, Item{Name: name})
	}
	return items, nil
}
