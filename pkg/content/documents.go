package content

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/dmitrymomot/folio/pkg/cache"
)

// FrontMatter holds the optional metadata block at the top of a document.
type FrontMatter struct {
	Title       string   `yaml:"title" toml:"title" json:"title"`
	Description string   `yaml:"description" toml:"description" json:"description"`
	Date        string   `yaml:"date" toml:"date" json:"date"`
	Tags        []string `yaml:"tags" toml:"tags" json:"tags"`
}

// Document is a fetched markdown file.
type Document struct {
	Path string      `json:"path"`
	Meta FrontMatter `json:"meta"`
	// Title is the front matter title, else the first "# " heading.
	Title string `json:"title"`
	// Body is the markdown without front matter.
	Body string `json:"body"`
}

// Documents fetches document bodies once per path. Paths already carry the
// language, so a language switch reads a different key. Failures are never
// cached.
type Documents struct {
	src    Source
	loader *cache.Loader[Document]
}

// DocumentsOption configures Documents.
type DocumentsOption func(*Documents)

// WithDocumentCache stores bodies in c instead of a private in-memory cache.
func WithDocumentCache(c cache.Cache[Document]) DocumentsOption {
	return func(d *Documents) {
		if c != nil {
			d.loader = cache.NewLoader(c)
		}
	}
}

// NewDocuments creates a fetcher over src.
func NewDocuments(src Source, opts ...DocumentsOption) *Documents {
	d := &Documents{src: src}
	for _, opt := range opts {
		opt(d)
	}
	if d.loader == nil {
		d.loader = cache.NewLoader[Document](cache.NewMemory[Document](cache.WithSweepInterval(0)))
	}
	return d
}

// Get returns the document at path, fetching it on first use.
func (d *Documents) Get(ctx context.Context, path string) (Document, error) {
	return d.loader.Load(ctx, "content:doc:"+path, func(ctx context.Context) (Document, time.Duration, error) {
		data, err := d.src.Fetch(ctx, path)
		if err != nil {
			return Document{}, 0, err
		}
		doc, err := ParseDocument(path, data)
		return doc, cache.NoExpiry, err
	})
}

// URL returns a browser-usable address for the raw document.
func (d *Documents) URL(ctx context.Context, path string) (string, error) {
	return d.src.URL(ctx, path)
}

// ParseDocument splits front matter from the body and derives the title.
func ParseDocument(path string, data []byte) (Document, error) {
	var meta FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %s: front matter: %v", ErrDecode, path, err)
	}

	doc := Document{Path: path, Meta: meta, Body: string(body)}
	doc.Title = strings.TrimSpace(meta.Title)
	if doc.Title == "" {
		doc.Title = FirstHeading(body)
	}
	return doc, nil
}

// FirstHeading returns the text of the first level-one ATX heading.
func FirstHeading(body []byte) string {
	sc := bufio.NewScanner(bytes.NewReader(body))
	sc.Buffer(make([]byte, 0, 64*1024), maxDocumentSize)
	inFence := false
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "```") || strings.HasPrefix(line, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if rest, ok := strings.CutPrefix(line, "# "); ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}
