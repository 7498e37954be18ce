// Package handlers implements the site's pages, HTMX fragments, and JSON API.
//
// Each handler receives its collaborators through its constructor and
// declares its routes in Routes. Handlers depend on the small interfaces
// below rather than on concrete services, so tests can swap in fakes.
//
// Pages read the request language through Context.Language, which the
// Language middleware resolves. Content failures render inline ("Failed to
// load content.") instead of failing the request, so the rest of the page
// stays usable.
package handlers

import (
	"context"
	"io"

	"github.com/dmitrymomot/folio/internal"
	"github.com/dmitrymomot/folio/internal/views"
	"github.com/dmitrymomot/folio/pkg/analyzer"
	"github.com/dmitrymomot/folio/pkg/content"
)

// Catalog lists and finds localized items.
type Catalog interface {
	Strategy() content.Strategy
	List(ctx context.Context, kind content.Kind, lang string) ([]content.LocalizedItem, error)
	Find(ctx context.Context, kind content.Kind, slug, lang string) (content.LocalizedItem, error)
}

// Documents returns document bodies by path.
type Documents interface {
	Get(ctx context.Context, path string) (content.Document, error)
}

// Renderer turns markdown into sanitized HTML.
type Renderer interface {
	Render(ctx context.Context, source []byte) (string, error)
}

// Profile returns the experience and education lists. Both always return a
// list: failures fall back to the embedded defaults.
type Profile interface {
	Experiences(ctx context.Context, lang string) []content.Experience
	Education(ctx context.Context, lang string) []content.Education
}

// Analyzer scores job descriptions.
type Analyzer interface {
	AnalyzeText(ctx context.Context, text string) (analyzer.Result, error)
	AnalyzeFile(ctx context.Context, name string, r io.Reader) (analyzer.Result, error)
}

var (
	_ Catalog   = (*content.Catalog)(nil)
	_ Documents = (*content.Documents)(nil)
	_ Profile   = (*content.Profile)(nil)
	_ Analyzer  = (*analyzer.Client)(nil)
)

// Site is the deployment data every page shows.
type Site struct {
	Profile views.Profile
}

func (s Site) page(c internal.Context, title string) views.Page {
	return views.Page{
		Tr:       c.Translator(),
		Title:    title,
		Path:     c.Request().URL.Path,
		SiteName: s.Profile.Name,
	}
}
