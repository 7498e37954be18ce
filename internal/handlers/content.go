package handlers

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/dmitrymomot/folio/internal"
	"github.com/dmitrymomot/folio/internal/views"
	"github.com/dmitrymomot/folio/pkg/content"
)

// Content serves the list, detail, and lazy body of one content kind. Articles
// and showcases share it; only the kind differs.
//
// Routes (showcases live under /projects):
//
//	GET /articles              list, strict: only items of the current language
//	GET /articles/{slug}       detail, falls back to another language with a notice
//	GET /articles/{slug}/body  HTMX fragment swapped into an expanded item
type Content struct {
	kind    content.Kind
	site    Site
	catalog Catalog
	docs    Documents
	md      Renderer
}

// NewContent creates the handler for kind.
func NewContent(kind content.Kind, site Site, catalog Catalog, docs Documents, md Renderer) *Content {
	return &Content{kind: kind, site: site, catalog: catalog, docs: docs, md: md}
}

// Routes implements internal.Handler.
func (h *Content) Routes(r internal.Router) {
	r.Route(views.KindURL(h.kind), func(r internal.Router) {
		r.GET("/", h.list)
		r.GET("/{slug}", h.detail)
		r.GET("/{slug}/body", h.body)
	})
}

func (h *Content) list(c internal.Context) error {
	data := views.ListData{
		Page: h.site.page(c, c.T(string(h.kind)+".title")),
		Kind: h.kind,
	}

	items, err := h.catalog.List(c.Context(), h.kind, c.Language())
	if err != nil {
		c.LogWarn("content list unavailable", "kind", h.kind, "error", err)
		data.Failed = true
	}
	data.Items = items

	return c.RenderPartial(http.StatusOK, views.ListPage(data), views.ItemList(data))
}

func (h *Content) detail(c internal.Context) error {
	item, err := h.find(c)
	if err != nil {
		return err
	}

	body, title := h.render(c, item)
	return c.Render(http.StatusOK, views.DetailPage(views.DetailData{
		Page: h.site.page(c, title),
		Kind: h.kind,
		Item: item,
		Body: body,
	}))
}

func (h *Content) body(c internal.Context) error {
	item, err := h.find(c)
	if errors.Is(err, content.ErrItemNotFound) {
		return err
	}
	if err != nil {
		c.LogWarn("content index unavailable", "kind", h.kind, "error", err)
		return c.Render(http.StatusOK, views.DocumentBody(views.BodyData{Tr: c.Translator(), Failed: true}))
	}

	body, _ := h.render(c, item)
	return c.Render(http.StatusOK, views.DocumentBody(body))
}

// find resolves the slug in the request language, falling back to any
// language. A missing slug is a 404; an unavailable index a 502.
func (h *Content) find(c internal.Context) (content.LocalizedItem, error) {
	slug := c.Param("slug")
	item, err := h.catalog.Find(c.Context(), h.kind, slug, c.Language())
	switch {
	case errors.Is(err, content.ErrItemNotFound):
		return item, internal.ErrNotFound("content not found",
			internal.WithErrorCode("not_found"),
			internal.WithError(err),
		)
	case err != nil:
		return item, internal.ErrBadGateway("content index unavailable",
			internal.WithErrorCode("content"),
			internal.WithError(err),
		)
	}
	return item, nil
}

// render fetches and renders the body of item. Failures are logged and
// produce the inline failure notice; the title falls back to the manifest's.
func (h *Content) render(c internal.Context, item content.LocalizedItem) (views.BodyData, string) {
	body := views.BodyData{Tr: c.Translator()}

	doc, err := h.docs.Get(c.Context(), item.Path)
	if err != nil {
		c.LogWarn("document fetch failed", "path", item.Path, "error", err)
		body.Failed = true
		return body, item.Title
	}

	html, err := h.md.Render(c.Context(), []byte(doc.Body))
	if err != nil {
		c.LogWarn("document render failed", "path", item.Path, "error", err)
		body.Failed = true
		return body, item.Title
	}
	// The renderer sanitizes its output.
	body.HTML = template.HTML(html)

	title := doc.Title
	if title == "" {
		title = item.Title
	}
	return body, title
}
