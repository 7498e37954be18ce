package handlers

import (
	"net/http"
	"time"

	"github.com/dmitrymomot/folio/internal"
	"github.com/dmitrymomot/folio/pkg/content"
)

// API exposes the localized lists as JSON for other sites.
//
//	GET /api/content/{kind}?lang=fr
type API struct {
	catalog Catalog
	mw      []internal.Middleware
}

// ContentList is the JSON body of GET /api/content/{kind}.
type ContentList struct {
	Kind     content.Kind            `json:"kind"`
	Lang     string                  `json:"lang"`
	Strategy string                  `json:"strategy"`
	Items    []content.LocalizedItem `json:"items"`
	// GeneratedAt is when the response was built, not the manifest date.
	GeneratedAt time.Time `json:"generated_at"`
}

// NewAPI creates the API handler. mw wraps every API route, typically CORS.
func NewAPI(catalog Catalog, mw ...internal.Middleware) *API {
	return &API{catalog: catalog, mw: mw}
}

// Routes implements internal.Handler.
func (h *API) Routes(r internal.Router) {
	r.Route("/api", func(r internal.Router) {
		r.Use(h.mw...)
		r.GET("/content/{kind}", h.list)
		r.OPTIONS("/content/{kind}", h.preflight)
	})
}

func (h *API) list(c internal.Context) error {
	kind, err := content.ParseKind(c.Param("kind"))
	if err != nil {
		return internal.ErrNotFound("unknown content kind", internal.WithErrorCode("not_found"), internal.WithError(err))
	}

	lang := c.Language()
	items, err := h.catalog.List(c.Context(), kind, lang)
	if err != nil {
		return internal.ErrBadGateway("content index unavailable", internal.WithErrorCode("content"), internal.WithError(err))
	}
	if items == nil {
		items = []content.LocalizedItem{}
	}

	return c.JSON(http.StatusOK, ContentList{
		Kind:        kind,
		Lang:        lang,
		Strategy:    h.catalog.Strategy().Name(),
		Items:       items,
		GeneratedAt: time.Now().UTC(),
	})
}

// preflight answers OPTIONS requests that the CORS middleware let through,
// i.e. ones without an Origin.
func (h *API) preflight(c internal.Context) error {
	c.SetHeader("Allow", "GET, OPTIONS")
	return c.NoContent(http.StatusNoContent)
}
