package handlers

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/folio/internal"
	"github.com/dmitrymomot/folio/internal/views"
	"github.com/dmitrymomot/folio/pkg/content"
)

// Home serves the landing page: hero, experience, education, articles, and
// the analyzer widget.
type Home struct {
	site    Site
	profile Profile
	catalog Catalog
}

// NewHome creates the home page handler.
func NewHome(site Site, profile Profile, catalog Catalog) *Home {
	return &Home{site: site, profile: profile, catalog: catalog}
}

// Routes implements internal.Handler.
func (h *Home) Routes(r internal.Router) {
	r.GET("/", h.index)
}

func (h *Home) index(c internal.Context) error {
	ctx := c.Context()
	lang := c.Language()
	page := h.site.page(c, "")

	data := views.HomeData{
		Page:     page,
		Profile:  h.site.Profile,
		Articles: views.ListData{Page: page, Kind: content.KindArticles},
	}

	// The three sources are independent; none of them fails the page.
	var g errgroup.Group
	g.Go(func() error {
		data.Experiences = h.profile.Experiences(ctx, lang)
		return nil
	})
	g.Go(func() error {
		data.Education = h.profile.Education(ctx, lang)
		return nil
	})
	g.Go(func() error {
		items, err := h.catalog.List(ctx, content.KindArticles, lang)
		if err != nil {
			c.LogWarn("article list unavailable", "error", err)
			data.Articles.Failed = true
			return nil
		}
		data.Articles.Items = items
		return nil
	})
	_ = g.Wait()

	return c.Render(http.StatusOK, views.HomePage(data))
}
