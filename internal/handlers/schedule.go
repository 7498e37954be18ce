package handlers

import (
	"net/http"

	"github.com/dmitrymomot/folio/internal"
	"github.com/dmitrymomot/folio/internal/views"
)

// Schedule serves the meeting page, a link to a prefilled calendar event.
type Schedule struct {
	site Site
}

func NewSchedule(site Site) *Schedule {
	return &Schedule{site: site}
}

// Routes implements internal.Handler.
func (h *Schedule) Routes(r internal.Router) {
	r.GET("/schedule", h.show)
}

func (h *Schedule) show(c internal.Context) error {
	return c.Render(http.StatusOK, views.SchedulePage(views.ScheduleData{
		Page: h.site.page(c, c.T("schedule.title")),
		URL:  h.site.Profile.ScheduleURL,
	}))
}
