package views

import (
	"html/template"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/folio/pkg/analyzer"
	"github.com/dmitrymomot/folio/pkg/content"
	"github.com/dmitrymomot/folio/pkg/i18n"
)

// Page is the part of every full page the layout needs.
type Page struct {
	Tr *i18n.Translator
	// Title is shown in the document title before the site name.
	Title string
	// Path is the current path, used as the return target of the language switch.
	Path string
	// SiteName is the profile name shown in the header.
	SiteName string
}

// Lang returns the page language.
func (p Page) Lang() string { return p.Tr.Language() }

// Profile is the hero data.
type Profile struct {
	Name        string
	Roles       []string
	Tagline     i18n.Text
	ImageURL    string
	Placeholder string
	ScheduleURL string
	Email       string
	GitHub      string
	LinkedIn    string
}

// HomeData feeds the home page.
type HomeData struct {
	Page
	Profile     Profile
	Experiences []content.Experience
	Education   []content.Education
	// Articles is the article list shown below the profile.
	Articles ListData
}

// ListData feeds a list page of one content kind.
type ListData struct {
	Page
	Kind   content.Kind
	Items  []content.LocalizedItem
	Failed bool
}

// DetailData feeds a detail page. The body is rendered inline.
type DetailData struct {
	Page
	Kind content.Kind
	Item content.LocalizedItem
	Body BodyData
}

// BodyData is a rendered document body, or the failure notice when Failed.
type BodyData struct {
	Tr     *i18n.Translator
	HTML   template.HTML
	Failed bool
}

// AnalyzerData is the analyzer widget result.
type AnalyzerData struct {
	Tr     *i18n.Translator
	Result analyzer.Result
	Failed bool
}

// ScheduleData feeds the meeting page.
type ScheduleData struct {
	Page
	URL string
}

// ErrorData describes a failed request.
type ErrorData struct {
	Page
	Code    int
	Title   string
	Message string
}

// HomePage renders the home page.
func HomePage(d HomeData) templ.Component { return page("home", d) }

// ListPage renders the list page of d.Kind.
func ListPage(d ListData) templ.Component { return page("list", d) }

// ItemList renders only the list, for HTMX refreshes.
func ItemList(d ListData) templ.Component { return fragment("item-list", d) }

// DetailPage renders a document page with its body inline.
func DetailPage(d DetailData) templ.Component { return page("detail", d) }

// DocumentBody renders the body fragment swapped into an expanded item.
// The failure notice carries no .md-body, so expanding again re-fetches.
func DocumentBody(d BodyData) templ.Component { return fragment("document-body", d) }

// AnalyzerResult renders the analyzer outcome swapped into the widget.
func AnalyzerResult(d AnalyzerData) templ.Component { return fragment("analyzer-result", d) }

// SchedulePage renders the meeting page.
func SchedulePage(d ScheduleData) templ.Component { return page("schedule", d) }

// ErrorPage renders a full error page.
func ErrorPage(d ErrorData) templ.Component { return page("error", d) }

// ErrorFragment renders an inline error for HTMX requests.
func ErrorFragment(d ErrorData) templ.Component { return fragment("error-fragment", d) }
