// Package views holds the site's HTML. Pages are html/template files embedded
// in the binary and exposed as templ components, so handlers render them with
// Context.Render like any other component.
//
// Every view model carries the request's *i18n.Translator; templates call
// {{.Tr.T "key"}} for catalogue strings and {{.Tr.Pick .Text}} for inline
// en/fr pairs.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/url"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/folio/pkg/content"
	"github.com/dmitrymomot/folio/pkg/i18n"
)

// Namespace is the catalogue namespace of the UI strings.
const Namespace = "ui"

var (
	//go:embed templates/*.html
	templatesFS embed.FS

	//go:embed static
	staticFS embed.FS

	//go:embed translations
	translationsFS embed.FS
)

// Static returns the embedded assets, rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Translations returns the UI catalogues laid out as {lang}/ui.yaml.
func Translations() fs.FS {
	sub, err := fs.Sub(translationsFS, "translations")
	if err != nil {
		panic(err)
	}
	return sub
}

var funcs = template.FuncMap{
	"args":       args,
	"period":     Period,
	"itemURL":    ItemURL,
	"bodyURL":    BodyURL,
	"kindURL":    KindURL,
	"join":       strings.Join,
	"row":        row,
	"projectsOf": projectsOf,
}

var (
	partials = template.Must(template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/layout.html", "templates/partials.html"))
	pages    = map[string]*template.Template{}
)

func init() {
	for _, name := range []string{"home", "list", "detail", "schedule", "error"} {
		t := template.Must(partials.Clone())
		pages[name] = template.Must(t.ParseFS(templatesFS, "templates/"+name+".html"))
	}
}

func page(name string, data any) templ.Component {
	return templ.FromGoHTML(pages[name].Lookup("layout"), data)
}

func fragment(name string, data any) templ.Component {
	return templ.FromGoHTML(partials.Lookup(name), data)
}

// args builds placeholder values for Translator.T from key/value pairs.
func args(kv ...any) (i18n.M, error) {
	if len(kv)%2 != 0 {
		return nil, fmt.Errorf("views: args needs key/value pairs, got %d values", len(kv))
	}
	m := make(i18n.M, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("views: args key %v is not a string", kv[i])
		}
		m[k] = kv[i+1]
	}
	return m, nil
}

// itemRow is one entry of an item list.
type itemRow struct {
	Tr   *i18n.Translator
	Kind content.Kind
	Item content.LocalizedItem
}

func row(tr *i18n.Translator, kind content.Kind, it content.LocalizedItem) itemRow {
	return itemRow{Tr: tr, Kind: kind, Item: it}
}

type projectList struct {
	Tr       *i18n.Translator
	Projects []content.Project
}

func projectsOf(tr *i18n.Translator, projects []content.Project) projectList {
	return projectList{Tr: tr, Projects: projects}
}

// Period formats a date range as "Jan 2023 - Present" in the translator's
// language. Unparsable dates are shown as written.
func Period(tr *i18n.Translator, start, end content.Date) string {
	format := func(d content.Date) string {
		if d.IsZero() {
			return tr.T("date.present")
		}
		if t, ok := d.Time(); ok {
			return tr.MonthYear(t)
		}
		return string(d)
	}
	if start.IsZero() {
		return format(end)
	}
	return format(start) + " - " + format(end)
}

// KindURL is the list page of kind. Showcases live under /projects.
func KindURL(kind content.Kind) string {
	if kind == content.KindShowcases {
		return "/projects"
	}
	return "/" + string(kind)
}

// ItemURL is the detail page of slug.
func ItemURL(kind content.Kind, slug string) string {
	return KindURL(kind) + "/" + url.PathEscape(slug)
}

// BodyURL is the fragment endpoint that renders the body of slug in lang.
// The language travels in the query so the fragment matches the page even
// when the choice was never persisted.
func BodyURL(kind content.Kind, slug, lang string) string {
	return ItemURL(kind, slug) + "/body?lang=" + url.QueryEscape(lang)
}

// NewCatalogue builds the UI catalogue for English and French from the
// embedded translations. opts are applied after the defaults.
func NewCatalogue(opts ...i18n.Option) (*i18n.I18n, error) {
	return i18n.New(append([]i18n.Option{
		i18n.WithLanguages(i18n.EN, i18n.FR),
		i18n.WithYAMLDir(Translations()),
	}, opts...)...)
}
