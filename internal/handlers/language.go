package handlers

import (
	"strings"

	"github.com/dmitrymomot/folio/internal"
	"github.com/dmitrymomot/folio/middlewares"
	"github.com/dmitrymomot/folio/pkg/i18n"
)

// languageCookieMaxAge keeps the choice for a year.
const languageCookieMaxAge = 365 * 24 * 60 * 60

// Language persists the visitor's language choice.
//
//	POST /language  lang=en|fr, optional next=/local/path
//
// The response redirects back, so every component renders the new language
// on the next request. Cached document bodies are keyed by path, which
// carries the language, so nothing is evicted.
type Language struct {
	svc *i18n.I18n
}

// NewLanguage creates the handler.
func NewLanguage(svc *i18n.I18n) *Language {
	return &Language{svc: svc}
}

// Routes implements internal.Handler.
func (h *Language) Routes(r internal.Router) {
	r.POST("/language", h.set)
}

func (h *Language) set(c internal.Context) error {
	lang, ok := h.svc.Normalize(c.Form("lang"))
	if !ok {
		return internal.ErrBadRequest("unsupported language", internal.WithErrorCode("bad_request"))
	}

	c.SetCookie(middlewares.LanguageCookie, lang, languageCookieMaxAge)

	if next := c.Form("next"); isLocalPath(next) {
		return c.Redirect(next)
	}
	return c.RedirectBack("/")
}

// isLocalPath accepts same-site absolute paths only, so next cannot be used
// as an open redirect.
func isLocalPath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") && !strings.HasPrefix(p, "/\\")
}
