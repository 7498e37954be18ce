package htmx

import (
	"net/http"
	"net/url"
	"strings"
)

// Response headers.
const (
	HeaderHXPushURL  = "HX-Push-Url"
	HeaderHXRedirect = "HX-Redirect"
	HeaderHXReswap   = "HX-Reswap"
	HeaderHXRetarget = "HX-Retarget"
	HeaderHXTrigger  = "HX-Trigger"
)

// Request headers.
const (
	HeaderHXRequest    = "HX-Request"
	HeaderHXCurrentURL = "HX-Current-URL"
	HeaderHXTarget     = "HX-Target"
)

// SwapStrategy is an hx-swap value.
type SwapStrategy string

const (
	SwapInnerHTML SwapStrategy = "innerHTML"
	SwapOuterHTML SwapStrategy = "outerHTML"
	SwapNone      SwapStrategy = "none"
)

// IsHTMX reports whether the request was issued by HTMX.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get(HeaderHXRequest) == "true"
}

// Redirect sends a 302 for regular requests and HX-Redirect with 200 for HTMX ones.
func Redirect(w http.ResponseWriter, r *http.Request, target string) {
	if IsHTMX(r) {
		w.Header().Set(HeaderHXRedirect, target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// RedirectBack redirects to the page the request came from. The HTMX current
// URL wins over Referer. Cross-host or missing values fall back to fallback.
func RedirectBack(w http.ResponseWriter, r *http.Request, fallback string) {
	Redirect(w, r, BackURL(r, fallback))
}

// BackURL returns the same-host path of the originating page, or fallback.
func BackURL(r *http.Request, fallback string) string {
	raw := r.Header.Get(HeaderHXCurrentURL)
	if raw == "" {
		raw = r.Referer()
	}
	if raw == "" {
		return fallback
	}

	u, err := url.Parse(raw)
	if err != nil || (u.Host != "" && !strings.EqualFold(u.Host, r.Host)) {
		return fallback
	}

	back := u.EscapedPath()
	if back == "" {
		back = "/"
	}
	if q := u.Query(); len(q) > 0 {
		// Language is sticky through the cookie; a stale ?lang= would override it.
		q.Del("lang")
		if enc := q.Encode(); enc != "" {
			back += "?" + enc
		}
	}
	return back
}
