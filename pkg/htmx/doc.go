// Package htmx holds the small set of HTMX protocol helpers the site uses:
// request detection, response headers for partial renders, and redirects
// that work for both full-page and HTMX requests.
//
// HTMX only swaps 2xx responses, and it follows HX-Redirect instead of a 3xx
// Location. [Redirect] and [RedirectBack] pick the right form per request.
package htmx
