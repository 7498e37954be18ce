package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrymomot/folio/internal"
	"github.com/dmitrymomot/folio/internal/views"
	"github.com/dmitrymomot/folio/middlewares"
	"github.com/dmitrymomot/folio/pkg/content"
)

// errorKeys maps status codes to the errors.* catalogue entries.
var errorKeys = map[int]string{
	http.StatusBadRequest:            "bad_request",
	http.StatusNotFound:              "not_found",
	http.StatusMethodNotAllowed:      "method_not_allowed",
	http.StatusRequestEntityTooLarge: "too_large",
	http.StatusBadGateway:            "bad_gateway",
	http.StatusServiceUnavailable:    "service_unavailable",
	http.StatusGatewayTimeout:        "timeout",
}

// APIError is the JSON error body of /api routes.
type APIError struct {
	Code      int    `json:"code"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorHandler renders failed requests: JSON for /api routes and JSON
// clients, an inline fragment for HTMX requests (the response writer turns
// its status into 200 so the swap happens), and a full page otherwise.
func ErrorHandler(site Site) internal.ErrorHandler {
	return func(c internal.Context, err error) error {
		code, key := classify(err)
		if code >= http.StatusInternalServerError {
			c.LogError("request failed", "status", code, "error", err)
		} else {
			c.LogDebug("request rejected", "status", code, "error", err)
		}

		tr := c.Translator()
		title, message := http.StatusText(code), http.StatusText(code)
		if tr != nil {
			title = tr.T("errors." + key + ".title")
			message = tr.T("errors." + key + ".message")
		}

		if wantsJSON(c) {
			return c.JSON(code, APIError{
				Code:      code,
				Error:     key,
				Message:   message,
				RequestID: middlewares.GetRequestID(c),
			})
		}

		if tr == nil {
			return c.String(code, message)
		}

		data := views.ErrorData{
			Page:    site.page(c, title),
			Code:    code,
			Title:   title,
			Message: message,
		}
		if c.IsHTMX() {
			return c.Render(code, views.ErrorFragment(data))
		}
		return c.Render(code, views.ErrorPage(data))
	}
}

// NotFound turns unmatched routes into a 404 for the error handler.
func NotFound(c internal.Context) error {
	return internal.ErrNotFound("page not found", internal.WithErrorCode("not_found"))
}

// MethodNotAllowed turns a method mismatch into a 405 for the error handler.
func MethodNotAllowed(c internal.Context) error {
	return internal.ErrMethodNotAllowed("method not allowed", internal.WithErrorCode("method_not_allowed"))
}

// classify returns the status code and catalogue key for err.
func classify(err error) (int, string) {
	if httpErr := internal.AsHTTPError(err); httpErr != nil {
		if httpErr.ErrorCode != "" {
			return httpErr.Code, httpErr.ErrorCode
		}
		return httpErr.Code, keyFor(httpErr.Code)
	}
	switch {
	case middlewares.IsTimeoutError(err):
		return http.StatusGatewayTimeout, "timeout"
	case errors.Is(err, content.ErrItemNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, content.ErrFetch), errors.Is(err, content.ErrDecode), errors.Is(err, content.ErrNoIndex):
		return http.StatusBadGateway, "content"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func keyFor(code int) string {
	if key, ok := errorKeys[code]; ok {
		return key
	}
	if code >= http.StatusInternalServerError {
		return "internal"
	}
	return "bad_request"
}

func wantsJSON(c internal.Context) bool {
	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		return true
	}
	accept := c.Header("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}
