package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrymomot/folio/internal"
	"github.com/dmitrymomot/folio/internal/views"
	"github.com/dmitrymomot/folio/middlewares"
	"github.com/dmitrymomot/folio/pkg/analyzer"
)

// DefaultMaxUpload caps the analyzer request body, file included.
const DefaultMaxUpload int64 = 10 << 20

// Analyze serves the job-fit widget.
//
//	POST /analyze  form field job_description, or multipart file "file"
//
// Upstream failures render the localized "Failed to analyze" notice with
// 200 so HTMX swaps it in. The browser drops submits while one is in flight
// (hx-sync="this:drop"); identical concurrent texts share one upstream call.
type Analyze struct {
	client    Analyzer
	timeout   time.Duration
	maxUpload int64
}

// AnalyzeOption configures Analyze.
type AnalyzeOption func(*Analyze)

// WithAnalyzeTimeout bounds each analysis, upstream call included.
func WithAnalyzeTimeout(d time.Duration) AnalyzeOption {
	return func(h *Analyze) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// WithMaxUpload caps the request body size.
func WithMaxUpload(n int64) AnalyzeOption {
	return func(h *Analyze) {
		if n > 0 {
			h.maxUpload = n
		}
	}
}

// NewAnalyze creates the analyzer handler.
func NewAnalyze(client Analyzer, opts ...AnalyzeOption) *Analyze {
	h := &Analyze{
		client:    client,
		timeout:   middlewares.DefaultTimeout,
		maxUpload: DefaultMaxUpload,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes implements internal.Handler.
func (h *Analyze) Routes(r internal.Router) {
	r.POST("/analyze", h.analyze, middlewares.Timeout(h.timeout))
}

func (h *Analyze) analyze(c internal.Context) error {
	req := c.Request()
	req.Body = http.MaxBytesReader(c.Response(), req.Body, h.maxUpload)

	var (
		res analyzer.Result
		err error
	)
	file, header, ferr := c.FormFile("file")
	switch {
	case ferr == nil:
		defer file.Close()
		res, err = h.client.AnalyzeFile(c.Context(), header.Filename, file)
	case errors.Is(ferr, http.ErrMissingFile), errors.Is(ferr, http.ErrNotMultipart):
		res, err = h.client.AnalyzeText(c.Context(), c.Form("job_description"))
	default:
		var tooLarge *http.MaxBytesError
		if errors.As(ferr, &tooLarge) {
			return internal.ErrRequestTooLarge("upload too large", internal.WithErrorCode("too_large"), internal.WithError(ferr))
		}
		return internal.ErrBadRequest("invalid form", internal.WithErrorCode("bad_request"), internal.WithError(ferr))
	}

	if errors.Is(err, analyzer.ErrEmptyInput) {
		return internal.ErrBadRequest("nothing to analyze", internal.WithErrorCode("empty_input"), internal.WithError(err))
	}
	if err == nil && res.Empty() {
		err = errors.New("empty analysis result")
	}
	if err != nil {
		c.LogWarn("job analysis failed", "error", err)
		return c.Render(http.StatusOK, views.AnalyzerResult(views.AnalyzerData{Tr: c.Translator(), Failed: true}))
	}

	return c.Render(http.StatusOK, views.AnalyzerResult(views.AnalyzerData{Tr: c.Translator(), Result: res}))
}
