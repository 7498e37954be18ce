package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	textPath = "/analyze-application-text"
	filePath = "/analyze-application"

	maxResponseSize = 1 << 20
)

// Client talks to the scoring service.
type Client struct {
	base    string
	client  *http.Client
	headers map[string]string
	group   singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default client (30s timeout).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.client = c
		}
	}
}

// WithHeader adds a fixed request header.
func WithHeader(key, value string) Option {
	return func(cl *Client) { cl.headers[key] = value }
}

// New creates a client for base. Requests carry
// "ngrok-skip-browser-warning: true" so tunnelled deployments answer JSON.
func New(base string, opts ...Option) *Client {
	c := &Client{
		base:    strings.TrimSuffix(base, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
		headers: map[string]string{"ngrok-skip-browser-warning": "true"},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AnalyzeText scores a job description. Identical submissions in flight
// share one upstream call, which outlives the caller that started it and is
// bounded by the HTTP client timeout. Each caller stops waiting when its own
// context ends.
func (c *Client) AnalyzeText(ctx context.Context, text string) (Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{}, ErrEmptyInput
	}

	ch := c.group.DoChan("text:"+text, func() (any, error) {
		body, err := json.Marshal(map[string]string{"job_description": text})
		if err != nil {
			return Result{}, fmt.Errorf("%w: %v", ErrAnalyze, err)
		}
		return c.do(context.WithoutCancel(ctx), textPath, "application/json", bytes.NewReader(body))
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return Result{}, res.Err
		}
		return res.Val.(Result), nil
	case <-ctx.Done():
		return Result{}, fmt.Errorf("%w: %w", ErrAnalyze, ctx.Err())
	}
}

// AnalyzeFile uploads a job description document as the "file" form field.
func (c *Client) AnalyzeFile(ctx context.Context, name string, r io.Reader) (Result, error) {
	if r == nil {
		return Result{}, ErrEmptyInput
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(name))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrAnalyze, err)
	}
	n, err := io.Copy(part, r)
	if err != nil {
		return Result{}, fmt.Errorf("%w: read upload: %v", ErrAnalyze, err)
	}
	if n == 0 {
		return Result{}, ErrEmptyInput
	}
	if err := mw.Close(); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrAnalyze, err)
	}

	res, err := c.do(ctx, filePath, mw.FormDataContentType(), &buf)
	if err != nil {
		return Result{}, err
	}
	res.FileName = filepath.Base(name)
	return res, nil
}

func (c *Client) do(ctx context.Context, path, contentType string, body io.Reader) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, body)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrAnalyze, err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrAnalyze, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return Result{}, fmt.Errorf("%w: read response: %v", ErrAnalyze, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, fmt.Errorf("%w: status %d", ErrAnalyze, resp.StatusCode)
	}

	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		return Result{}, fmt.Errorf("%w: decode: %v", ErrAnalyze, err)
	}
	if res.Empty() {
		return Result{}, fmt.Errorf("%w: empty response", ErrAnalyze)
	}
	return res, nil
}
