package markdown

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxDiagramSize bounds a rendered SVG.
const maxDiagramSize = 2 << 20

// DiagramRenderer converts diagram source to SVG markup.
type DiagramRenderer interface {
	RenderDiagram(ctx context.Context, lang, source string) (string, error)
}

// Kroki renders diagrams through a Kroki-compatible HTTP endpoint:
// POST <base>/<lang>/svg with the raw source as the body.
type Kroki struct {
	base   string
	client *http.Client
}

// KrokiOption configures a Kroki client.
type KrokiOption func(*Kroki)

// WithKrokiClient replaces the default client (10s timeout).
func WithKrokiClient(c *http.Client) KrokiOption {
	return func(k *Kroki) {
		if c != nil {
			k.client = c
		}
	}
}

// NewKroki creates a client for base, e.g. https://kroki.io.
func NewKroki(base string, opts ...KrokiOption) *Kroki {
	k := &Kroki{
		base:   strings.TrimSuffix(base, "/"),
		client: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

func (k *Kroki) RenderDiagram(ctx context.Context, lang, source string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, k.base+"/"+lang+"/svg", strings.NewReader(source))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDiagram, err)
	}
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("Accept", "image/svg+xml")

	resp, err := k.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDiagram, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDiagramSize))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDiagram, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d: %s", ErrDiagram, resp.StatusCode, bytes.TrimSpace(body))
	}

	svg := string(bytes.TrimSpace(body))
	if !strings.Contains(strings.ToLower(svg), "<svg") {
		return "", fmt.Errorf("%w: response is not svg", ErrDiagram)
	}
	return svg, nil
}
