package markdown

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/folio/pkg/logger"
	"github.com/dmitrymomot/folio/pkg/sanitizer"
)

// Renderer converts markdown to sanitized HTML. It is safe for concurrent use.
type Renderer struct {
	md       goldmark.Markdown
	policy   *bluemonday.Policy
	diagrams DiagramRenderer
	parallel int
	style    string
	langs    []string
	log      *slog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithDiagramRenderer renders diagram blocks on the server.
func WithDiagramRenderer(d DiagramRenderer) Option {
	return func(r *Renderer) { r.diagrams = d }
}

// WithDiagramParallelism bounds concurrent diagram renders per document. Default: 4.
func WithDiagramParallelism(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.parallel = n
		}
	}
}

// WithDiagramLanguages sets the fence languages treated as diagrams. Default: mermaid.
func WithDiagramLanguages(langs ...string) Option {
	return func(r *Renderer) { r.langs = langs }
}

// WithHighlightStyle sets the chroma style. Default: github.
func WithHighlightStyle(style string) Option {
	return func(r *Renderer) {
		if style != "" {
			r.style = style
		}
	}
}

// WithPolicy replaces the sanitizer policy.
func WithPolicy(p *bluemonday.Policy) Option {
	return func(r *Renderer) {
		if p != nil {
			r.policy = p
		}
	}
}

// WithLogger sets the logger that receives diagram failures.
func WithLogger(log *slog.Logger) Option {
	return func(r *Renderer) {
		if log != nil {
			r.log = log
		}
	}
}

// New creates a renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		policy:   sanitizer.Markdown(),
		parallel: 4,
		style:    "github",
		log:      logger.NewNope(),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.md = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			NewDiagramExtension(r.langs...),
			highlighting.NewHighlighting(
				highlighting.WithStyle(r.style),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			// Output is sanitized below.
			html.WithUnsafe(),
		),
	)
	return r
}

// Render converts source to HTML. Diagram failures never fail the render.
func (r *Renderer) Render(ctx context.Context, source []byte) (string, error) {
	doc := r.md.Parser().Parse(text.NewReader(source))

	svgs := r.renderDiagrams(ctx, collectDiagrams(doc))

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, source, doc); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}

	out := r.policy.Sanitize(buf.String())
	for id, svg := range svgs {
		out = injectSVG(out, id, svg)
	}
	return out, nil
}

func collectDiagrams(doc ast.Node) []*DiagramNode {
	var nodes []*DiagramNode
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if d, ok := n.(*DiagramNode); ok && entering {
			nodes = append(nodes, d)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return nodes
}

// renderDiagrams renders each node once. Failed nodes are absent from the result.
func (r *Renderer) renderDiagrams(ctx context.Context, nodes []*DiagramNode) map[string]string {
	if r.diagrams == nil || len(nodes) == 0 {
		return nil
	}

	var (
		mu   sync.Mutex
		svgs = make(map[string]string, len(nodes))
	)
	g := new(errgroup.Group)
	g.SetLimit(r.parallel)
	for _, n := range nodes {
		g.Go(func() error {
			svg, err := r.diagrams.RenderDiagram(ctx, n.Lang, string(n.Source))
			if err != nil {
				r.log.WarnContext(ctx, "diagram render failed, leaving it to the browser",
					slog.String("diagram_id", n.ID),
					slog.String("lang", n.Lang),
					slog.String("error", err.Error()),
				)
				return nil
			}
			mu.Lock()
			svgs[n.ID] = svg
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return svgs
}

// injectSVG replaces the <pre> fallback inside the wrapper with id. The SVG
// is embedded as an image so browsers never run scripts or handlers in it.
func injectSVG(out, id, svg string) string {
	open := `<div class="diagram" id="` + id + `">`
	i := strings.Index(out, open)
	if i < 0 {
		return out
	}
	start := i + len(open)
	end := strings.Index(out[start:], "</pre>")
	if end < 0 {
		return out
	}
	img := `<img class="diagram-svg" alt="diagram" src="data:image/svg+xml;base64,` +
		base64.StdEncoding.EncodeToString([]byte(svg)) + `">`
	return out[:start] + img + out[start+end+len("</pre>"):]
}
