package markdown

import (
	"bytes"
	"slices"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// DiagramNode replaces a fenced code block written in a diagram language.
type DiagramNode struct {
	ast.BaseBlock
	// ID is unique per render and matches the wrapper element id.
	ID     string
	Lang   string
	Source []byte
}

// KindDiagram is the node kind for DiagramNode.
var KindDiagram = ast.NewNodeKind("Diagram")

func (n *DiagramNode) Kind() ast.NodeKind {
	return KindDiagram
}

func (n *DiagramNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"ID": n.ID, "Lang": n.Lang}, nil)
}

// diagramTransformer swaps fenced blocks of the configured languages for
// DiagramNodes.
type diagramTransformer struct {
	langs []string
}

func (t *diagramTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()

	var blocks []*ast.FencedCodeBlock
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if fcb, ok := n.(*ast.FencedCodeBlock); ok && slices.Contains(t.langs, string(fcb.Language(source))) {
			blocks = append(blocks, fcb)
		}
		return ast.WalkContinue, nil
	})

	for _, fcb := range blocks {
		var buf bytes.Buffer
		lines := fcb.Lines()
		for i := range lines.Len() {
			seg := lines.At(i)
			buf.Write(seg.Value(source))
		}
		node := &DiagramNode{
			ID:     "d-" + uuid.NewString(),
			Lang:   string(fcb.Language(source)),
			Source: buf.Bytes(),
		}
		fcb.Parent().ReplaceChild(fcb.Parent(), fcb, node)
	}
}

// diagramRenderer writes the browser-side form of a DiagramNode.
type diagramRenderer struct {
	html.Config
}

func newDiagramRenderer(opts ...html.Option) renderer.NodeRenderer {
	r := &diagramRenderer{Config: html.NewConfig()}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	return r
}

func (r *diagramRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindDiagram, r.renderDiagram)
}

func (r *diagramRenderer) renderDiagram(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	n := node.(*DiagramNode)

	_, _ = w.WriteString(`<div class="diagram" id="`)
	_, _ = w.WriteString(n.ID)
	_, _ = w.WriteString(`"><pre class="`)
	_, _ = w.Write(util.EscapeHTML([]byte(n.Lang)))
	_, _ = w.WriteString(`">`)
	_, _ = w.Write(util.EscapeHTML(n.Source))
	_, _ = w.WriteString("</pre></div>\n")

	return ast.WalkSkipChildren, nil
}

// DiagramExtension turns fenced diagram blocks into DiagramNodes.
type DiagramExtension struct {
	Langs []string
}

func (e *DiagramExtension) Extend(m goldmark.Markdown) {
	langs := e.Langs
	if len(langs) == 0 {
		langs = []string{"mermaid"}
	}
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(&diagramTransformer{langs: langs}, 100),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(newDiagramRenderer(), 50),
	))
}

// NewDiagramExtension handles the given fence languages. Default: mermaid.
func NewDiagramExtension(langs ...string) goldmark.Extender {
	return &DiagramExtension{Langs: langs}
}
