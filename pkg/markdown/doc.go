// Package markdown renders markdown documents to sanitized HTML.
//
// Documents are parsed with goldmark (GFM, auto heading IDs, chroma
// highlighting) and the output is passed through the shared bluemonday
// markdown policy. Fenced blocks tagged "mermaid" become diagram nodes:
//
//	<div class="diagram" id="d-<uuid>"><pre class="mermaid">source</pre></div>
//
// The browser renders them unless a [DiagramRenderer] is configured, in which
// case every block of a document is rendered concurrently on the server and
// the SVG replaces the <pre> as a data: URI image. A block that fails to render keeps the browser
// fallback; the failure is logged and never returned.
//
// Example:
//
//	r := markdown.New(
//		markdown.WithDiagramRenderer(markdown.NewKroki("https://kroki.io")),
//		markdown.WithLogger(log),
//	)
//	html, err := r.Render(ctx, []byte(doc.Body))
package markdown
