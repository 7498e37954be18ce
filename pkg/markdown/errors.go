package markdown

import "errors"

var (
	ErrRender  = errors.New("markdown: render failed")
	ErrDiagram = errors.New("markdown: diagram render failed")
)
