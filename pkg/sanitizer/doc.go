// Package sanitizer cleans HTML with bluemonday policies.
//
// [StripHTML] reduces input to plain text and is applied to free text a
// visitor submits. [Markdown] returns the policy for rendered documents: the
// user-generated-content baseline plus heading anchors, code highlighting
// spans, and the diagram containers emitted by pkg/markdown.
package sanitizer
