package sanitizer

import (
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy   *bluemonday.Policy
	safePolicy     *bluemonday.Policy
	markdownPolicy *bluemonday.Policy
	initOnce       sync.Once

	diagramID    = regexp.MustCompile(`^d-[0-9a-f-]{36}$`)
	headingID    = regexp.MustCompile(`^[\p{L}\p{N}_-]+$`)
	chromaClass  = regexp.MustCompile(`^[a-zA-Z0-9 _-]+$`)
	checkboxType = regexp.MustCompile(`^checkbox$`)
	booleanAttr  = regexp.MustCompile(`^(|checked|disabled)$`)
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()

		safePolicy = bluemonday.NewPolicy()
		safePolicy.AllowStandardURLs()
		safePolicy.AllowElements(
			"p", "br",
			"strong", "b", "em", "i",
			"ul", "ol", "li",
			"code", "pre", "blockquote",
		)
		safePolicy.AllowAttrs("href").OnElements("a")
		safePolicy.RequireNoFollowOnLinks(true)

		// Explicit allowlist: id is accepted on headings and diagram
		// wrappers only.
		markdownPolicy = bluemonday.NewPolicy()
		markdownPolicy.AllowStandardURLs()
		markdownPolicy.AllowElements(
			"p", "br", "hr", "div", "span",
			"h1", "h2", "h3", "h4", "h5", "h6",
			"strong", "b", "em", "i", "del", "s", "sub", "sup", "mark",
			"code", "pre", "blockquote", "details", "summary",
			"ul", "ol", "li",
			"table", "thead", "tbody", "tr", "th", "td",
		)
		markdownPolicy.AllowLists()
		markdownPolicy.AllowAttrs("start").Matching(bluemonday.Integer).OnElements("ol")
		markdownPolicy.AllowTables()
		markdownPolicy.AllowStyles("text-align").OnElements("th", "td")
		markdownPolicy.AllowImages()
		markdownPolicy.AllowAttrs("href").OnElements("a")
		markdownPolicy.AllowAttrs("title").Matching(bluemonday.Paragraph).OnElements("a", "img")
		markdownPolicy.AllowAttrs("id").Matching(headingID).OnElements("h1", "h2", "h3", "h4", "h5", "h6")
		markdownPolicy.AllowAttrs("id").Matching(diagramID).OnElements("div")
		markdownPolicy.AllowAttrs("class").Matching(chromaClass).OnElements("div", "pre", "code", "span")
		markdownPolicy.AllowStyles("color", "background-color", "font-weight", "font-style", "display").OnElements("span", "pre")
		markdownPolicy.AllowAttrs("type").Matching(checkboxType).OnElements("input")
		markdownPolicy.AllowAttrs("checked", "disabled").Matching(booleanAttr).OnElements("input")
		markdownPolicy.RequireNoFollowOnLinks(true)
		markdownPolicy.AddTargetBlankToFullyQualifiedLinks(true)
	})
}

// StripHTML removes every tag and returns unescaped, trimmed plain text.
func StripHTML(s string) string {
	initPolicies()
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

// SanitizeHTML keeps basic formatting tags and drops everything else.
func SanitizeHTML(s string) string {
	initPolicies()
	return safePolicy.Sanitize(s)
}

// Markdown returns the shared policy for rendered markdown documents.
func Markdown() *bluemonday.Policy {
	initPolicies()
	return markdownPolicy
}

// SanitizeHTMLCustom applies policy, or returns s unchanged when policy is nil.
func SanitizeHTMLCustom(s string, policy *bluemonday.Policy) string {
	if policy == nil {
		return s
	}
	return policy.Sanitize(s)
}
