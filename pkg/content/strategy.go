package content

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/folio/pkg/i18n"
)

// Strategy names.
const (
	StrategySuffix    = "suffix"
	StrategyHeuristic = "heuristic"
)

// LocalizedItem is an Item resolved for one language. It is derived on every
// request and never stored.
type LocalizedItem struct {
	Slug  string `json:"slug"`
	Path  string `json:"path"`
	Title string `json:"title"`
	Lang  string `json:"lang"`
	// Fallback is set by detail lookups that had to use another language.
	Fallback bool `json:"fallback,omitempty"`
}

// Strategy derives the language and slug of manifest items.
// Implementations are pure: the same items and language give the same result.
type Strategy interface {
	Name() string
	// Classify derives the slug and language of it. ok is false when the
	// item cannot be resolved under this strategy.
	Classify(it Item) (slug, lang string, ok bool)
	// ResolveList returns, in manifest order, the items of lang only.
	ResolveList(items []Item, lang string) []LocalizedItem
	// ResolveContent finds slug in lang, or in any language with Fallback set.
	ResolveContent(items []Item, slug, lang string) (LocalizedItem, error)
}

// NewStrategy returns the strategy registered under name.
func NewStrategy(name string) (Strategy, error) {
	switch name {
	case StrategySuffix, "":
		return SuffixStrategy{}, nil
	case StrategyHeuristic:
		return HeuristicStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// classifier extracts (slug, lang) from an item; ok=false excludes it.
type classifier func(it Item) (slug, lang string, ok bool)

func resolveList(items []Item, lang string, classify classifier) []LocalizedItem {
	out := make([]LocalizedItem, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		slug, itemLang, ok := classify(it)
		if !ok || itemLang != lang || seen[slug] {
			continue
		}
		seen[slug] = true
		out = append(out, localize(it, slug, itemLang))
	}
	return out
}

func resolveContent(items []Item, slug, lang string, classify classifier) (LocalizedItem, error) {
	var (
		fallback LocalizedItem
		found    bool
	)
	for _, it := range items {
		s, itemLang, ok := classify(it)
		if !ok || s != slug {
			continue
		}
		if itemLang == lang {
			return localize(it, s, itemLang), nil
		}
		if !found {
			fallback, found = localize(it, s, itemLang), true
			fallback.Fallback = true
		}
	}
	if !found {
		return LocalizedItem{}, fmt.Errorf("%w: %q", ErrItemNotFound, slug)
	}
	return fallback, nil
}

func localize(it Item, slug, lang string) LocalizedItem {
	title := CleanTitle(it.Title)
	if title == "" {
		title = TitleFromSlug(slug)
	}
	return LocalizedItem{Slug: slug, Path: it.Name, Title: title, Lang: lang}
}

// SuffixStrategy reads the language from a ".<lang>.md" suffix:
// "articles/intro.fr.md" is slug "intro" in French.
type SuffixStrategy struct{}

func (SuffixStrategy) Name() string { return StrategySuffix }

func (SuffixStrategy) Classify(it Item) (string, string, bool) { return classifySuffix(it) }

func (SuffixStrategy) ResolveList(items []Item, lang string) []LocalizedItem {
	return resolveList(items, lang, classifySuffix)
}

func (SuffixStrategy) ResolveContent(items []Item, slug, lang string) (LocalizedItem, error) {
	return resolveContent(items, slug, lang, classifySuffix)
}

func classifySuffix(it Item) (string, string, bool) {
	stem, ok := strings.CutSuffix(path.Base(it.Name), ".md")
	if !ok {
		return "", "", false
	}
	dot := strings.LastIndexByte(stem, '.')
	if dot <= 0 {
		return "", "", false
	}
	slug, lang := stem[:dot], strings.ToLower(stem[dot+1:])
	if lang == "" {
		return "", "", false
	}
	return slug, lang, true
}

// HeuristicStrategy guesses the language from the title and uses the file
// name without ".md" as the slug.
type HeuristicStrategy struct{}

func (HeuristicStrategy) Name() string { return StrategyHeuristic }

func (HeuristicStrategy) Classify(it Item) (string, string, bool) { return classifyHeuristic(it) }

func (HeuristicStrategy) ResolveList(items []Item, lang string) []LocalizedItem {
	return resolveList(items, lang, classifyHeuristic)
}

func (HeuristicStrategy) ResolveContent(items []Item, slug, lang string) (LocalizedItem, error) {
	return resolveContent(items, slug, lang, classifyHeuristic)
}

func classifyHeuristic(it Item) (string, string, bool) {
	slug, ok := strings.CutSuffix(path.Base(it.Name), ".md")
	if !ok || slug == "" {
		return "", "", false
	}
	title := CleanTitle(it.Title)
	if title == "" {
		title = TitleFromSlug(slug)
	}
	return slug, DetectLanguage(title), true
}

var frenchIndicators = regexp.MustCompile(`(?i)[éèêëàâäùûüôöîïç]|d'un|l'|qu'|système|étude`)

// DetectLanguage classifies a title as French when it contains French
// diacritics or common French fragments, English otherwise.
func DetectLanguage(title string) string {
	if frenchIndicators.MatchString(CleanTitle(title)) {
		return i18n.FR
	}
	return i18n.EN
}

var headingPrefix = regexp.MustCompile(`^#\s*`)

// CleanTitle strips a leading markdown heading marker.
func CleanTitle(title string) string {
	return strings.TrimSpace(headingPrefix.ReplaceAllString(strings.TrimSpace(title), ""))
}

var titleCaser = cases.Title(language.Und, cases.NoLower)

// TitleFromSlug turns "my-first_post" into "My First Post".
func TitleFromSlug(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool { return r == '-' || r == '_' })
	return titleCaser.String(strings.Join(words, " "))
}
