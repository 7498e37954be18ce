package i18n

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// Supported languages.
const (
	EN = "en"
	FR = "fr"
)

// DefaultLang is used when nothing else resolves.
const DefaultLang = EN

// I18n holds the UI catalogue. It is immutable after New and safe for
// concurrent use.
type I18n struct {
	// "lang:namespace:key.path" -> text
	translations map[string]string

	missingKeyHandler func(lang, namespace, key string)

	defaultLang string
	languages   []string
}

// Option configures I18n during construction.
type Option func(*I18n) error

// New builds a catalogue. Without WithLanguages only the default language is
// supported.
func New(opts ...Option) (*I18n, error) {
	i := &I18n{
		translations: make(map[string]string),
		defaultLang:  DefaultLang,
	}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if !slices.Contains(i.languages, i.defaultLang) {
		i.languages = append([]string{i.defaultLang}, i.languages...)
	}
	return i, nil
}

// WithDefaultLanguage sets the fallback language. Default: "en".
func WithDefaultLanguage(lang string) Option {
	return func(i *I18n) error {
		lang = strings.ToLower(strings.TrimSpace(lang))
		if lang == "" {
			return ErrEmptyLanguage
		}
		i.defaultLang = lang
		return nil
	}
}

// WithLanguages sets the supported languages in preference order.
func WithLanguages(langs ...string) Option {
	return func(i *I18n) error {
		i.languages = i.languages[:0]
		for _, l := range langs {
			l = strings.ToLower(strings.TrimSpace(l))
			if l != "" && !slices.Contains(i.languages, l) {
				i.languages = append(i.languages, l)
			}
		}
		return nil
	}
}

// WithTranslations registers a nested translation map for lang and namespace.
func WithTranslations(lang, namespace string, translations map[string]any) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		if namespace == "" {
			return ErrEmptyNamespace
		}
		i.add(lang, namespace, translations)
		return nil
	}
}

// WithMissingKeyHandler is called when a key is missing in every fallback language.
func WithMissingKeyHandler(fn func(lang, namespace, key string)) Option {
	return func(i *I18n) error {
		i.missingKeyHandler = fn
		return nil
	}
}

// T looks up key in lang, then in the default language. It returns the key
// itself when neither has it.
func (i *I18n) T(lang, namespace, key string, placeholders ...M) string {
	if s, ok := i.lookup(lang, namespace, key); ok {
		return ReplacePlaceholders(s, merge(placeholders))
	}
	if i.missingKeyHandler != nil {
		i.missingKeyHandler(lang, namespace, key)
	}
	return key
}

// Tn picks the plural form of key for n ("key.one" or "key.other") and
// injects {{count}}.
func (i *I18n) Tn(lang, namespace, key string, n int, placeholders ...M) string {
	form := pluralForm(lang, n)

	s, ok := i.lookup(lang, namespace, key+"."+form)
	if !ok && form != pluralOther {
		s, ok = i.lookup(lang, namespace, key+"."+pluralOther)
	}
	if !ok {
		if i.missingKeyHandler != nil {
			i.missingKeyHandler(lang, namespace, key)
		}
		return key
	}

	args := M{"count": n}
	maps.Copy(args, merge(placeholders))
	return ReplacePlaceholders(s, args)
}

// Languages returns the supported languages, default first.
func (i *I18n) Languages() []string {
	return slices.Clone(i.languages)
}

// DefaultLanguage returns the fallback language.
func (i *I18n) DefaultLanguage() string {
	return i.defaultLang
}

// Normalize maps raw input such as "FR" or "fr-CA" to a supported language.
func (i *I18n) Normalize(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	lang := base.String()
	if !slices.Contains(i.languages, lang) {
		return "", false
	}
	return lang, true
}

// Negotiate resolves an Accept-Language header by the base of its primary
// (highest quality) tag. Unsupported or unparsable headers yield the default.
func (i *I18n) Negotiate(header string) string {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return i.defaultLang
	}
	base, _ := tags[0].Base()
	if lang := base.String(); slices.Contains(i.languages, lang) {
		return lang
	}
	return i.defaultLang
}

func (i *I18n) lookup(lang, namespace, key string) (string, bool) {
	if s, ok := i.translations[buildKey(lang, namespace, key)]; ok {
		return s, true
	}
	if lang != i.defaultLang {
		s, ok := i.translations[buildKey(i.defaultLang, namespace, key)]
		return s, ok
	}
	return "", false
}

func (i *I18n) add(lang, namespace string, translations map[string]any) {
	for key, value := range flatten(translations, "") {
		i.translations[buildKey(lang, namespace, key)] = value
	}
}

func buildKey(lang, namespace, key string) string {
	return lang + ":" + namespace + ":" + key
}

func flatten(data map[string]any, prefix string) map[string]string {
	out := make(map[string]string)
	for key, value := range data {
		if prefix != "" {
			key = prefix + "." + key
		}
		switch v := value.(type) {
		case string:
			out[key] = v
		case map[string]any:
			maps.Copy(out, flatten(v, key))
		default:
			out[key] = fmt.Sprint(v)
		}
	}
	return out
}

const (
	pluralOne   = "one"
	pluralOther = "other"
)

// pluralForm implements the CLDR cardinal rules for the supported languages:
// French treats 0 and 1 as singular, English only 1.
func pluralForm(lang string, n int) string {
	if n < 0 {
		n = -n
	}
	switch {
	case n == 1:
		return pluralOne
	case n == 0 && lang == FR:
		return pluralOne
	default:
		return pluralOther
	}
}
