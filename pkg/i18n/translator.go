package i18n

import (
	"context"
	"time"
)

// Translator binds an I18n catalogue to one language and namespace.
type Translator struct {
	i18n      *I18n
	language  string
	namespace string
}

// NewTranslator panics on a nil catalogue. An empty language selects the default.
func NewTranslator(svc *I18n, lang, namespace string) *Translator {
	if svc == nil {
		panic("i18n: service is not provided")
	}
	if lang == "" {
		lang = svc.DefaultLanguage()
	}
	return &Translator{i18n: svc, language: lang, namespace: namespace}
}

func (t *Translator) T(key string, placeholders ...M) string {
	return t.i18n.T(t.language, t.namespace, key, placeholders...)
}

func (t *Translator) Tn(key string, n int, placeholders ...M) string {
	return t.i18n.Tn(t.language, t.namespace, key, n, placeholders...)
}

// Pick returns the variant of text for the translator's language.
func (t *Translator) Pick(text Text) string {
	return text.In(t.language, t.i18n.DefaultLanguage())
}

// MonthYear formats a date in the translator's language.
func (t *Translator) MonthYear(tm time.Time) string {
	return MonthYear(t.language, tm)
}

// Language returns the bound language.
func (t *Translator) Language() string {
	return t.language
}

// Namespace returns a translator for another namespace in the same language.
func (t *Translator) Namespace(namespace string) *Translator {
	return &Translator{i18n: t.i18n, language: t.language, namespace: namespace}
}

type translatorKey struct{}

// WithTranslator stores tr in ctx.
func WithTranslator(ctx context.Context, tr *Translator) context.Context {
	return context.WithValue(ctx, translatorKey{}, tr)
}

// FromContext returns the request translator, or nil.
func FromContext(ctx context.Context) *Translator {
	tr, _ := ctx.Value(translatorKey{}).(*Translator)
	return tr
}

// LanguageFromContext returns the request language, or "" when none was resolved.
func LanguageFromContext(ctx context.Context) string {
	if tr := FromContext(ctx); tr != nil {
		return tr.language
	}
	return ""
}
