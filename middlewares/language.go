package middlewares

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/folio/internal"
	"github.com/dmitrymomot/folio/pkg/i18n"
	"github.com/dmitrymomot/folio/pkg/logger"
)

// LanguageCookie persists the visitor's explicit language choice.
const LanguageCookie = "preferred-language"

// LanguageQuery overrides the language for a single request, e.g. API calls.
const LanguageQuery = "lang"

// LanguageConfig configures the Language middleware.
type LanguageConfig struct {
	Namespace string
	Sources   []internal.ExtractorSource
}

// LanguageOption configures LanguageConfig.
type LanguageOption func(*LanguageConfig)

// WithLanguageNamespace sets the catalogue namespace of the request translator.
func WithLanguageNamespace(ns string) LanguageOption {
	return func(cfg *LanguageConfig) {
		cfg.Namespace = ns
	}
}

// WithLanguageSources replaces the default lookup chain. Every value is
// still normalized against the catalogue; unsupported ones are skipped.
func WithLanguageSources(sources ...internal.ExtractorSource) LanguageOption {
	return func(cfg *LanguageConfig) {
		cfg.Sources = sources
	}
}

// FromAcceptLanguage returns a source that resolves the primary
// Accept-Language tag by its base language.
func FromAcceptLanguage(svc *i18n.I18n) internal.ExtractorSource {
	return func(c internal.Context) (string, bool) {
		header := c.Header("Accept-Language")
		if header == "" {
			return "", false
		}
		return svc.Negotiate(header), true
	}
}

// Language returns middleware that resolves the request language, binds a
// Translator to it and stores the translator in the request context.
func Language(svc *i18n.I18n, opts ...LanguageOption) internal.Middleware {
	cfg := &LanguageConfig{
		Sources: []internal.ExtractorSource{
			internal.FromQuery(LanguageQuery),
			internal.FromCookie(LanguageCookie),
			FromAcceptLanguage(svc),
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	// An unsupported value (say ?lang=de) lets the next source answer.
	sources := make([]internal.ExtractorSource, len(cfg.Sources))
	for i, src := range cfg.Sources {
		sources[i] = internal.Accepting(src, svc.Normalize)
	}
	extractor := internal.NewExtractor(sources...)

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			lang, ok := extractor.Extract(c)
			if !ok {
				lang = svc.DefaultLanguage()
			}

			tr := i18n.NewTranslator(svc, lang, cfg.Namespace)
			c.SetContext(i18n.WithTranslator(c.Context(), tr))
			c.SetHeader("Content-Language", lang)
			c.Response().Header().Add("Vary", "Cookie, Accept-Language")

			return next(c)
		}
	}
}

// GetTranslator extracts the Translator from the context.
// Returns nil if the Language middleware is not used.
func GetTranslator(c internal.Context) *i18n.Translator {
	return i18n.FromContext(c.Context())
}

// LanguageExtractor adds "lang" to log records written with the request context.
func LanguageExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if lang := i18n.LanguageFromContext(ctx); lang != "" {
			return slog.String("lang", lang), true
		}
		return slog.Attr{}, false
	}
}
