// Package i18n resolves the visitor language and looks up localized text.
//
// Two kinds of text exist on the site. UI strings live in an embedded YAML
// catalogue loaded with [WithYAMLDir] and are read with [I18n.T]:
//
//	svc, err := i18n.New(
//		i18n.WithLanguages(i18n.EN, i18n.FR),
//		i18n.WithYAMLDir(translationsFS),
//	)
//	svc.T("fr", "home", "analyzer.submit") // "Analyser"
//
// Content-provided text that carries both languages inline is a [Text] and is
// read with [Translator.Pick]:
//
//	tr := i18n.NewTranslator(svc, "fr", "home")
//	tr.Pick(i18n.Text{"en": "Backend lead", "fr": "Lead backend"})
//
// Catalogue files follow {lang}/{namespace}.yaml. Nested keys are flattened
// with dots. Lookups fall back to the default language, then to the key.
//
// [I18n.Negotiate] maps an Accept-Language header to a supported language by
// the base of its primary tag, so "fr-CA,en;q=0.8" resolves to "fr".
//
// The Translator for the current request travels in the context; see
// [WithTranslator] and [FromContext].
package i18n
