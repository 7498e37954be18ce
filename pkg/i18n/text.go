package i18n

// Text is a string given in several languages at once, keyed by language.
type Text map[string]string

// In returns the text for lang, then for fallback, then any non-empty value.
func (t Text) In(lang, fallback string) string {
	if s := t[lang]; s != "" {
		return s
	}
	if s := t[fallback]; s != "" {
		return s
	}
	for _, l := range []string{EN, FR} {
		if s := t[l]; s != "" {
			return s
		}
	}
	return ""
}
