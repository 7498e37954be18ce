package i18n_test

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/i18n"
)

func newTestI18n(t *testing.T, opts ...i18n.Option) *i18n.I18n {
	t.Helper()

	base := []i18n.Option{
		i18n.WithLanguages(i18n.EN, i18n.FR),
		i18n.WithTranslations("en", "home", map[string]any{
			"greeting": "Hello, {{name}}!",
			"analyzer": map[string]any{"submit": "Analyze"},
			"articles": map[string]any{"one": "{{count}} article", "other": "{{count}} articles"},
			"only_en":  "English only",
		}),
		i18n.WithTranslations("fr", "home", map[string]any{
			"greeting": "Bonjour, {{name}} !",
			"analyzer": map[string]any{"submit": "Analyser"},
			"articles": map[string]any{"one": "{{count}} article", "other": "{{count}} articles"},
		}),
	}
	svc, err := i18n.New(append(base, opts...)...)
	require.NoError(t, err)
	return svc
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		svc, err := i18n.New()
		require.NoError(t, err)
		require.Equal(t, "en", svc.DefaultLanguage())
		require.Equal(t, []string{"en"}, svc.Languages())
	})

	t.Run("default language is always supported", func(t *testing.T) {
		t.Parallel()

		svc, err := i18n.New(i18n.WithDefaultLanguage("fr"), i18n.WithLanguages("en"))
		require.NoError(t, err)
		require.Equal(t, []string{"fr", "en"}, svc.Languages())
	})

	t.Run("rejects empty values", func(t *testing.T) {
		t.Parallel()

		_, err := i18n.New(i18n.WithDefaultLanguage(" "))
		require.ErrorIs(t, err, i18n.ErrEmptyLanguage)

		_, err = i18n.New(i18n.WithTranslations("en", "", map[string]any{"a": "b"}))
		require.ErrorIs(t, err, i18n.ErrEmptyNamespace)
	})
}

func TestI18n_T(t *testing.T) {
	t.Parallel()

	var missing []string
	svc := newTestI18n(t, i18n.WithMissingKeyHandler(func(lang, ns, key string) {
		missing = append(missing, lang+":"+ns+":"+key)
	}))

	require.Equal(t, "Bonjour, Ada !", svc.T("fr", "home", "greeting", i18n.M{"name": "Ada"}))
	require.Equal(t, "Analyze", svc.T("en", "home", "analyzer.submit"))
	require.Equal(t, "English only", svc.T("fr", "home", "only_en"), "falls back to default language")
	require.Equal(t, "nope", svc.T("fr", "home", "nope"))
	require.Equal(t, []string{"fr:home:nope"}, missing)
}

func TestI18n_Tn(t *testing.T) {
	t.Parallel()

	svc := newTestI18n(t)

	require.Equal(t, "1 article", svc.Tn("en", "home", "articles", 1))
	require.Equal(t, "0 articles", svc.Tn("en", "home", "articles", 0))
	require.Equal(t, "0 article", svc.Tn("fr", "home", "articles", 0))
	require.Equal(t, "3 articles", svc.Tn("fr", "home", "articles", 3))
	require.Equal(t, "missing", svc.Tn("fr", "home", "missing", 3))
}

func TestI18n_Normalize(t *testing.T) {
	t.Parallel()

	svc := newTestI18n(t)

	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"fr", "fr", true},
		{"FR", "fr", true},
		{"fr-CA", "fr", true},
		{" en ", "en", true},
		{"de", "", false},
		{"", "", false},
		{"not a tag!", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()

			got, ok := svc.Normalize(tc.in)
			require.Equal(t, tc.ok, ok)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestI18n_Negotiate(t *testing.T) {
	t.Parallel()

	svc := newTestI18n(t)

	tests := []struct {
		header string
		want   string
	}{
		{"fr-FR,fr;q=0.9,en;q=0.8", "fr"},
		{"fr-CA", "fr"},
		{"en-US,fr;q=0.5", "en"},
		{"de-DE,fr;q=0.9", "en"},
		{"en;q=0.3,fr;q=0.9", "fr"},
		{"", "en"},
	}
	for _, tc := range tests {
		t.Run(tc.header, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, svc.Negotiate(tc.header))
		})
	}
}

func TestWithYAMLDir(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"en/common.yaml": {Data: []byte("nav:\n  home: Home\n  articles: Articles\n")},
		"fr/common.yml":  {Data: []byte("nav:\n  home: Accueil\n")},
		"README.md":      {Data: []byte("ignored")},
	}

	svc, err := i18n.New(i18n.WithLanguages("en", "fr"), i18n.WithYAMLDir(fsys))
	require.NoError(t, err)
	require.Equal(t, "Accueil", svc.T("fr", "common", "nav.home"))
	require.Equal(t, "Articles", svc.T("fr", "common", "nav.articles"))

	t.Run("file outside language dir", func(t *testing.T) {
		t.Parallel()

		_, err := i18n.New(i18n.WithYAMLDir(fstest.MapFS{"common.yaml": {Data: []byte("a: b")}}))
		require.ErrorIs(t, err, i18n.ErrInvalidFile)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()

		_, err := i18n.New(i18n.WithYAMLDir(fstest.MapFS{"en/x.yaml": {Data: []byte("a: [")}}))
		require.ErrorIs(t, err, i18n.ErrInvalidFile)
	})
}

func TestTranslator(t *testing.T) {
	t.Parallel()

	svc := newTestI18n(t)
	tr := i18n.NewTranslator(svc, "fr", "home")

	require.Equal(t, "fr", tr.Language())
	require.Equal(t, "Analyser", tr.T("analyzer.submit"))
	require.Equal(t, "Lead backend", tr.Pick(i18n.Text{"en": "Backend lead", "fr": "Lead backend"}))
	require.Equal(t, "Backend lead", tr.Pick(i18n.Text{"en": "Backend lead"}))
	require.Equal(t, "janv. 2023", tr.MonthYear(time.Date(2023, time.January, 5, 0, 0, 0, 0, time.UTC)))

	en := i18n.NewTranslator(svc, "", "home")
	require.Equal(t, "en", en.Language())
	require.Equal(t, "Jan 2023", en.MonthYear(time.Date(2023, time.January, 5, 0, 0, 0, 0, time.UTC)))

	require.Panics(t, func() { i18n.NewTranslator(nil, "en", "home") })
}

func TestMonthYear(t *testing.T) {
	t.Parallel()

	aug := time.Date(2021, time.August, 1, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "Aug 2021", i18n.MonthYear("en", aug))
	require.Equal(t, "août 2021", i18n.MonthYear("fr", aug))
	require.Equal(t, "Aug 2021", i18n.MonthYear("de", aug))
}

func TestText_In(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", i18n.Text{}.In("fr", "en"))
	require.Equal(t, "Bonjour", i18n.Text{"fr": "Bonjour"}.In("en", "en"), "any language beats empty")
}

func TestContext(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	require.Nil(t, i18n.FromContext(ctx))
	require.Equal(t, "", i18n.LanguageFromContext(ctx))

	tr := i18n.NewTranslator(newTestI18n(t), "fr", "home")
	ctx = i18n.WithTranslator(ctx, tr)
	require.Same(t, tr, i18n.FromContext(ctx))
	require.Equal(t, "fr", i18n.LanguageFromContext(ctx))
}

func TestReplacePlaceholders(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Hi {{who}}", i18n.ReplacePlaceholders("Hi {{who}}", nil))
	require.Equal(t, "7/10", i18n.ReplacePlaceholders("{{score}}/{{max}}", i18n.M{"score": 7, "max": 10}))
}
