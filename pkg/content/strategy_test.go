package content_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/content"
)

func slugs(items []content.LocalizedItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Slug)
	}
	return out
}

func TestNewStrategy(t *testing.T) {
	t.Parallel()

	s, err := content.NewStrategy("suffix")
	require.NoError(t, err)
	require.Equal(t, content.StrategySuffix, s.Name())

	s, err = content.NewStrategy("heuristic")
	require.NoError(t, err)
	require.Equal(t, content.StrategyHeuristic, s.Name())

	_, err = content.NewStrategy("both")
	require.ErrorIs(t, err, content.ErrUnknownStrategy)
}

func TestSuffixStrategy_ResolveList(t *testing.T) {
	t.Parallel()

	s := content.SuffixStrategy{}

	t.Run("one entry per language", func(t *testing.T) {
		t.Parallel()

		items := []content.Item{{Name: "articles/a.en.md"}, {Name: "articles/a.fr.md"}}

		got := s.ResolveList(items, "en")
		require.Len(t, got, 1)
		require.Equal(t, "a", got[0].Slug)
		require.Equal(t, "articles/a.en.md", got[0].Path)
		require.Equal(t, "en", got[0].Lang)
		require.False(t, got[0].Fallback)
	})

	t.Run("no matching suffix gives empty list", func(t *testing.T) {
		t.Parallel()

		items := []content.Item{{Name: "articles/a.en.md"}, {Name: "articles/a.fr.md"}}
		require.Empty(t, s.ResolveList(items, "de"))
	})

	t.Run("slug is filename minus language suffix", func(t *testing.T) {
		t.Parallel()

		items := []content.Item{
			{Name: "articles/rag-in-production.en.md", Title: "# RAG in production"},
			{Name: "articles/deep-dive.en.md"},
			{Name: "articles/no-lang.md"},
			{Name: "articles/readme.txt"},
		}
		got := s.ResolveList(items, "en")
		require.Equal(t, []string{"rag-in-production", "deep-dive"}, slugs(got))
		require.Equal(t, "RAG in production", got[0].Title)
		require.Equal(t, "Deep Dive", got[1].Title)
	})

	t.Run("duplicate slugs keep the first", func(t *testing.T) {
		t.Parallel()

		items := []content.Item{
			{Name: "articles/a.en.md", Title: "first"},
			{Name: "drafts/a.en.md", Title: "second"},
		}
		got := s.ResolveList(items, "en")
		require.Len(t, got, 1)
		require.Equal(t, "first", got[0].Title)
	})
}

func TestResolveList_IsPure(t *testing.T) {
	t.Parallel()

	items := []content.Item{
		{Name: "articles/b.en.md"},
		{Name: "articles/a.fr.md"},
		{Name: "articles/a.en.md"},
		{Name: "articles/c.fr.md"},
	}

	for _, s := range []content.Strategy{content.SuffixStrategy{}, content.HeuristicStrategy{}} {
		en := s.ResolveList(items, "en")
		fr := s.ResolveList(items, "fr")
		require.Equal(t, en, s.ResolveList(items, "en"), s.Name())
		require.Equal(t, fr, s.ResolveList(items, "fr"), s.Name())
	}

	s := content.SuffixStrategy{}
	require.Equal(t, []string{"b", "a"}, slugs(s.ResolveList(items, "en")))
	require.Equal(t, []string{"a", "c"}, slugs(s.ResolveList(items, "fr")))
}

func TestHeuristicStrategy(t *testing.T) {
	t.Parallel()

	s := content.HeuristicStrategy{}
	items := []content.Item{
		{Name: "showcases/rag-platform.md", Title: "# Building a RAG platform"},
		{Name: "showcases/plateforme-rag.md", Title: "# Étude d'un système RAG"},
		{Name: "showcases/untitled-project.md"},
	}

	en := s.ResolveList(items, "en")
	require.Equal(t, []string{"rag-platform", "untitled-project"}, slugs(en))
	require.Equal(t, "Building a RAG platform", en[0].Title)
	require.Equal(t, "Untitled Project", en[1].Title)

	fr := s.ResolveList(items, "fr")
	require.Equal(t, []string{"plateforme-rag"}, slugs(fr))
	require.Equal(t, "fr", fr[0].Lang)
}

func TestDetectLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title string
		want  string
	}{
		{"# Hello world", "en"},
		{"Déploiement continu", "fr"},
		{"L'art du backend", "fr"},
		{"Pourquoi qu'on teste", "fr"},
		{"SYSTÈME distribué", "fr"},
		{"Case study", "en"},
		{"", "en"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, content.DetectLanguage(tt.title))
		})
	}
}

func TestResolveContent(t *testing.T) {
	t.Parallel()

	s := content.SuffixStrategy{}
	items := []content.Item{
		{Name: "showcases/only-fr.fr.md"},
		{Name: "showcases/both.fr.md"},
		{Name: "showcases/both.en.md"},
	}

	t.Run("same language preferred", func(t *testing.T) {
		t.Parallel()

		got, err := s.ResolveContent(items, "both", "en")
		require.NoError(t, err)
		require.Equal(t, "showcases/both.en.md", got.Path)
		require.False(t, got.Fallback)
	})

	t.Run("falls back to another language", func(t *testing.T) {
		t.Parallel()

		got, err := s.ResolveContent(items, "only-fr", "en")
		require.NoError(t, err)
		require.Equal(t, "showcases/only-fr.fr.md", got.Path)
		require.Equal(t, "fr", got.Lang)
		require.True(t, got.Fallback)
	})

	t.Run("unknown slug", func(t *testing.T) {
		t.Parallel()

		_, err := s.ResolveContent(items, "missing", "en")
		require.ErrorIs(t, err, content.ErrItemNotFound)
	})
}

func TestTitleHelpers(t *testing.T) {
	t.Parallel()

	require.Equal(t, "My First Post", content.TitleFromSlug("my-first_post"))
	require.Equal(t, "Go Is Fun", content.TitleFromSlug("go-is-fun"))
	require.Equal(t, "Title", content.CleanTitle("#   Title  "))
	require.Equal(t, "## Sub", content.CleanTitle("# ## Sub"))
}
