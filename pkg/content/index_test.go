package content_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/content"
)

func TestDecodeIndex(t *testing.T) {
	t.Parallel()

	t.Run("objects", func(t *testing.T) {
		t.Parallel()

		idx, err := content.DecodeIndex([]byte(`{
			"generated_at": "2024-05-01T10:00:00Z",
			"articles": [{"name": "articles/a.en.md", "title": "# A"}],
			"showcases": [{"name": "showcases/s.fr.md", "title": "# S"}]
		}`))
		require.NoError(t, err)
		require.Equal(t, "2024-05-01T10:00:00Z", idx.GeneratedAt)
		require.Equal(t, []content.Item{{Name: "articles/a.en.md", Title: "# A"}}, idx.Items(content.KindArticles))
		require.Equal(t, []content.Item{{Name: "showcases/s.fr.md", Title: "# S"}}, idx.Items(content.KindShowcases))
	})

	t.Run("bare path strings", func(t *testing.T) {
		t.Parallel()

		idx, err := content.DecodeIndex([]byte(`{"articles":["articles/a.en.md","articles/a.fr.md"]}`))
		require.NoError(t, err)
		require.Equal(t, []content.Item{{Name: "articles/a.en.md"}, {Name: "articles/a.fr.md"}}, idx.Articles)
		require.Empty(t, idx.Showcases)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		_, err := content.DecodeIndex([]byte(`{"articles": 3}`))
		require.ErrorIs(t, err, content.ErrDecode)
	})
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	k, err := content.ParseKind("articles")
	require.NoError(t, err)
	require.Equal(t, content.KindArticles, k)

	k, err = content.ParseKind("projects")
	require.NoError(t, err)
	require.Equal(t, content.KindShowcases, k)

	_, err = content.ParseKind("videos")
	require.ErrorIs(t, err, content.ErrUnknownKind)

	var nilIndex *content.Index
	require.Nil(t, nilIndex.Items(content.KindArticles))
}
