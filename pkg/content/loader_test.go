package content_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/content"
)

// fakeProvider counts fetches and fails while fail is set.
type fakeProvider struct {
	calls atomic.Int32
	fail  atomic.Bool
	delay time.Duration
}

func (p *fakeProvider) FetchIndex(ctx context.Context) (*content.Index, error) {
	n := p.calls.Add(1)
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	if p.fail.Load() {
		return nil, errors.New("upstream down")
	}
	return &content.Index{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Articles:    []content.Item{{Name: "articles/a.en.md", Title: string(rune('a' + n))}},
	}, nil
}

func TestIndexLoader_FreshSnapshotServedWithoutIO(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{}
	l := content.NewIndexLoader(p)

	first, err := l.Load(context.Background())
	require.NoError(t, err)
	second, err := l.Load(context.Background())
	require.NoError(t, err)

	require.Equal(t, int32(1), p.calls.Load())
	require.Equal(t, first.FetchedAt, second.FetchedAt)
	require.Len(t, second.Index.Articles, 1)
}

func TestIndexLoader_StaleSnapshotRefetched(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{}
	l := content.NewIndexLoader(p, content.WithStaleAfter(20*time.Millisecond))

	first, err := l.Load(context.Background())
	require.NoError(t, err)

	time.Sleep(40 * time.Millisecond)

	second, err := l.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, int32(2), p.calls.Load())
	require.True(t, second.FetchedAt.After(first.FetchedAt))
}

func TestIndexLoader_FailedRefetchKeepsPriorSnapshot(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{}
	l := content.NewIndexLoader(p, content.WithStaleAfter(20*time.Millisecond))

	first, err := l.Load(context.Background())
	require.NoError(t, err)

	p.fail.Store(true)
	time.Sleep(40 * time.Millisecond)

	got, err := l.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, first.FetchedAt, got.FetchedAt)
	require.Equal(t, first.Index.Articles, got.Index.Articles)
	require.Equal(t, int32(2), p.calls.Load())
}

func TestIndexLoader_FailedFirstFetchSurfacesError(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{}
	p.fail.Store(true)
	l := content.NewIndexLoader(p)

	_, err := l.Load(context.Background())
	require.ErrorIs(t, err, content.ErrNoIndex)

	// Failures are not cached.
	p.fail.Store(false)
	snap, err := l.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap.Index)
	require.Equal(t, int32(2), p.calls.Load())
}

func TestIndexLoader_ConcurrentCallersShareOneFetch(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{delay: 50 * time.Millisecond}
	l := content.NewIndexLoader(p)

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.Load(context.Background())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	require.Equal(t, int32(1), p.calls.Load())
}

func TestIndexLoader_Refresh(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{}
	l := content.NewIndexLoader(p)

	_, err := l.Load(context.Background())
	require.NoError(t, err)
	_, err = l.Refresh(context.Background())
	require.NoError(t, err)
	require.Equal(t, int32(2), p.calls.Load())

	require.NoError(t, l.Healthcheck()(context.Background()))
}

func TestCatalog(t *testing.T) {
	t.Parallel()

	l := content.NewIndexLoader(&fakeProvider{})
	c := content.NewCatalog(l, content.SuffixStrategy{})

	list, err := c.List(context.Background(), content.KindArticles, "en")
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, slugs(list))

	list, err = c.List(context.Background(), content.KindShowcases, "en")
	require.NoError(t, err)
	require.Empty(t, list)

	item, err := c.Find(context.Background(), content.KindArticles, "a", "fr")
	require.NoError(t, err)
	require.True(t, item.Fallback)
}
