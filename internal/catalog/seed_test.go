package catalog

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kixhq/kix/internal/domain"
	"github.com/kixhq/kix/internal/kv"
	"github.com/kixhq/kix/internal/logger"
)

// flakyKV fails a limited number of game-record writes, leaving every other
// operation intact.
type flakyKV struct {
	*kv.Memory
	failWrites int
}

func (f *flakyKV) Set(ctx context.Context, key string, value []byte) error {
	if f.failWrites > 0 && strings.HasPrefix(key, KeyPrefixGame) {
		f.failWrites--
		return errors.New("backing store write failed")
	}
	return f.Memory.Set(ctx, key, value)
}

func TestEnsureSeededPublishesDemos(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.EnsureSeeded(ctx, DemoGames()))

	games, err := s.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, games, 2)
	for _, g := range games {
		assert.Equal(t, domain.StatusPublished, g.Status)
	}

	slugs := []string{games[0].Slug, games[1].Slug}
	assert.ElementsMatch(t, []string{"color-tap", "memory-match"}, slugs)
}

func TestEnsureSeededIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.EnsureSeeded(ctx, DemoGames()))
	require.NoError(t, s.EnsureSeeded(ctx, DemoGames()))

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestEnsureSeededSkipsNonEmptyCatalog(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, validInput("existing"))
	require.NoError(t, err)

	require.NoError(t, s.EnsureSeeded(ctx, DemoGames()))

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestEnsureSeededRetriesAfterFailedPass(t *testing.T) {
	store := &flakyKV{Memory: kv.NewMemory(), failWrites: 1}
	s := New(store, logger.Nop())
	ctx := context.Background()

	require.Error(t, s.EnsureSeeded(ctx, DemoGames()))

	// The failed pass must release its marker so the next boot can seed the
	// still-empty catalog.
	require.NoError(t, s.EnsureSeeded(ctx, DemoGames()))

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestEnsureSeededConcurrent(t *testing.T) {
	// All goroutines share one kv so they race for the same seed marker.
	store := kv.NewMemory()
	ctx := context.Background()

	const n = 10
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := New(store, logger.Nop())
			errs <- s.EnsureSeeded(ctx, DemoGames())
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	s := New(store, logger.Nop())
	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
