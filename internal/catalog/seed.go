package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kixhq/kix/internal/domain"
	"github.com/kixhq/kix/internal/logger"
)

// DemoGames returns the built-in seed catalog: two published demo games.
func DemoGames() []domain.GameCreateInput {
	return []domain.GameCreateInput{
		{
			Title:        "Color Tap",
			Slug:         "color-tap",
			Description:  "Tap the correct color as fast as you can! A fast-paced reflex game that tests your reaction speed.",
			ThumbnailURL: "/games/color-tap/thumbnail.svg",
			EntryURL:     "/games/color-tap/index.html",
			Orientation:  domain.OrientationPortrait,
			Version:      "1.0.0",
			Tags:         []string{"arcade", "reflex", "casual"},
		},
		{
			Title:        "Memory Match",
			Slug:         "memory-match",
			Description:  "Flip cards and find matching pairs. Train your memory with this classic card matching game!",
			ThumbnailURL: "/games/memory-match/thumbnail.svg",
			EntryURL:     "/games/memory-match/index.html",
			Orientation:  domain.OrientationPortrait,
			Version:      "1.0.0",
			Tags:         []string{"puzzle", "memory", "casual"},
		},
	}
}

// EnsureSeeded inserts the given games as published records if the catalog is
// empty. The seed marker is claimed with set-if-absent, so N concurrent
// first accesses run at most one seed pass; losers observe the seeded data.
// Once any game exists, seeding never runs again.
func (s *Store) EnsureSeeded(ctx context.Context, games []domain.GameCreateInput) error {
	count, err := s.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to check catalog before seeding: %w", err)
	}
	if count > 0 {
		return nil
	}

	claimed, err := s.kv.SetNX(ctx, KeySeeded, []byte(s.now().UTC().Format(time.RFC3339)))
	if err != nil {
		return fmt.Errorf("failed to claim seed marker: %w", err)
	}
	if !claimed {
		// Another caller holds (or held) the seed pass.
		return nil
	}

	for _, in := range games {
		if _, err := s.insert(ctx, in, domain.StatusPublished); err != nil {
			var conflict *domain.ConflictError
			if errors.As(err, &conflict) {
				// A concurrent admin create beat the seed pass to this slug.
				s.log.Warn("seed skipped, slug already taken",
					logger.String("slug", in.Slug))
				continue
			}
			// Release the marker so the next boot retries instead of
			// skipping seeding forever on a still-empty store.
			if derr := s.kv.Delete(ctx, KeySeeded); derr != nil {
				s.log.Warn("failed to release seed marker",
					logger.Error(derr))
			}
			return fmt.Errorf("failed to seed game %q: %w", in.Slug, err)
		}
		s.log.Info("seeded demo game", logger.String("slug", in.Slug))
	}
	return nil
}
