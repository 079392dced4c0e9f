// Package catalog owns the Game records. It is written against the kv
// capability set, so the backing medium (in-process map, Redis) is swappable
// without touching any of the catalog semantics.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/kixhq/kix/internal/domain"
	"github.com/kixhq/kix/internal/kv"
	"github.com/kixhq/kix/internal/logger"
)

// Store is the game record store. Callers always receive value copies;
// mutating a returned Game never touches stored state.
type Store struct {
	kv  kv.Store
	log logger.Logger
	now func() time.Time
}

func New(kvs kv.Store, log logger.Logger) *Store {
	return &Store{
		kv:  kvs,
		log: log,
		now: time.Now,
	}
}

// record is the stored form of a Game: the public fields plus the insertion
// sequence number used to break created_at ties deterministically.
type record struct {
	domain.Game
	Seq int64 `json:"seq"`
}

// ListPublished returns every published game, newest first.
func (s *Store) ListPublished(ctx context.Context) ([]domain.Game, error) {
	games, err := s.list(ctx)
	if err != nil {
		return nil, err
	}
	published := make([]domain.Game, 0, len(games))
	for _, g := range games {
		if g.Status == domain.StatusPublished {
			published = append(published, g)
		}
	}
	return published, nil
}

// ListAll returns every game regardless of status, newest first.
func (s *Store) ListAll(ctx context.Context) ([]domain.Game, error) {
	return s.list(ctx)
}

// GetByID returns the game with that ID. Absence is (zero, false, nil),
// never an error.
func (s *Store) GetByID(ctx context.Context, id string) (domain.Game, bool, error) {
	rec, ok, err := s.getRecord(ctx, id)
	if err != nil || !ok {
		return domain.Game{}, false, err
	}
	return rec.Game, true, nil
}

// GetBySlug looks a game up by its slug, case-sensitively exactly as stored.
func (s *Store) GetBySlug(ctx context.Context, slug string) (domain.Game, bool, error) {
	id, err := s.kv.Get(ctx, SlugKey(slug))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return domain.Game{}, false, nil
		}
		return domain.Game{}, false, fmt.Errorf("failed to resolve slug %q: %w", slug, err)
	}
	return s.GetByID(ctx, string(id))
}

// Create inserts a new game. Status is forced to draft regardless of input.
// A colliding slug fails with ConflictError and leaves the store unchanged.
func (s *Store) Create(ctx context.Context, in domain.GameCreateInput) (domain.Game, error) {
	return s.insert(ctx, in, domain.StatusDraft)
}

func (s *Store) insert(ctx context.Context, in domain.GameCreateInput, status domain.GameStatus) (domain.Game, error) {
	if err := validateCreate(in); err != nil {
		return domain.Game{}, err
	}

	id := uuid.NewString()

	// Claiming the slug mapping with SetNX is the serialization point that
	// keeps two concurrent creates with the same slug from both succeeding.
	claimed, err := s.kv.SetNX(ctx, SlugKey(in.Slug), []byte(id))
	if err != nil {
		return domain.Game{}, fmt.Errorf("failed to claim slug %q: %w", in.Slug, err)
	}
	if !claimed {
		return domain.Game{}, &domain.ConflictError{Field: "slug", Value: in.Slug}
	}

	seq, err := s.kv.Incr(ctx, KeyGameSeq)
	if err != nil {
		s.releaseSlug(ctx, in.Slug)
		return domain.Game{}, fmt.Errorf("failed to assign sequence: %w", err)
	}

	now := s.now().UTC()
	rec := record{
		Game: domain.Game{
			ID:           id,
			Slug:         in.Slug,
			Title:        in.Title,
			Description:  in.Description,
			ThumbnailURL: in.ThumbnailURL,
			EntryURL:     in.EntryURL,
			Orientation:  orientationOrDefault(in.Orientation),
			Status:       status,
			Version:      versionOrDefault(in.Version),
			Tags:         copyTags(in.Tags),
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		Seq: seq,
	}

	if err := s.save(ctx, rec); err != nil {
		s.releaseSlug(ctx, in.Slug)
		return domain.Game{}, err
	}
	if err := s.kv.SetAdd(ctx, KeyAllGames, id); err != nil {
		_ = s.kv.Delete(ctx, GameKey(id))
		s.releaseSlug(ctx, in.Slug)
		return domain.Game{}, fmt.Errorf("failed to index game %s: %w", id, err)
	}

	return rec.Game, nil
}

// Update applies a sparse patch: nil fields are left untouched. Returns
// (zero, false, nil) when the ID is unknown. updated_at is refreshed on
// every successful patch, even an empty one. A patch that changes the slug
// re-checks uniqueness the same way Create does.
func (s *Store) Update(ctx context.Context, id string, patch domain.GameUpdateInput) (domain.Game, bool, error) {
	if err := validatePatch(patch); err != nil {
		return domain.Game{}, false, err
	}

	rec, ok, err := s.getRecord(ctx, id)
	if err != nil || !ok {
		return domain.Game{}, ok, err
	}

	oldSlug := rec.Slug
	slugChanged := patch.Slug != nil && *patch.Slug != oldSlug
	if slugChanged {
		claimed, err := s.kv.SetNX(ctx, SlugKey(*patch.Slug), []byte(id))
		if err != nil {
			return domain.Game{}, false, fmt.Errorf("failed to claim slug %q: %w", *patch.Slug, err)
		}
		if !claimed {
			return domain.Game{}, false, &domain.ConflictError{Field: "slug", Value: *patch.Slug}
		}
	}

	applyPatch(&rec.Game, patch)
	rec.UpdatedAt = s.now().UTC()

	if err := s.save(ctx, rec); err != nil {
		if slugChanged {
			s.releaseSlug(ctx, *patch.Slug)
		}
		return domain.Game{}, false, err
	}
	if slugChanged {
		// Best effort: a dangling old mapping only wastes a key.
		if err := s.kv.Delete(ctx, SlugKey(oldSlug)); err != nil {
			s.log.Warn("failed to drop old slug mapping",
				logger.String("slug", oldSlug),
				logger.Error(err))
		}
	}

	return rec.Game, true, nil
}

// Publish is sugar for Update with status=published.
func (s *Store) Publish(ctx context.Context, id string) (domain.Game, bool, error) {
	status := domain.StatusPublished
	return s.Update(ctx, id, domain.GameUpdateInput{Status: &status})
}

// Archive is sugar for Update with status=archived.
func (s *Store) Archive(ctx context.Context, id string) (domain.Game, bool, error) {
	status := domain.StatusArchived
	return s.Update(ctx, id, domain.GameUpdateInput{Status: &status})
}

// Count returns the number of games in the catalog.
func (s *Store) Count(ctx context.Context) (int64, error) {
	n, err := s.kv.SetLen(ctx, KeyAllGames)
	if err != nil {
		return 0, fmt.Errorf("failed to count games: %w", err)
	}
	return n, nil
}

// Ping reports whether the backing store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.kv.Ping(ctx)
}

// ─────────────────────────────────────────────────────────────────
// internals
// ─────────────────────────────────────────────────────────────────

func (s *Store) list(ctx context.Context) ([]domain.Game, error) {
	ids, err := s.kv.SetMembers(ctx, KeyAllGames)
	if err != nil {
		return nil, fmt.Errorf("failed to list game IDs: %w", err)
	}

	records := make([]record, 0, len(ids))
	for _, id := range ids {
		rec, ok, err := s.getRecord(ctx, id)
		if err != nil {
			// Backing-store failure must surface, never read as "empty".
			return nil, err
		}
		if !ok {
			// Index member without a record: tolerate, the record owns truth.
			continue
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.After(records[j].CreatedAt)
		}
		return records[i].Seq < records[j].Seq
	})

	games := make([]domain.Game, len(records))
	for i, rec := range records {
		games[i] = rec.Game
	}
	return games, nil
}

func (s *Store) getRecord(ctx context.Context, id string) (record, bool, error) {
	data, err := s.kv.Get(ctx, GameKey(id))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return record{}, false, nil
		}
		return record{}, false, fmt.Errorf("failed to get game %s: %w", id, err)
	}

	var rec record
	if err := unmarshalRecord(data, &rec); err != nil {
		return record{}, false, fmt.Errorf("failed to decode game %s: %w", id, err)
	}
	return rec, true, nil
}

func (s *Store) save(ctx context.Context, rec record) error {
	data, err := marshalRecord(rec)
	if err != nil {
		return fmt.Errorf("failed to encode game %s: %w", rec.ID, err)
	}
	if err := s.kv.Set(ctx, GameKey(rec.ID), data); err != nil {
		return fmt.Errorf("failed to save game %s: %w", rec.ID, err)
	}
	return nil
}

func (s *Store) releaseSlug(ctx context.Context, slug string) {
	if err := s.kv.Delete(ctx, SlugKey(slug)); err != nil {
		s.log.Warn("failed to release slug claim",
			logger.String("slug", slug),
			logger.Error(err))
	}
}

func validateCreate(in domain.GameCreateInput) error {
	if in.Title == "" {
		return &domain.ValidationError{Field: "title"}
	}
	if in.Slug == "" {
		return &domain.ValidationError{Field: "slug"}
	}
	if in.EntryURL == "" {
		return &domain.ValidationError{Field: "entry_url"}
	}
	if in.Orientation != "" && !in.Orientation.Valid() {
		return &domain.ValidationError{Field: "orientation", Reason: "must be portrait or landscape"}
	}
	return nil
}

func validatePatch(patch domain.GameUpdateInput) error {
	if patch.Slug != nil && *patch.Slug == "" {
		return &domain.ValidationError{Field: "slug", Reason: "must not be empty"}
	}
	if patch.Title != nil && *patch.Title == "" {
		return &domain.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if patch.EntryURL != nil && *patch.EntryURL == "" {
		return &domain.ValidationError{Field: "entry_url", Reason: "must not be empty"}
	}
	if patch.Orientation != nil && !patch.Orientation.Valid() {
		return &domain.ValidationError{Field: "orientation", Reason: "must be portrait or landscape"}
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return &domain.ValidationError{Field: "status", Reason: "must be draft, published or archived"}
	}
	return nil
}

func applyPatch(g *domain.Game, patch domain.GameUpdateInput) {
	if patch.Title != nil {
		g.Title = *patch.Title
	}
	if patch.Slug != nil {
		g.Slug = *patch.Slug
	}
	if patch.Description != nil {
		g.Description = *patch.Description
	}
	if patch.ThumbnailURL != nil {
		g.ThumbnailURL = *patch.ThumbnailURL
	}
	if patch.EntryURL != nil {
		g.EntryURL = *patch.EntryURL
	}
	if patch.Orientation != nil {
		g.Orientation = *patch.Orientation
	}
	if patch.Version != nil {
		g.Version = *patch.Version
	}
	if patch.Tags != nil {
		g.Tags = copyTags(*patch.Tags)
	}
	if patch.Status != nil {
		g.Status = *patch.Status
	}
}

func orientationOrDefault(o domain.Orientation) domain.Orientation {
	if o == "" {
		return domain.OrientationPortrait
	}
	return o
}

func versionOrDefault(v string) string {
	if v == "" {
		return "1.0.0"
	}
	return v
}

func copyTags(tags []string) []string {
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}
