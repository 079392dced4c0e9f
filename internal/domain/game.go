package domain

import "time"

// GameStatus is the lifecycle state of a catalog entry.
// draft --publish--> published --archive--> archived.
// A draft may also be archived directly. No transition deletes a record.
type GameStatus string

const (
	StatusDraft     GameStatus = "draft"
	StatusPublished GameStatus = "published"
	StatusArchived  GameStatus = "archived"
)

// Valid reports whether s is one of the known statuses.
func (s GameStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// Orientation is the preferred display orientation of a game.
type Orientation string

const (
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
)

func (o Orientation) Valid() bool {
	return o == OrientationPortrait || o == OrientationLandscape
}

// Game is a catalog entry for an embeddable mini-game.
type Game struct {
	// ─────────────────────────────
	// Identity
	// ─────────────────────────────

	// ID is the opaque unique identifier, assigned at creation, immutable.
	ID string `json:"id"`

	// Slug is the unique URL-safe short identifier, user-supplied at
	// creation. Mutable, but must remain unique across the catalog.
	Slug string `json:"slug"`

	// ─────────────────────────────
	// Display & content
	// ─────────────────────────────

	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnail_url"`

	// EntryURL is the location of the playable content, loaded in a
	// sandboxed iframe. Required.
	EntryURL string `json:"entry_url"`

	// Orientation defaults to portrait.
	Orientation Orientation `json:"orientation"`

	// Status starts at draft for every created game.
	Status GameStatus `json:"status"`

	// Version is a free-form string, default "1.0.0".
	Version string `json:"version"`

	// Tags preserves insertion order. Never nil, may be empty.
	Tags []string `json:"tags"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	// CreatedAt is fixed at creation.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is refreshed on every mutation.
	UpdatedAt time.Time `json:"updated_at"`
}

// GameCreateInput carries the caller-supplied fields for Create.
// Status is not accepted: every game starts as a draft.
type GameCreateInput struct {
	Title        string      `json:"title"`
	Slug         string      `json:"slug"`
	Description  string      `json:"description"`
	ThumbnailURL string      `json:"thumbnail_url"`
	EntryURL     string      `json:"entry_url"`
	Orientation  Orientation `json:"orientation"`
	Version      string      `json:"version"`
	Tags         []string    `json:"tags"`
}

// GameUpdateInput is a sparse patch: nil fields are left untouched.
type GameUpdateInput struct {
	Title        *string      `json:"title"`
	Slug         *string      `json:"slug"`
	Description  *string      `json:"description"`
	ThumbnailURL *string      `json:"thumbnail_url"`
	EntryURL     *string      `json:"entry_url"`
	Orientation  *Orientation `json:"orientation"`
	Version      *string      `json:"version"`
	Tags         *[]string    `json:"tags"`
	Status       *GameStatus  `json:"status"`
}
