package catalog

const (
	// KeyPrefixGame is the prefix for game record keys
	KeyPrefixGame = "kix:game:"
	// KeyPrefixSlug is the prefix for slug -> id mapping keys
	KeyPrefixSlug = "kix:slug:"
	// KeyAllGames is the set of all game IDs
	KeyAllGames = "kix:games:all"
	// KeyGameSeq is the counter assigning insertion sequence numbers
	KeyGameSeq = "kix:games:seq"
	// KeySeeded is the marker claimed by the one seed pass
	KeySeeded = "kix:games:seeded"
)

// GameKey returns the storage key for a game by ID
func GameKey(id string) string {
	return KeyPrefixGame + id
}

// SlugKey returns the storage key mapping a slug to a game ID.
// The slug is used exactly as stored: lookups are case-sensitive.
func SlugKey(slug string) string {
	return KeyPrefixSlug + slug
}
