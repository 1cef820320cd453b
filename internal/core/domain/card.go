package domain

import "time"

// CardBrief is a lightweight card reference returned by catalog listings.
// It carries just enough to make dedup decisions before the costly detail
// fetch and is never persisted.
type CardBrief struct {
	// ID is the catalog's card identifier (e.g. "swsh3-136").
	ID string

	// LocalID is the card number within its set.
	LocalID string

	// Name is the card's display name.
	Name string

	// Image is the base image URL, if the listing carried one.
	Image string
}

// Card is a fully detailed catalog card, ready to persist.
type Card struct {
	// ID is the catalog's card identifier. Stored cards are keyed by it.
	ID string

	// LocalID is the card number within its set.
	LocalID string

	// Name is the card's display name.
	Name string

	// Category is the card kind (Pokemon, Trainer, Energy).
	Category string

	// Rarity is the upstream rarity label.
	Rarity string

	// Types are the card's energy types, if any.
	Types []string

	// HP is the card's hit points. Zero for non-Pokemon cards.
	HP int

	// Illustrator credits the card artist.
	Illustrator string

	// Image is the base image URL.
	Image string

	// Set references the card's parent set.
	Set SetRef

	// SyncedAt is refreshed every time the card is upserted.
	SyncedAt time.Time
}

// HasType reports whether the card carries the given energy type,
// compared case-insensitively.
func (c *Card) HasType(t string) bool {
	for _, ct := range c.Types {
		if equalFold(ct, t) {
			return true
		}
	}
	return false
}
