package domain

import "time"

// Target is a named filter the user wants kept hydrated, such as a
// collection defined as "all cards of set X".
type Target struct {
	// ID is the unique identifier for the target.
	ID string

	// Name is the human-readable name.
	Name string

	// Filter selects the cards belonging to the target.
	Filter Filter

	// CreatedAt is when the target was created.
	CreatedAt time.Time

	// UpdatedAt is when the target was last modified.
	UpdatedAt time.Time

	// LastHydratedAt is when the target last completed a hydration.
	// Zero if it never has.
	LastHydratedAt time.Time
}

// NeverHydrated returns true if the target has not completed a hydration yet.
func (t *Target) NeverHydrated() bool {
	return t.LastHydratedAt.IsZero()
}
