package driven

import (
	"context"

	"github.com/SergioXp/holostack/internal/core/domain"
)

// CardStore persists hydrated cards and their sets.
// Backed by SQLite. Cards and sets are never deleted by hydration.
type CardStore interface {
	// ExistingIDs returns the subset of ids already stored.
	ExistingIDs(ctx context.Context, ids []string) (map[string]struct{}, error)

	// UpsertSet creates or updates a set.
	// A partial set never overwrites the series, counts or release date
	// of an existing row.
	UpsertSet(ctx context.Context, set domain.Set) error

	// UpsertCard creates or replaces a card and refreshes its sync time.
	UpsertCard(ctx context.Context, card domain.Card) error

	// GetSet retrieves a set by ID.
	GetSet(ctx context.Context, id string) (*domain.Set, error)

	// GetCard retrieves a card by ID.
	GetCard(ctx context.Context, id string) (*domain.Card, error)

	// CountCards returns the number of stored cards in a set.
	CountCards(ctx context.Context, setID string) (int, error)
}
