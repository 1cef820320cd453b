package driven

import (
	"context"

	"github.com/SergioXp/holostack/internal/core/domain"
)

// CatalogClient reads from the third-party card catalog.
// Implementations own transport, pagination, rate limiting and retries.
// Every method may fail with an error wrapping domain.ErrUpstream.
type CatalogClient interface {
	// FetchSet returns one set with its brief card listing embedded.
	FetchSet(ctx context.Context, id string) (*domain.Set, error)

	// FetchSets returns every set with its series name.
	// Card listings are embedded only when includeCards is true.
	FetchSets(ctx context.Context, includeCards bool) ([]domain.Set, error)

	// FetchCards returns full detail for the given card ids.
	// Ids the catalog does not know are omitted from the result.
	FetchCards(ctx context.Context, ids []string) ([]domain.Card, error)

	// SearchByName returns briefs whose name matches, including partial matches.
	SearchByName(ctx context.Context, name string) ([]domain.CardBrief, error)

	// SearchByRarity returns briefs filtered server-side by a single rarity.
	SearchByRarity(ctx context.Context, rarity string) ([]domain.CardBrief, error)

	// SearchByCategory returns briefs filtered server-side by category.
	SearchByCategory(ctx context.Context, category string) ([]domain.CardBrief, error)
}
