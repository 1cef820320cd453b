package driving

import (
	"context"

	"github.com/SergioXp/holostack/internal/core/domain"
)

// TargetService manages stored hydration targets.
type TargetService interface {
	// Add validates and stores a new target, assigning an ID if empty.
	Add(ctx context.Context, name string, filter domain.Filter) (*domain.Target, error)

	// Get retrieves a target by ID.
	Get(ctx context.Context, id string) (*domain.Target, error)

	// List returns all targets.
	List(ctx context.Context) ([]domain.Target, error)

	// Remove deletes a target. Hydrated cards are kept.
	Remove(ctx context.Context, id string) error
}
