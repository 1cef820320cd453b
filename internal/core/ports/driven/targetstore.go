package driven

import (
	"context"
	"time"

	"github.com/SergioXp/holostack/internal/core/domain"
)

// TargetStore persists hydration targets.
type TargetStore interface {
	// Save stores or updates a target.
	Save(ctx context.Context, target domain.Target) error

	// Get retrieves a target by ID.
	Get(ctx context.Context, id string) (*domain.Target, error)

	// List returns all targets.
	List(ctx context.Context) ([]domain.Target, error)

	// Delete removes a target.
	Delete(ctx context.Context, id string) error

	// MarkHydrated records a completed hydration.
	MarkHydrated(ctx context.Context, id string, at time.Time) error
}
