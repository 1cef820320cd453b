package driving

import (
	"context"

	"github.com/SergioXp/holostack/internal/core/domain"
)

// HydrationService loads catalog cards into the local store on demand.
type HydrationService interface {
	// Hydrate resolves a stored target to its filter and hydrates it.
	// The returned channel yields progress events in production order and is
	// closed after exactly one terminal (complete or error) event.
	Hydrate(ctx context.Context, targetID string) <-chan domain.ProgressEvent

	// HydrateFilter hydrates an ad hoc filter.
	HydrateFilter(ctx context.Context, filter domain.Filter) <-chan domain.ProgressEvent

	// Status returns the status of the hydration for a filter key.
	Status(ctx context.Context, filterKey string) (*HydrationStatus, error)
}

// HydrationStatus represents the current state of a hydration.
type HydrationStatus struct {
	// FilterKey identifies the hydrated filter.
	FilterKey string

	// RunID identifies the active run. Empty when idle.
	RunID string

	// Running indicates if a hydration is currently in progress.
	Running bool

	// Stage is the active pipeline stage.
	Stage domain.Stage

	// CardsProcessed is the count of cards persisted so far.
	CardsProcessed int
}
