package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/SergioXp/holostack/internal/core/domain"
	"github.com/SergioXp/holostack/internal/core/ports/driven"
	"github.com/SergioXp/holostack/internal/core/ports/driving"
)

// Ensure TargetService implements the interface.
var _ driving.TargetService = (*TargetService)(nil)

// TargetService manages stored hydration targets.
type TargetService struct {
	store driven.TargetStore
}

// NewTargetService creates a new target service.
func NewTargetService(store driven.TargetStore) *TargetService {
	return &TargetService{store: store}
}

// Add validates the filter and stores a new target.
func (s *TargetService) Add(ctx context.Context, name string, filter domain.Filter) (*domain.Target, error) {
	filter = filter.Normalize()
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = filter.String()
	}

	target := domain.Target{
		ID:     uuid.NewString(),
		Name:   name,
		Filter: filter,
	}
	if err := s.store.Save(ctx, target); err != nil {
		return nil, fmt.Errorf("save target: %w", err)
	}

	// Re-read so timestamps assigned by the store are returned.
	return s.store.Get(ctx, target.ID)
}

// Get retrieves a target by ID.
func (s *TargetService) Get(ctx context.Context, id string) (*domain.Target, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.store.Get(ctx, id)
}

// List returns all targets.
func (s *TargetService) List(ctx context.Context) ([]domain.Target, error) {
	return s.store.List(ctx)
}

// Remove deletes a target. Cards it hydrated stay in the store.
func (s *TargetService) Remove(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	if _, err := s.store.Get(ctx, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}
