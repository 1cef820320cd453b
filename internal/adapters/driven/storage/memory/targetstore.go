package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/SergioXp/holostack/internal/core/domain"
	"github.com/SergioXp/holostack/internal/core/ports/driven"
)

// Ensure TargetStore implements the interface.
var _ driven.TargetStore = (*TargetStore)(nil)

// TargetStore is an in-memory implementation of driven.TargetStore.
type TargetStore struct {
	mu      sync.RWMutex
	targets map[string]domain.Target
}

// NewTargetStore creates a new in-memory target store.
func NewTargetStore() *TargetStore {
	return &TargetStore{
		targets: make(map[string]domain.Target),
	}
}

// Save stores or updates a target.
func (s *TargetStore) Save(_ context.Context, target domain.Target) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if existing, ok := s.targets[target.ID]; ok {
		target.CreatedAt = existing.CreatedAt
	} else if target.CreatedAt.IsZero() {
		target.CreatedAt = now
	}
	target.UpdatedAt = now
	s.targets[target.ID] = target
	return nil
}

// Get retrieves a target by ID.
func (s *TargetStore) Get(_ context.Context, id string) (*domain.Target, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	target, ok := s.targets[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &target, nil
}

// List returns all targets ordered by creation time.
func (s *TargetStore) List(_ context.Context) ([]domain.Target, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Target, 0, len(s.targets))
	for id := range s.targets {
		result = append(result, s.targets[id])
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// Delete removes a target.
func (s *TargetStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.targets, id)
	return nil
}

// MarkHydrated records a completed hydration.
func (s *TargetStore) MarkHydrated(_ context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	target, ok := s.targets[id]
	if !ok {
		return domain.ErrNotFound
	}
	target.LastHydratedAt = at.UTC()
	s.targets[id] = target
	return nil
}
