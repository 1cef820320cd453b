package memory

import (
	"context"
	"sync"
	"time"

	"github.com/SergioXp/holostack/internal/core/domain"
	"github.com/SergioXp/holostack/internal/core/ports/driven"
)

// Ensure CardStore implements the interface.
var _ driven.CardStore = (*CardStore)(nil)

// CardStore is an in-memory implementation of driven.CardStore.
// It applies the same set conflict policy as the SQLite store.
type CardStore struct {
	mu    sync.RWMutex
	cards map[string]domain.Card
	sets  map[string]domain.Set
	now   func() time.Time
}

// NewCardStore creates a new in-memory card store.
func NewCardStore() *CardStore {
	return &CardStore{
		cards: make(map[string]domain.Card),
		sets:  make(map[string]domain.Set),
		now:   time.Now,
	}
}

// ExistingIDs returns the subset of ids already stored.
func (s *CardStore) ExistingIDs(_ context.Context, ids []string) (map[string]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	found := make(map[string]struct{})
	for _, id := range ids {
		if _, ok := s.cards[id]; ok {
			found[id] = struct{}{}
		}
	}
	return found, nil
}

// UpsertSet creates or updates a set.
func (s *CardStore) UpsertSet(_ context.Context, set domain.Set) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set.Cards = nil
	set.SyncedAt = s.now().UTC()
	existing, ok := s.sets[set.ID]
	if ok && set.Partial {
		// Only display fields are refreshed from a synthesized set.
		existing.Name = set.Name
		if set.Logo != "" {
			existing.Logo = set.Logo
		}
		if set.Symbol != "" {
			existing.Symbol = set.Symbol
		}
		existing.SyncedAt = set.SyncedAt
		s.sets[set.ID] = existing
		return nil
	}
	s.sets[set.ID] = set
	return nil
}

// UpsertCard creates or replaces a card.
func (s *CardStore) UpsertCard(_ context.Context, card domain.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	card.SyncedAt = s.now().UTC()
	card.Types = append([]string(nil), card.Types...)
	s.cards[card.ID] = card
	return nil
}

// GetSet retrieves a set by ID.
func (s *CardStore) GetSet(_ context.Context, id string) (*domain.Set, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set, ok := s.sets[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &set, nil
}

// GetCard retrieves a card by ID.
func (s *CardStore) GetCard(_ context.Context, id string) (*domain.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	card, ok := s.cards[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &card, nil
}

// CountCards returns the number of stored cards in a set.
func (s *CardStore) CountCards(_ context.Context, setID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for id := range s.cards {
		if s.cards[id].Set.ID == setID {
			n++
		}
	}
	return n, nil
}

// Len returns the total number of stored cards.
func (s *CardStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cards)
}
