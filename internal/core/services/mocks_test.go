package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/SergioXp/holostack/internal/adapters/driven/storage/memory"
	"github.com/SergioXp/holostack/internal/core/domain"
	"github.com/SergioXp/holostack/internal/core/ports/driven"
)

// --- Shared hydration test doubles ---

// hydrateMockCatalog implements driven.CatalogClient from fixed fixtures.
type hydrateMockCatalog struct {
	mu sync.Mutex

	sets       map[string]*domain.Set
	allSets    []domain.Set
	cards      map[string]domain.Card
	byName     map[string][]domain.CardBrief
	byRarity   map[string][]domain.CardBrief
	byCategory map[string][]domain.CardBrief

	fetchSetErr   error
	fetchCardsErr error
	searchErr     error

	// gate, when set, blocks FetchSet until closed or ctx is done.
	// entered receives once per blocked call.
	gate    chan struct{}
	entered chan struct{}

	fetchSetCalls   []string
	fetchSetsCalls  int
	fetchCardsCalls [][]string
	nameCalls       []string
	rarityCalls     []string
	categoryCalls   []string
}

var _ driven.CatalogClient = (*hydrateMockCatalog)(nil)

func newHydrateMockCatalog() *hydrateMockCatalog {
	return &hydrateMockCatalog{
		sets:       make(map[string]*domain.Set),
		cards:      make(map[string]domain.Card),
		byName:     make(map[string][]domain.CardBrief),
		byRarity:   make(map[string][]domain.CardBrief),
		byCategory: make(map[string][]domain.CardBrief),
	}
}

// addSet registers a set and its cards; the set's brief listing is derived from cards.
func (m *hydrateMockCatalog) addSet(set domain.Set, cards ...domain.Card) {
	set.Cards = nil
	for _, c := range cards {
		c.Set = set.Ref()
		m.cards[c.ID] = c
		set.Cards = append(set.Cards, domain.CardBrief{ID: c.ID, LocalID: c.LocalID, Name: c.Name})
	}
	m.sets[set.ID] = &set
	listed := set
	listed.Cards = nil
	m.allSets = append(m.allSets, listed)
}

func (m *hydrateMockCatalog) FetchSet(ctx context.Context, id string) (*domain.Set, error) {
	m.mu.Lock()
	m.fetchSetCalls = append(m.fetchSetCalls, id)
	gate, entered := m.gate, m.entered
	m.mu.Unlock()

	if gate != nil {
		if entered != nil {
			entered <- struct{}{}
		}
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if m.fetchSetErr != nil {
		return nil, m.fetchSetErr
	}
	set, ok := m.sets[id]
	if !ok {
		return nil, fmt.Errorf("set %s: %w", id, domain.ErrNotFound)
	}
	cp := *set
	cp.Cards = append([]domain.CardBrief(nil), set.Cards...)
	return &cp, nil
}

func (m *hydrateMockCatalog) FetchSets(_ context.Context, includeCards bool) ([]domain.Set, error) {
	m.mu.Lock()
	m.fetchSetsCalls++
	m.mu.Unlock()

	out := make([]domain.Set, 0, len(m.allSets))
	for _, s := range m.allSets {
		if includeCards {
			s.Cards = m.sets[s.ID].Cards
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *hydrateMockCatalog) FetchCards(_ context.Context, ids []string) ([]domain.Card, error) {
	m.mu.Lock()
	m.fetchCardsCalls = append(m.fetchCardsCalls, append([]string(nil), ids...))
	m.mu.Unlock()

	if m.fetchCardsErr != nil {
		return nil, m.fetchCardsErr
	}
	out := make([]domain.Card, 0, len(ids))
	for _, id := range ids {
		if c, ok := m.cards[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *hydrateMockCatalog) SearchByName(_ context.Context, name string) ([]domain.CardBrief, error) {
	m.mu.Lock()
	m.nameCalls = append(m.nameCalls, name)
	m.mu.Unlock()
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.byName[name], nil
}

func (m *hydrateMockCatalog) SearchByRarity(_ context.Context, rarity string) ([]domain.CardBrief, error) {
	m.mu.Lock()
	m.rarityCalls = append(m.rarityCalls, rarity)
	m.mu.Unlock()
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.byRarity[rarity], nil
}

func (m *hydrateMockCatalog) SearchByCategory(_ context.Context, category string) ([]domain.CardBrief, error) {
	m.mu.Lock()
	m.categoryCalls = append(m.categoryCalls, category)
	m.mu.Unlock()
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.byCategory[category], nil
}

// totalCalls counts every catalog request made.
func (m *hydrateMockCatalog) totalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.fetchSetCalls) + m.fetchSetsCalls + len(m.fetchCardsCalls) +
		len(m.nameCalls) + len(m.rarityCalls) + len(m.categoryCalls)
}

func (m *hydrateMockCatalog) fetchedIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for _, call := range m.fetchCardsCalls {
		ids = append(ids, call...)
	}
	return ids
}

// hydrateRecordingStore wraps the memory card store, recording writes and
// optionally failing existence checks.
type hydrateRecordingStore struct {
	*memory.CardStore

	mu             sync.Mutex
	lookupCalls    int
	lookupSizes    []int
	failLookups    map[int]bool // 1-based call numbers that fail
	upsertCardErr  error
	setUpserts     []domain.Set
	cardUpsertsIDs []string
}

var _ driven.CardStore = (*hydrateRecordingStore)(nil)

func newHydrateRecordingStore() *hydrateRecordingStore {
	return &hydrateRecordingStore{
		CardStore:   memory.NewCardStore(),
		failLookups: make(map[int]bool),
	}
}

func (s *hydrateRecordingStore) ExistingIDs(ctx context.Context, ids []string) (map[string]struct{}, error) {
	s.mu.Lock()
	s.lookupCalls++
	call := s.lookupCalls
	s.lookupSizes = append(s.lookupSizes, len(ids))
	fail := s.failLookups[call]
	s.mu.Unlock()

	if fail {
		return nil, errors.New("database is locked")
	}
	return s.CardStore.ExistingIDs(ctx, ids)
}

func (s *hydrateRecordingStore) UpsertSet(ctx context.Context, set domain.Set) error {
	s.mu.Lock()
	s.setUpserts = append(s.setUpserts, set)
	s.mu.Unlock()
	return s.CardStore.UpsertSet(ctx, set)
}

func (s *hydrateRecordingStore) UpsertCard(ctx context.Context, card domain.Card) error {
	if s.upsertCardErr != nil {
		return s.upsertCardErr
	}
	s.mu.Lock()
	s.cardUpsertsIDs = append(s.cardUpsertsIDs, card.ID)
	s.mu.Unlock()
	return s.CardStore.UpsertCard(ctx, card)
}

// seed stores cards directly, bypassing the recorder.
func (s *hydrateRecordingStore) seed(t *testing.T, cards ...domain.Card) {
	t.Helper()
	for _, c := range cards {
		require.NoError(t, s.CardStore.UpsertCard(context.Background(), c))
	}
}

// --- Fixtures ---

func makeCards(setID string, n int, rarity string) []domain.Card {
	cards := make([]domain.Card, n)
	for i := range cards {
		cards[i] = domain.Card{
			ID:       fmt.Sprintf("%s-%d", setID, i+1),
			LocalID:  fmt.Sprint(i + 1),
			Name:     fmt.Sprintf("Card %d", i+1),
			Category: "Pokemon",
			Rarity:   rarity,
			Set:      domain.SetRef{ID: setID},
		}
	}
	return cards
}

func makeBriefs(prefix string, n int) []domain.CardBrief {
	briefs := make([]domain.CardBrief, n)
	for i := range briefs {
		briefs[i] = domain.CardBrief{ID: fmt.Sprintf("%s-%d", prefix, i+1)}
	}
	return briefs
}

// collectEvents drains a progress stream, failing the test if it stalls.
func collectEvents(t *testing.T, events <-chan domain.ProgressEvent) []domain.ProgressEvent {
	t.Helper()
	var out []domain.ProgressEvent
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return out
			}
			out = append(out, ev)
		case <-time.After(5 * time.Second):
			t.Fatalf("progress stream stalled after %d events", len(out))
			return out
		}
	}
}

// requireTerminal asserts the stream ended with exactly one terminal event and returns it.
func requireTerminal(t *testing.T, events []domain.ProgressEvent) domain.ProgressEvent {
	t.Helper()
	require.NotEmpty(t, events)

	terminals := 0
	for _, ev := range events {
		if ev.Kind.IsTerminal() {
			terminals++
		}
	}
	require.Equal(t, 1, terminals, "exactly one terminal event")

	last := events[len(events)-1]
	require.True(t, last.Kind.IsTerminal(), "terminal event must be last")
	return last
}

// messagesWithPrefix returns progress messages that start with prefix.
func messagesWithPrefix(events []domain.ProgressEvent, prefix string) []string {
	var out []string
	for _, ev := range events {
		if ev.Kind == domain.EventProgress && len(ev.Message) >= len(prefix) && ev.Message[:len(prefix)] == prefix {
			out = append(out, ev.Message)
		}
	}
	return out
}

func sortedCopy(ids []string) []string {
	out := append([]string(nil), ids...)
	sort.Strings(out)
	return out
}
