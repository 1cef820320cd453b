package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SergioXp/holostack/internal/core/domain"
	"github.com/SergioXp/holostack/internal/core/ports/driven"
	"github.com/SergioXp/holostack/internal/core/ports/driving"
	"github.com/SergioXp/holostack/internal/logger"
)

const (
	// eventBuffer is the progress channel capacity.
	eventBuffer = 32

	// saveProgressEvery is how many upserted cards pass between progress events.
	saveProgressEvery = 10
)

// Ensure HydrationService implements the interface.
var _ driving.HydrationService = (*HydrationService)(nil)

// HydrationService loads the catalog cards a filter selects into the store.
//
// Each hydration runs in its own goroutine and proceeds strictly in
// sequence: strategy selection, acquisition, fine filtering, set upsert,
// card upsert. Hydrations for different filters may run concurrently;
// a second hydration for a filter that is already running is rejected.
type HydrationService struct {
	catalog   driven.CatalogClient
	cardStore driven.CardStore
	targets   driven.TargetStore
	batchSize int

	newRunID func() string
	now      func() time.Time

	// Status tracking
	mu     sync.RWMutex
	active map[string]*driving.HydrationStatus
}

// NewHydrationService creates a new hydration service.
// targets may be nil, in which case only HydrateFilter is usable.
func NewHydrationService(
	catalog driven.CatalogClient,
	cardStore driven.CardStore,
	targets driven.TargetStore,
	batchSize int,
) *HydrationService {
	return &HydrationService{
		catalog:   catalog,
		cardStore: cardStore,
		targets:   targets,
		batchSize: batchSize,
		newRunID:  uuid.NewString,
		now:       time.Now,
		active:    make(map[string]*driving.HydrationStatus),
	}
}

// Hydrate resolves a stored target and hydrates its filter. A successful
// run is recorded on the target.
func (s *HydrationService) Hydrate(ctx context.Context, targetID string) <-chan domain.ProgressEvent {
	events := make(chan domain.ProgressEvent, eventBuffer)

	go func() {
		defer close(events)
		rep := newReporter(ctx, s.newRunID(), events, s.now)

		if s.targets == nil {
			rep.start("Starting hydration for target " + targetID)
			rep.fail(fmt.Errorf("resolve target %s: target store not configured", targetID))
			return
		}
		target, err := s.targets.Get(ctx, targetID)
		if err != nil {
			rep.start("Starting hydration for target " + targetID)
			rep.fail(fmt.Errorf("resolve target %s: %w", targetID, err))
			return
		}

		rep.start(fmt.Sprintf("Starting hydration for %s (%s)", target.Name, target.Filter))
		if _, err := s.execute(ctx, target.Filter, rep); err != nil {
			return
		}
		if err := s.targets.MarkHydrated(ctx, target.ID, s.now()); err != nil {
			logger.Warn("Failed to record hydration of target %s: %v", target.ID, err)
		}
	}()

	return events
}

// HydrateFilter hydrates an ad hoc filter.
func (s *HydrationService) HydrateFilter(ctx context.Context, filter domain.Filter) <-chan domain.ProgressEvent {
	events := make(chan domain.ProgressEvent, eventBuffer)

	go func() {
		defer close(events)
		rep := newReporter(ctx, s.newRunID(), events, s.now)
		rep.start("Starting hydration for " + filter.String())
		_, _ = s.execute(ctx, filter, rep)
	}()

	return events
}

// Status returns the status of the hydration for a filter key.
func (s *HydrationService) Status(_ context.Context, filterKey string) (*driving.HydrationStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if status, ok := s.active[filterKey]; ok {
		// Return a copy to avoid race conditions
		cp := *status
		return &cp, nil
	}

	// Not running - return idle status
	return &driving.HydrationStatus{
		FilterKey: filterKey,
		Running:   false,
	}, nil
}

// execute runs the pipeline and emits exactly one terminal event.
//
//nolint:gocyclo // Pipeline orchestration with sequential steps
func (s *HydrationService) execute(
	ctx context.Context,
	filter domain.Filter,
	rep *reporter,
) (*domain.HydrationResult, error) {
	filter = filter.Normalize()

	// 1. SELECT STRATEGY (no network before this succeeds)
	kind, err := SelectStrategy(filter)
	if err != nil {
		rep.fail(err)
		return nil, err
	}
	strat, err := newStrategy(kind, &acquirer{
		catalog: s.catalog,
		store:   s.cardStore,
		dedup:   NewDeduper(s.cardStore, s.batchSize),
	})
	if err != nil {
		rep.fail(err)
		return nil, err
	}

	// 2. CLAIM FILTER
	key := filter.Key()
	if !s.begin(key, rep.runID) {
		err := fmt.Errorf("%w: %s", domain.ErrHydrationInProgress, filter)
		rep.fail(err)
		return nil, err
	}
	defer s.end(key)
	rep.observe = func(ev domain.ProgressEvent) { s.observe(key, ev) }

	result := &domain.HydrationResult{RunID: rep.runID, Strategy: strat.kind()}
	logger.Section("Hydration " + rep.runID)
	logger.Info("Hydrating %s using %s strategy", filter, kind)

	// 3. ACQUIRE
	rep.advance(domain.StageFetching, fmt.Sprintf("Fetching cards by %s", kind))
	acq, err := strat.acquire(ctx, filter, rep.progress)
	if err != nil {
		rep.fail(err)
		return nil, err
	}
	result.Candidates = acq.candidates
	result.AlreadyStored = acq.stored
	result.Degraded = acq.degraded
	result.Fetched = len(acq.cards)

	if len(acq.cards) == 0 {
		msg := "No cards found"
		if acq.candidates > 0 && acq.stored == acq.candidates {
			msg = fmt.Sprintf("All %d cards already stored", acq.candidates)
		}
		rep.complete(result, msg)
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		rep.fail(err)
		return nil, err
	}

	// 4. FILTER
	rep.advance(domain.StageFiltering, fmt.Sprintf("Filtering %d cards", len(acq.cards)))
	matched := Narrow(acq.cards, filter)
	result.Matched = len(matched)
	logger.Debug("Fine filter kept %d of %d cards", len(matched), len(acq.cards))

	if len(matched) == 0 {
		rep.complete(result, fmt.Sprintf("No cards matched the filter (%d fetched)", len(acq.cards)))
		return result, nil
	}

	// 5. ENSURE SETS
	rep.advance(domain.StagePersisting, fmt.Sprintf("Saving %d cards", len(matched)))
	if _, err := ensureSets(ctx, s.cardStore, matched, acq.sets); err != nil {
		rep.fail(err)
		return nil, err
	}

	// 6. UPSERT CARDS
	for i := range matched {
		if err := ctx.Err(); err != nil {
			rep.fail(err)
			return nil, err
		}
		card := matched[i]
		card.SyncedAt = s.now().UTC()
		if err := s.cardStore.UpsertCard(ctx, card); err != nil {
			err = fmt.Errorf("save card %s: %w", card.ID, err)
			rep.fail(err)
			return nil, err
		}
		result.Processed++
		if result.Processed%saveProgressEvery == 0 {
			rep.progress(fmt.Sprintf("Saved %d/%d cards", result.Processed, len(matched)),
				result.Processed, len(matched))
		}
	}

	logger.Info("Hydration complete: %d candidates, %d stored, %d fetched, %d saved",
		result.Candidates, result.AlreadyStored, result.Fetched, result.Processed)
	rep.complete(result, fmt.Sprintf("Hydrated %d cards", result.Processed))
	return result, nil
}

// begin claims a filter key. Returns false if it is already running.
func (s *HydrationService) begin(key, runID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, running := s.active[key]; running {
		return false
	}
	s.active[key] = &driving.HydrationStatus{
		FilterKey: key,
		RunID:     runID,
		Running:   true,
		Stage:     domain.StageStarting,
	}
	return true
}

// end releases a filter key.
func (s *HydrationService) end(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, key)
}

// observe mirrors emitted events into the status map.
func (s *HydrationService) observe(key string, ev domain.ProgressEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	status, ok := s.active[key]
	if !ok {
		return
	}
	status.Stage = ev.Stage
	if ev.Stage == domain.StagePersisting && ev.Current > 0 {
		status.CardsProcessed = ev.Current
	}
	if ev.Kind.IsTerminal() {
		status.Running = false
		status.CardsProcessed = ev.Processed
	}
}
