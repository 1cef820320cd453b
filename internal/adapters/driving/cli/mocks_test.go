package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/SergioXp/holostack/internal/core/domain"
	"github.com/SergioXp/holostack/internal/core/ports/driving"
)

// mockHydrationService replays canned events and records what it was asked.
type mockHydrationService struct {
	events []domain.ProgressEvent

	targetIDs []string
	filters   []domain.Filter
}

func (m *mockHydrationService) stream() <-chan domain.ProgressEvent {
	ch := make(chan domain.ProgressEvent, len(m.events))
	for _, ev := range m.events {
		ch <- ev
	}
	close(ch)
	return ch
}

func (m *mockHydrationService) Hydrate(_ context.Context, targetID string) <-chan domain.ProgressEvent {
	m.targetIDs = append(m.targetIDs, targetID)
	return m.stream()
}

func (m *mockHydrationService) HydrateFilter(_ context.Context, filter domain.Filter) <-chan domain.ProgressEvent {
	m.filters = append(m.filters, filter)
	return m.stream()
}

func (m *mockHydrationService) Status(_ context.Context, key string) (*driving.HydrationStatus, error) {
	return &driving.HydrationStatus{FilterKey: key}, nil
}

type mockTargetService struct {
	targets   map[string]*domain.Target
	addErr    error
	removeErr error

	addedNames   []string
	addedFilters []domain.Filter
	removed      []string
}

func newMockTargetService(targets ...domain.Target) *mockTargetService {
	m := &mockTargetService{targets: make(map[string]*domain.Target)}
	for i := range targets {
		t := targets[i]
		m.targets[t.ID] = &t
	}
	return m
}

func (m *mockTargetService) Add(_ context.Context, name string, filter domain.Filter) (*domain.Target, error) {
	m.addedNames = append(m.addedNames, name)
	m.addedFilters = append(m.addedFilters, filter)
	if m.addErr != nil {
		return nil, m.addErr
	}
	if name == "" {
		name = filter.String()
	}
	return &domain.Target{ID: "target-new", Name: name, Filter: filter}, nil
}

func (m *mockTargetService) Get(_ context.Context, id string) (*domain.Target, error) {
	t, ok := m.targets[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

func (m *mockTargetService) List(_ context.Context) ([]domain.Target, error) {
	out := make([]domain.Target, 0, len(m.targets))
	for _, t := range m.targets {
		out = append(out, *t)
	}
	return out, nil
}

func (m *mockTargetService) Remove(_ context.Context, id string) error {
	m.removed = append(m.removed, id)
	return m.removeErr
}

type mockSettingsService struct {
	settings domain.AppSettings
	getErr   error
	setErr   error

	setCalls [][2]string
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	m.settings = *settings
	return nil
}

func (m *mockSettingsService) Set(key, value string) error {
	m.setCalls = append(m.setCalls, [2]string{key, value})
	return m.setErr
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// setupServices swaps the package services and resets flag state.
func setupServices(t *testing.T, s Services) {
	t.Helper()

	origHydration := hydrationService
	origTargets := targetService
	origSettings := settingsService
	origDryRun := dryRunHydration

	SetServices(s)
	resetFlags()

	t.Cleanup(func() {
		hydrationService = origHydration
		targetService = origTargets
		settingsService = origSettings
		dryRunHydration = origDryRun
		resetFlags()
	})
}

func resetFlags() {
	hydrateFilter.reset()
	targetFilter.reset()
	hydrateDryRun = false
	hydratePlain = false
	verbose = false
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func completeEvents(processed int) []domain.ProgressEvent {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return []domain.ProgressEvent{
		{Kind: domain.EventStarting, Stage: domain.StageStarting, Message: "Starting hydration", At: now},
		{Kind: domain.EventProgress, Stage: domain.StageFetching, Message: "Fetching set swsh3", At: now},
		{
			Kind: domain.EventProgress, Stage: domain.StagePersisting, Message: "Saving cards",
			Current: 1, Total: processed, At: now,
		},
		{
			Kind: domain.EventComplete, Stage: domain.StageComplete,
			Message:   "Hydrated cards",
			Processed: processed, Matched: processed, At: now,
		},
	}
}
