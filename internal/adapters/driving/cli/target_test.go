package cli

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SergioXp/holostack/internal/core/domain"
)

func TestTargetCmd_Subcommands(t *testing.T) {
	names := make([]string, 0, len(targetCmd.Commands()))
	for _, c := range targetCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"add", "list", "remove"}, names)
}

func TestTargetAdd_NoService(t *testing.T) {
	setupServices(t, Services{})

	_, err := execute(t, "target", "add", "--set", "swsh3")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "target service not configured")
}

func TestTargetAdd_WithName(t *testing.T) {
	targets := newMockTargetService()
	setupServices(t, Services{Targets: targets})

	out, err := execute(t, "target", "add", "Darkness Ablaze", "--set", "swsh3", "--type", "Fire")

	require.NoError(t, err)
	assert.Equal(t, []string{"Darkness Ablaze"}, targets.addedNames)
	require.Len(t, targets.addedFilters, 1)
	assert.Equal(t, "swsh3", targets.addedFilters[0].SetID)
	assert.Equal(t, []string{"Fire"}, targets.addedFilters[0].Types)
	assert.Contains(t, out, "Added target target-new")
	assert.Contains(t, out, "Name:   Darkness Ablaze")
}

func TestTargetAdd_DefaultName(t *testing.T) {
	targets := newMockTargetService()
	setupServices(t, Services{Targets: targets})

	out, err := execute(t, "target", "add", "--name", "Pikachu")

	require.NoError(t, err)
	assert.Equal(t, []string{""}, targets.addedNames)
	assert.Equal(t, "Pikachu", targets.addedFilters[0].Name)
	assert.Contains(t, out, "Name:   name Pikachu")
}

func TestTargetAdd_InvalidFilter(t *testing.T) {
	targets := newMockTargetService()
	targets.addErr = domain.ErrInvalidFilter
	setupServices(t, Services{Targets: targets})

	_, err := execute(t, "target", "add", "Empty")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidFilter)
}

func TestTargetList_Empty(t *testing.T) {
	setupServices(t, Services{Targets: newMockTargetService()})

	out, err := execute(t, "target", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No targets stored.")
}

func TestTargetList_ShowsHydration(t *testing.T) {
	setupServices(t, Services{Targets: newMockTargetService(
		domain.Target{ID: "t-1", Name: "Darkness Ablaze", Filter: domain.Filter{SetID: "swsh3"}},
		domain.Target{
			ID: "t-2", Name: "Pikachus", Filter: domain.Filter{Name: "Pikachu"},
			LastHydratedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		},
	)})

	out, err := execute(t, "target", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "t-1  Darkness Ablaze")
	assert.Contains(t, out, "Filter:        set swsh3")
	assert.Contains(t, out, "Last hydrated: never")
	assert.Contains(t, out, "t-2  Pikachus")
	assert.Contains(t, out, "2024-05-01")
}

func TestTargetRemove(t *testing.T) {
	targets := newMockTargetService()
	setupServices(t, Services{Targets: targets})

	out, err := execute(t, "target", "remove", "t-1")

	require.NoError(t, err)
	assert.Equal(t, []string{"t-1"}, targets.removed)
	assert.Contains(t, out, "Removed target t-1")
}

func TestTargetRemove_RequiresID(t *testing.T) {
	targets := newMockTargetService()
	setupServices(t, Services{Targets: targets})

	_, err := execute(t, "target", "remove")

	require.Error(t, err)
	assert.Empty(t, targets.removed)
}

func TestTargetRemove_Error(t *testing.T) {
	targets := newMockTargetService()
	targets.removeErr = errors.New("db locked")
	setupServices(t, Services{Targets: targets})

	_, err := execute(t, "target", "remove", "t-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to remove target: db locked")
}
