package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SergioXp/holostack/internal/core/domain"
)

func TestSettingsShow_NoService(t *testing.T) {
	setupServices(t, Services{})

	_, err := execute(t, "settings", "show")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings service not configured")
}

func TestSettingsShow_Defaults(t *testing.T) {
	setupServices(t, Services{Settings: &mockSettingsService{settings: domain.DefaultAppSettings()}})

	out, err := execute(t, "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "[Catalog]")
	assert.Contains(t, out, "Base URL: https://api.tcgdex.net/v2")
	assert.Contains(t, out, "Language: en")
	assert.Contains(t, out, "Requests per second: 5")
	assert.Contains(t, out, "Timeout: 30s")
	assert.Contains(t, out, "Max retries: 3")
	assert.Contains(t, out, "Cache size: 1024")
	assert.Contains(t, out, "Batch size: 500")
	assert.Contains(t, out, "Data dir: (default)")
}

func TestSettingsShow_CustomValues(t *testing.T) {
	s := domain.DefaultAppSettings()
	s.Catalog.CacheSize = 0
	s.Catalog.RequestsPerSecond = 2.5
	s.Storage.DataDir = "/srv/cards"
	setupServices(t, Services{Settings: &mockSettingsService{settings: s}})

	out, err := execute(t, "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Cache size: disabled")
	assert.Contains(t, out, "Requests per second: 2.5")
	assert.Contains(t, out, "Data dir: /srv/cards")
}

func TestSettingsShow_Error(t *testing.T) {
	setupServices(t, Services{Settings: &mockSettingsService{getErr: errors.New("corrupt file")}})

	_, err := execute(t, "settings", "show")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get settings: corrupt file")
}

func TestSettingsSet(t *testing.T) {
	svc := &mockSettingsService{}
	setupServices(t, Services{Settings: svc})

	out, err := execute(t, "settings", "set", "catalog.language", "fr")

	require.NoError(t, err)
	assert.Equal(t, [][2]string{{"catalog.language", "fr"}}, svc.setCalls)
	assert.Contains(t, out, "catalog.language set to fr")
}

func TestSettingsSet_InvalidValue(t *testing.T) {
	svc := &mockSettingsService{setErr: domain.ErrInvalidInput}
	setupServices(t, Services{Settings: svc})

	_, err := execute(t, "settings", "set", "hydration.batch_size", "lots")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsSet_RequiresKeyAndValue(t *testing.T) {
	svc := &mockSettingsService{}
	setupServices(t, Services{Settings: svc})

	_, err := execute(t, "settings", "set", "catalog.language")

	require.Error(t, err)
	assert.Empty(t, svc.setCalls)
}
