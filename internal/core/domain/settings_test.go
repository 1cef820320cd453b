package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, "https://api.tcgdex.net/v2", s.Catalog.BaseURL)
	assert.Equal(t, "en", s.Catalog.Language)
	assert.Equal(t, 30*time.Second, s.Catalog.Timeout)
	assert.Greater(t, s.Catalog.RequestsPerSecond, 0.0)
	assert.Equal(t, 500, s.Hydration.BatchSize)
	assert.Empty(t, s.Storage.DataDir)
}
