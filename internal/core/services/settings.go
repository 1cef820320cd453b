package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/SergioXp/holostack/internal/core/domain"
	"github.com/SergioXp/holostack/internal/core/ports/driven"
	"github.com/SergioXp/holostack/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyCatalogBaseURL  = "catalog.base_url"
	keyCatalogLanguage = "catalog.language"
	keyCatalogRate     = "catalog.requests_per_second"
	keyCatalogTimeout  = "catalog.timeout_seconds"
	keyCatalogRetries  = "catalog.max_retries"
	keyCatalogCache    = "catalog.cache_size"
	keyBatchSize       = "hydration.batch_size"
	keyDataDir         = "storage.data_dir"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings, falling back to defaults
// for anything unset or invalid.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	timeout := defaults.Catalog.Timeout
	if secs := s.configStore.GetInt(keyCatalogTimeout); secs > 0 {
		timeout = time.Duration(secs) * time.Second
	}

	settings := &domain.AppSettings{
		Catalog: domain.CatalogSettings{
			BaseURL:           s.getString(keyCatalogBaseURL, defaults.Catalog.BaseURL),
			Language:          s.getString(keyCatalogLanguage, defaults.Catalog.Language),
			RequestsPerSecond: s.getFloat(keyCatalogRate, defaults.Catalog.RequestsPerSecond),
			Timeout:           timeout,
			MaxRetries:        s.getCount(keyCatalogRetries, defaults.Catalog.MaxRetries),
			CacheSize:         s.getInt(keyCatalogCache, defaults.Catalog.CacheSize),
		},
		Hydration: domain.HydrationSettings{
			BatchSize: s.getInt(keyBatchSize, defaults.Hydration.BatchSize),
		},
		Storage: domain.StorageSettings{
			DataDir: s.configStore.GetString(keyDataDir), // No default - empty means ~/.holostack/data
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyCatalogBaseURL, settings.Catalog.BaseURL},
		{keyCatalogLanguage, settings.Catalog.Language},
		{keyCatalogRate, settings.Catalog.RequestsPerSecond},
		{keyCatalogTimeout, int(settings.Catalog.Timeout / time.Second)},
		{keyCatalogRetries, settings.Catalog.MaxRetries},
		{keyCatalogCache, settings.Catalog.CacheSize},
		{keyBatchSize, settings.Hydration.BatchSize},
		{keyDataDir, settings.Storage.DataDir},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set updates a single setting, converting the value to the key's type.
func (s *SettingsService) Set(key, value string) error {
	var typed any
	switch key {
	case keyCatalogBaseURL, keyCatalogLanguage, keyDataDir:
		typed = value
	case keyCatalogRate:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("%w: %s must be a positive number", domain.ErrInvalidInput, key)
		}
		typed = f
	case keyCatalogTimeout, keyCatalogRetries, keyCatalogCache, keyBatchSize:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		if key == keyBatchSize && n > MaxBatchSize {
			return fmt.Errorf("%w: %s must be at most %d", domain.ErrInvalidInput, key, MaxBatchSize)
		}
		typed = n
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := s.configStore.Set(key, typed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// SettingKeys lists every key accepted by Set.
func SettingKeys() []string {
	return []string{
		keyCatalogBaseURL,
		keyCatalogLanguage,
		keyCatalogRate,
		keyCatalogTimeout,
		keyCatalogRetries,
		keyCatalogCache,
		keyBatchSize,
		keyDataDir,
	}
}

// getString returns the configured value or the fallback if unset.
func (s *SettingsService) getString(key, fallback string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return fallback
}

// getInt returns the configured value or the fallback if unset or non-positive.
func (s *SettingsService) getInt(key string, fallback int) int {
	if v := s.configStore.GetInt(key); v > 0 {
		return v
	}
	return fallback
}

// getCount is like getInt but accepts an explicit zero.
func (s *SettingsService) getCount(key string, fallback int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return fallback
	}
	if v := s.configStore.GetInt(key); v >= 0 {
		return v
	}
	return fallback
}

// getFloat returns the configured value or the fallback if unset or non-positive.
func (s *SettingsService) getFloat(key string, fallback float64) float64 {
	if v := s.configStore.GetFloat(key); v > 0 {
		return v
	}
	return fallback
}
