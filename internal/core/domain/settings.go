package domain

import "time"

// CatalogSettings holds catalog client configuration.
type CatalogSettings struct {
	// BaseURL is the catalog API root.
	BaseURL string

	// Language is the catalog locale segment (e.g. "en").
	Language string

	// RequestsPerSecond is the proactive throttle rate.
	RequestsPerSecond float64

	// Timeout bounds a single HTTP request.
	Timeout time.Duration

	// MaxRetries is the number of retries for transient failures.
	MaxRetries int

	// CacheSize is the number of catalog responses kept in memory.
	CacheSize int
}

// HydrationSettings holds hydration engine configuration.
type HydrationSettings struct {
	// BatchSize is the number of ids per existence check.
	// Bounded by the store's bound-parameter limit.
	BatchSize int
}

// StorageSettings holds local store configuration.
type StorageSettings struct {
	// DataDir is where the SQLite database lives. Empty means the default.
	DataDir string
}

// AppSettings holds all application settings.
type AppSettings struct {
	Catalog   CatalogSettings
	Hydration HydrationSettings
	Storage   StorageSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Catalog: CatalogSettings{
			BaseURL:           "https://api.tcgdex.net/v2",
			Language:          "en",
			RequestsPerSecond: 5,
			Timeout:           30 * time.Second,
			MaxRetries:        3,
			CacheSize:         1024,
		},
		Hydration: HydrationSettings{
			BatchSize: 500,
		},
	}
}
