// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage at ~/.holostack/config.toml
//
// Keys are addressed with dot notation and written back as nested TOML
// tables, so "catalog.base_url" lives under [catalog].
package file
