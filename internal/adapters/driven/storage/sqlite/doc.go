// Package sqlite provides a SQLite-based implementation of the card and
// target store ports.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements multiple store interfaces
// through a single database connection:
//
//   - CardStore: Card and set persistence
//   - TargetStore: Hydration target persistence
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Partial Sets
//
// A set synthesized from a card's embedded reference is stored with
// partial = 1 and the series "Unknown". Upserting a partial set over an
// existing row refreshes only its name, logo and symbol, so a set enriched
// by a full catalog lookup is never downgraded.
//
// # Data Location
//
// By default, the database is stored at ~/.holostack/data/cards.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
