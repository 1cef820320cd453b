// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The hydration pipeline lives here: strategy selection, acquisition,
// dedup against the store, fine filtering, set upsert and card upsert,
// reported as an ordered stream of progress events.
package services
