package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Hydration Errors.

	// ErrInvalidFilter indicates a filter has no field that can drive acquisition.
	// Raised before any catalog call is made.
	ErrInvalidFilter = errors.New("no valid filter: set id, series, name, rarity or category required")

	// ErrUpstream indicates a catalog call failed and the hydration was aborted.
	// Cards persisted before the failure are kept.
	ErrUpstream = errors.New("catalog request failed")

	// ErrStoreLookupDegraded indicates a batched existence check failed.
	// The hydration recovers by treating the batch as missing.
	ErrStoreLookupDegraded = errors.New("store lookup degraded")

	// ErrHydrationInProgress indicates a hydration for the same filter is already running.
	ErrHydrationInProgress = errors.New("hydration in progress")

	// ErrRateLimited indicates the catalog rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
