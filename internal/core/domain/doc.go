// Package domain defines the core business entities for HoloStack.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Card: A fully detailed catalog card, ready to persist
//   - CardBrief: A lightweight card reference returned by catalog listings
//   - Set: The grouping entity a card belongs to
//   - Filter: The declarative description of which cards are wanted
//   - Target: A stored, named filter that can be hydrated on demand
//   - ProgressEvent: One message of a hydration's progress stream
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
