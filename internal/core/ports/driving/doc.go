// Package driving defines the interfaces the CLI and progress view use to
// interact with core services. These are the "driving" ports in hexagonal
// architecture terminology.
//
// Implementations live in internal/core/services.
package driving
