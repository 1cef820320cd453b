// Package tcgdex implements the catalog client port against the TCGdex
// REST API (https://api.tcgdex.net/v2/{lang}/...).
//
// Requests are throttled by a token bucket, transient failures (network
// errors, 5xx, 429) are retried with exponential backoff, and set and card
// detail responses are kept in a 2Q LRU cache for the life of the client.
//
// Endpoints used:
//
//   - GET /sets/{id}              set detail with its brief card listing
//   - GET /series                 series listing
//   - GET /series/{id}            series detail with its sets
//   - GET /cards/{id}             card detail
//   - GET /cards?name=|rarity=|category=   brief card search
package tcgdex
