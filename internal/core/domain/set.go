package domain

import (
	"strings"
	"time"
)

// UnknownSeries marks a set whose series was not known when it was stored.
// It distinguishes "not yet enriched" from a legitimately empty series.
const UnknownSeries = "Unknown"

// SetRef is the parent-set reference embedded on a detailed card.
type SetRef struct {
	ID     string
	Name   string
	Logo   string
	Symbol string

	CardCountOfficial int
	CardCountTotal    int
}

// Set is the grouping entity a card belongs to.
type Set struct {
	// ID is the catalog's set identifier.
	ID string

	// Name is the set's display name.
	Name string

	// Series is the name of the series the set belongs to.
	// UnknownSeries when the set was synthesized from a card or the catalog
	// omitted it.
	Series string

	// CardCountOfficial is the printed set size.
	CardCountOfficial int

	// CardCountTotal includes secret rares and other extras.
	CardCountTotal int

	// ReleaseDate is the upstream release date (YYYY-MM-DD), if known.
	ReleaseDate string

	// Symbol and Logo are image asset URLs.
	Symbol string
	Logo   string

	// Partial indicates the metadata was synthesized from a card's embedded
	// set reference rather than fetched from the catalog.
	Partial bool

	// Cards is the embedded brief listing, populated only by set lookups.
	// It is never persisted.
	Cards []CardBrief

	// SyncedAt is refreshed every time the set is upserted.
	SyncedAt time.Time
}

// SetFromRef synthesizes partial set metadata from a card's embedded reference.
// Fields the reference cannot provide are marked with explicit placeholders.
func SetFromRef(ref SetRef) Set {
	name := strings.TrimSpace(ref.Name)
	if name == "" {
		name = ref.ID
	}
	return Set{
		ID:                ref.ID,
		Name:              name,
		Series:            UnknownSeries,
		CardCountOfficial: ref.CardCountOfficial,
		CardCountTotal:    ref.CardCountTotal,
		Symbol:            ref.Symbol,
		Logo:              ref.Logo,
		Partial:           true,
	}
}

// Ref returns the set's embeddable reference.
func (s *Set) Ref() SetRef {
	return SetRef{
		ID:                s.ID,
		Name:              s.Name,
		Logo:              s.Logo,
		Symbol:            s.Symbol,
		CardCountOfficial: s.CardCountOfficial,
		CardCountTotal:    s.CardCountTotal,
	}
}
