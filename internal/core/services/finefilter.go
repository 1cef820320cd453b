package services

import (
	"strings"

	"github.com/SergioXp/holostack/internal/core/domain"
)

// Narrow re-validates fetched cards against the whole filter, since most
// strategies over-fetch. Every applicable check must pass; order is kept.
//
// Series is not checked here: only the series strategy acquires by
// series, and it already visits matching sets only.
func Narrow(cards []domain.Card, filter domain.Filter) []domain.Card {
	f := filter.Normalize()
	names := lowerAll(f.NameTerms())
	rarities := lowerAll(f.Rarities)

	out := make([]domain.Card, 0, len(cards))
	for i := range cards {
		c := &cards[i]
		if len(names) > 0 && !containsAny(strings.ToLower(c.Name), names) {
			continue
		}
		// Rarity matching is approximate on purpose: "Rare" also matches
		// "Ultra Rare" and "Rare Holo" to absorb upstream label variants.
		if len(rarities) > 0 && !containsAny(strings.ToLower(c.Rarity), rarities) {
			continue
		}
		if f.Category != "" && !strings.EqualFold(c.Category, f.Category) {
			continue
		}
		if len(f.Types) > 0 && !hasAnyType(c, f.Types) {
			continue
		}
		out = append(out, *c)
	}
	return out
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func hasAnyType(c *domain.Card, types []string) bool {
	for _, t := range types {
		if c.HasType(t) {
			return true
		}
	}
	return false
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}
