package services

import (
	"context"
	"fmt"

	"github.com/SergioXp/holostack/internal/core/domain"
	"github.com/SergioXp/holostack/internal/core/ports/driven"
)

// ensureSets makes sure every set referenced by cards exists in the store.
// Sets in persisted were already stored with full metadata during
// acquisition and are skipped; every other set is synthesized from the
// card's embedded reference and stored as partial, which the store never
// lets downgrade richer data. Returns the number of sets upserted.
func ensureSets(
	ctx context.Context,
	store driven.CardStore,
	cards []domain.Card,
	persisted map[string]domain.Set,
) (int, error) {
	seen := make(map[string]struct{}, len(persisted))
	for id := range persisted {
		seen[id] = struct{}{}
	}

	upserted := 0
	for i := range cards {
		ref := cards[i].Set
		if ref.ID == "" {
			continue
		}
		if _, ok := seen[ref.ID]; ok {
			continue
		}
		seen[ref.ID] = struct{}{}

		if err := ctx.Err(); err != nil {
			return upserted, err
		}
		if err := store.UpsertSet(ctx, domain.SetFromRef(ref)); err != nil {
			return upserted, fmt.Errorf("save set %s: %w", ref.ID, err)
		}
		upserted++
	}
	return upserted, nil
}
