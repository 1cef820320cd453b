package services

import (
	"context"

	"github.com/SergioXp/holostack/internal/core/domain"
	"github.com/SergioXp/holostack/internal/core/ports/driven"
	"github.com/SergioXp/holostack/internal/logger"
)

const (
	// DefaultBatchSize is the number of ids per existence check.
	DefaultBatchSize = 500

	// MaxBatchSize is SQLite's bound-parameter limit. A larger batch makes
	// every existence check fail.
	MaxBatchSize = 32766
)

// Partition is the outcome of a dedup pass.
type Partition struct {
	// Needed are the briefs not yet stored, in input order.
	Needed []domain.CardBrief

	// Stored is the number of briefs found in the store.
	Stored int

	// Lookups is the number of existence checks issued.
	Lookups int

	// Degraded is the number of checks that failed and were treated as
	// entirely missing.
	Degraded int
}

// Deduper drops candidates the store already holds.
type Deduper struct {
	store     driven.CardStore
	batchSize int
}

// NewDeduper creates a deduper. A non-positive batchSize selects
// DefaultBatchSize; anything above MaxBatchSize is clamped to it.
func NewDeduper(store driven.CardStore, batchSize int) *Deduper {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if batchSize > MaxBatchSize {
		batchSize = MaxBatchSize
	}
	return &Deduper{store: store, batchSize: batchSize}
}

// PartitionNeeded returns the briefs that are not stored yet.
//
// A failed batch is logged and its briefs are kept as needed: a redundant
// re-fetch is preferred over silently skipping a real gap. Only context
// cancellation aborts the pass.
func (d *Deduper) PartitionNeeded(ctx context.Context, briefs []domain.CardBrief) (*Partition, error) {
	p := &Partition{}
	if len(briefs) == 0 {
		return p, nil
	}

	p.Needed = make([]domain.CardBrief, 0, len(briefs))
	for start := 0; start < len(briefs); start += d.batchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		end := min(start+d.batchSize, len(briefs))
		batch := briefs[start:end]

		ids := make([]string, len(batch))
		for i := range batch {
			ids[i] = batch[i].ID
		}

		p.Lookups++
		existing, err := d.store.ExistingIDs(ctx, ids)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			p.Degraded++
			logger.Warn("%v: batch %d (%d ids) treated as missing: %v",
				domain.ErrStoreLookupDegraded, p.Lookups, len(ids), err)
			p.Needed = append(p.Needed, batch...)
			continue
		}

		for _, b := range batch {
			if _, ok := existing[b.ID]; ok {
				p.Stored++
				continue
			}
			p.Needed = append(p.Needed, b)
		}
	}

	logger.Debug("Dedup: %d candidates, %d stored, %d needed", len(briefs), p.Stored, len(p.Needed))
	return p, nil
}
