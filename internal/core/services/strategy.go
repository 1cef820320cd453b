package services

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/SergioXp/holostack/internal/core/domain"
	"github.com/SergioXp/holostack/internal/core/ports/driven"
	"github.com/SergioXp/holostack/internal/logger"
)

// nameProgressEvery is how many names the names strategy searches between
// progress events.
const nameProgressEvery = 5

// SelectStrategy picks the acquisition strategy for a filter. Fields are
// inspected in fixed priority: set id, series, names, name, then rarity or
// category. Lower-priority fields do not affect routing; they are applied
// later by Narrow.
func SelectStrategy(filter domain.Filter) (domain.StrategyKind, error) {
	f := filter.Normalize()
	switch {
	case f.SetID != "":
		return domain.StrategySet, nil
	case len(f.Series) > 0:
		return domain.StrategySeries, nil
	case len(f.Names) > 0:
		return domain.StrategyNames, nil
	case f.Name != "":
		return domain.StrategyName, nil
	case len(f.Rarities) > 0, f.Category != "":
		return domain.StrategyAttribute, nil
	default:
		return "", domain.ErrInvalidFilter
	}
}

// acquisition accumulates what a strategy gathered.
type acquisition struct {
	// cards are the fully detailed candidates, in acquisition order.
	cards []domain.Card

	// sets are the sets fetched and persisted with full metadata.
	sets map[string]domain.Set

	candidates int
	stored     int
	degraded   int
}

func newAcquisition() *acquisition {
	return &acquisition{sets: make(map[string]domain.Set)}
}

// strategy is one acquisition path.
type strategy interface {
	kind() domain.StrategyKind
	acquire(ctx context.Context, filter domain.Filter, report progressFunc) (*acquisition, error)
}

// acquirer holds what every strategy shares.
type acquirer struct {
	catalog driven.CatalogClient
	store   driven.CardStore
	dedup   *Deduper
}

// newStrategy returns the strategy implementation for a kind.
func newStrategy(kind domain.StrategyKind, a *acquirer) (strategy, error) {
	switch kind {
	case domain.StrategySet:
		return &setStrategy{a}, nil
	case domain.StrategySeries:
		return &seriesStrategy{a}, nil
	case domain.StrategyNames:
		return &namesStrategy{a}, nil
	case domain.StrategyName:
		return &nameStrategy{a}, nil
	case domain.StrategyAttribute:
		return &attributeStrategy{a}, nil
	default:
		return nil, fmt.Errorf("%w: unknown strategy %q", domain.ErrInvalidInput, kind)
	}
}

// collect dedups briefs and fetches full detail for those still needed.
func (a *acquirer) collect(ctx context.Context, briefs []domain.CardBrief, acc *acquisition) error {
	p, err := a.dedup.PartitionNeeded(ctx, briefs)
	if err != nil {
		return err
	}
	acc.candidates += len(briefs)
	acc.stored += p.Stored
	acc.degraded += p.Degraded

	if len(p.Needed) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	ids := make([]string, len(p.Needed))
	for i := range p.Needed {
		ids[i] = p.Needed[i].ID
	}
	cards, err := a.catalog.FetchCards(ctx, ids)
	if err != nil {
		return upstream(err, "fetch %d cards", len(ids))
	}
	acc.cards = append(acc.cards, cards...)
	return nil
}

// persistSet stores a set fetched with full metadata and remembers it.
// A set the catalog returned without a series is stored as partial so it
// cannot overwrite a series already on record.
func (a *acquirer) persistSet(ctx context.Context, set *domain.Set, acc *acquisition) error {
	stored := *set
	stored.Cards = nil
	stored.Partial = false
	if stored.Series == "" {
		stored.Series = domain.UnknownSeries
		stored.Partial = true
	}
	if err := a.store.UpsertSet(ctx, stored); err != nil {
		return fmt.Errorf("save set %s: %w", set.ID, err)
	}
	acc.sets[set.ID] = stored
	return nil
}

// ==================== Set ====================

// setStrategy loads one set through its embedded card listing.
type setStrategy struct{ *acquirer }

func (s *setStrategy) kind() domain.StrategyKind { return domain.StrategySet }

func (s *setStrategy) acquire(ctx context.Context, filter domain.Filter, report progressFunc) (*acquisition, error) {
	acc := newAcquisition()

	set, err := s.catalog.FetchSet(ctx, filter.SetID)
	if err != nil {
		return nil, upstream(err, "fetch set %s", filter.SetID)
	}
	// The set exists locally even when none of its cards end up fetched.
	if err := s.persistSet(ctx, set, acc); err != nil {
		return nil, err
	}
	report(fmt.Sprintf("Set %s: %d cards listed", set.Name, len(set.Cards)), 1, 1)

	if err := s.collect(ctx, set.Cards, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

// ==================== Series ====================

// seriesStrategy loads every set of the requested series.
type seriesStrategy struct{ *acquirer }

func (s *seriesStrategy) kind() domain.StrategyKind { return domain.StrategySeries }

func (s *seriesStrategy) acquire(ctx context.Context, filter domain.Filter, report progressFunc) (*acquisition, error) {
	acc := newAcquisition()

	all, err := s.catalog.FetchSets(ctx, false)
	if err != nil {
		return nil, upstream(err, "fetch sets")
	}

	var matching []domain.Set
	for i := range all {
		if slices.Contains(filter.Series, all[i].Series) {
			matching = append(matching, all[i])
		}
	}
	logger.Debug("Series strategy: %d of %d sets match %v", len(matching), len(all), filter.Series)

	for i := range matching {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		set := &matching[i]
		if len(set.Cards) == 0 {
			detail, err := s.catalog.FetchSet(ctx, set.ID)
			if err != nil {
				return nil, upstream(err, "fetch set %s", set.ID)
			}
			if detail.Series == "" {
				detail.Series = set.Series
			}
			set = detail
		}

		if err := s.persistSet(ctx, set, acc); err != nil {
			return nil, err
		}
		if err := s.collect(ctx, set.Cards, acc); err != nil {
			return nil, err
		}
		report(fmt.Sprintf("Set %d/%d: %s", i+1, len(matching), set.Name), i+1, len(matching))
	}
	return acc, nil
}

// ==================== Names ====================

// namesStrategy searches the catalog once per requested name.
type namesStrategy struct{ *acquirer }

func (s *namesStrategy) kind() domain.StrategyKind { return domain.StrategyNames }

func (s *namesStrategy) acquire(ctx context.Context, filter domain.Filter, report progressFunc) (*acquisition, error) {
	acc := newAcquisition()
	found := newBriefSet()

	for i, name := range filter.Names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		briefs, err := s.catalog.SearchByName(ctx, name)
		if err != nil {
			return nil, upstream(err, "search name %q", name)
		}
		found.add(briefs)

		if (i+1)%nameProgressEvery == 0 {
			report(fmt.Sprintf("Searched %d/%d names", i+1, len(filter.Names)), i+1, len(filter.Names))
		}
	}

	if err := s.collect(ctx, found.list(), acc); err != nil {
		return nil, err
	}
	return acc, nil
}

// ==================== Name ====================

// nameStrategy searches the catalog for a single name.
type nameStrategy struct{ *acquirer }

func (s *nameStrategy) kind() domain.StrategyKind { return domain.StrategyName }

func (s *nameStrategy) acquire(ctx context.Context, filter domain.Filter, _ progressFunc) (*acquisition, error) {
	acc := newAcquisition()

	briefs, err := s.catalog.SearchByName(ctx, filter.Name)
	if err != nil {
		return nil, upstream(err, "search name %q", filter.Name)
	}
	found := newBriefSet()
	found.add(briefs)

	if err := s.collect(ctx, found.list(), acc); err != nil {
		return nil, err
	}
	return acc, nil
}

// ==================== Attribute ====================

// attributeStrategy issues one server-side filtered search. The catalog
// filters on a single rarity, so only the first is sent; Narrow enforces
// the rest.
type attributeStrategy struct{ *acquirer }

func (s *attributeStrategy) kind() domain.StrategyKind { return domain.StrategyAttribute }

func (s *attributeStrategy) acquire(ctx context.Context, filter domain.Filter, _ progressFunc) (*acquisition, error) {
	acc := newAcquisition()

	var (
		briefs []domain.CardBrief
		err    error
	)
	if len(filter.Rarities) > 0 {
		briefs, err = s.catalog.SearchByRarity(ctx, filter.Rarities[0])
		if err != nil {
			return nil, upstream(err, "search rarity %q", filter.Rarities[0])
		}
	} else {
		briefs, err = s.catalog.SearchByCategory(ctx, filter.Category)
		if err != nil {
			return nil, upstream(err, "search category %q", filter.Category)
		}
	}

	found := newBriefSet()
	found.add(briefs)
	if err := s.collect(ctx, found.list(), acc); err != nil {
		return nil, err
	}
	return acc, nil
}

// briefSet de-duplicates briefs by id. A later brief replaces an earlier
// one with the same id but keeps its original position.
type briefSet struct {
	index  map[string]int
	briefs []domain.CardBrief
}

func newBriefSet() *briefSet {
	return &briefSet{index: make(map[string]int)}
}

func (s *briefSet) add(briefs []domain.CardBrief) {
	for _, b := range briefs {
		if i, ok := s.index[b.ID]; ok {
			s.briefs[i] = b
			continue
		}
		s.index[b.ID] = len(s.briefs)
		s.briefs = append(s.briefs, b)
	}
}

func (s *briefSet) list() []domain.CardBrief {
	return s.briefs
}

// upstream wraps a catalog failure. Cancellation and errors already
// marked as upstream are passed through as-is.
func upstream(err error, format string, args ...any) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, domain.ErrUpstream) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrUpstream, fmt.Sprintf(format, args...), err)
}
