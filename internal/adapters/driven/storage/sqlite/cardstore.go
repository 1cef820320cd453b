package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SergioXp/holostack/internal/core/domain"
	"github.com/SergioXp/holostack/internal/core/ports/driven"
)

// cardStore implements driven.CardStore.
type cardStore struct {
	store *Store
}

var _ driven.CardStore = (*cardStore)(nil)

// ExistingIDs returns the subset of ids already stored.
// Callers keep len(ids) within SQLite's bound-parameter limit of 32766.
func (s *cardStore) ExistingIDs(ctx context.Context, ids []string) (map[string]struct{}, error) {
	found := make(map[string]struct{}, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	//nolint:gosec // only placeholders are interpolated
	query := "SELECT id FROM cards WHERE id IN (" + placeholders(len(ids)) + ")"
	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying existing cards: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning card id: %w", err)
		}
		found[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating card ids: %w", err)
	}

	return found, nil
}

// UpsertSet creates or updates a set.
// A partial row never overwrites series, counts or release date.
func (s *cardStore) UpsertSet(ctx context.Context, set domain.Set) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO sets (id, name, series, card_count_official, card_count_total,
			release_date, symbol, logo, partial, synced_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			series = CASE WHEN excluded.partial = 1 THEN sets.series ELSE excluded.series END,
			card_count_official = CASE WHEN excluded.partial = 1
				THEN sets.card_count_official ELSE excluded.card_count_official END,
			card_count_total = CASE WHEN excluded.partial = 1
				THEN sets.card_count_total ELSE excluded.card_count_total END,
			release_date = CASE WHEN excluded.partial = 1 THEN sets.release_date ELSE excluded.release_date END,
			symbol = CASE WHEN excluded.partial = 1
				THEN COALESCE(NULLIF(excluded.symbol, ''), sets.symbol) ELSE excluded.symbol END,
			logo = CASE WHEN excluded.partial = 1
				THEN COALESCE(NULLIF(excluded.logo, ''), sets.logo) ELSE excluded.logo END,
			partial = CASE WHEN excluded.partial = 1 THEN sets.partial ELSE 0 END,
			synced_at = excluded.synced_at
	`, set.ID, set.Name, set.Series, set.CardCountOfficial, set.CardCountTotal,
		set.ReleaseDate, set.Symbol, set.Logo, set.Partial, time.Now().UTC())

	if err != nil {
		return fmt.Errorf("saving set: %w", err)
	}
	return nil
}

// UpsertCard creates or replaces a card.
func (s *cardStore) UpsertCard(ctx context.Context, card domain.Card) error {
	types := card.Types
	if types == nil {
		types = []string{}
	}
	typesJSON, err := json.Marshal(types)
	if err != nil {
		return fmt.Errorf("marshalling types: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO cards (id, local_id, name, category, rarity, types, hp, illustrator, image,
			set_id, set_name, set_logo, set_symbol, set_count_official, set_count_total, synced_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			local_id = excluded.local_id,
			name = excluded.name,
			category = excluded.category,
			rarity = excluded.rarity,
			types = excluded.types,
			hp = excluded.hp,
			illustrator = excluded.illustrator,
			image = excluded.image,
			set_id = excluded.set_id,
			set_name = excluded.set_name,
			set_logo = excluded.set_logo,
			set_symbol = excluded.set_symbol,
			set_count_official = excluded.set_count_official,
			set_count_total = excluded.set_count_total,
			synced_at = excluded.synced_at
	`, card.ID, card.LocalID, card.Name, card.Category, card.Rarity, string(typesJSON),
		card.HP, card.Illustrator, card.Image,
		nullString(card.Set.ID), card.Set.Name, card.Set.Logo, card.Set.Symbol,
		card.Set.CardCountOfficial, card.Set.CardCountTotal, time.Now().UTC())

	if err != nil {
		return fmt.Errorf("saving card: %w", err)
	}
	return nil
}

// GetSet retrieves a set by ID.
func (s *cardStore) GetSet(ctx context.Context, id string) (*domain.Set, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, series, card_count_official, card_count_total,
			release_date, symbol, logo, partial, synced_at
		FROM sets WHERE id = ?
	`, id)

	var set domain.Set
	var syncedAt sql.NullTime
	if err := row.Scan(&set.ID, &set.Name, &set.Series, &set.CardCountOfficial,
		&set.CardCountTotal, &set.ReleaseDate, &set.Symbol, &set.Logo,
		&set.Partial, &syncedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning set: %w", err)
	}
	if syncedAt.Valid {
		set.SyncedAt = syncedAt.Time
	}

	return &set, nil
}

// GetCard retrieves a card by ID.
func (s *cardStore) GetCard(ctx context.Context, id string) (*domain.Card, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, local_id, name, category, rarity, types, hp, illustrator, image,
			set_id, set_name, set_logo, set_symbol, set_count_official, set_count_total, synced_at
		FROM cards WHERE id = ?
	`, id)

	var card domain.Card
	var typesJSON string
	var setID sql.NullString
	var syncedAt sql.NullTime
	if err := row.Scan(&card.ID, &card.LocalID, &card.Name, &card.Category, &card.Rarity,
		&typesJSON, &card.HP, &card.Illustrator, &card.Image,
		&setID, &card.Set.Name, &card.Set.Logo, &card.Set.Symbol,
		&card.Set.CardCountOfficial, &card.Set.CardCountTotal, &syncedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning card: %w", err)
	}

	if err := json.Unmarshal([]byte(typesJSON), &card.Types); err != nil {
		return nil, fmt.Errorf("unmarshaling types: %w", err)
	}
	card.Set.ID = setID.String
	if syncedAt.Valid {
		card.SyncedAt = syncedAt.Time
	}

	return &card, nil
}

// CountCards returns the number of stored cards in a set.
func (s *cardStore) CountCards(ctx context.Context, setID string) (int, error) {
	var n int
	row := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM cards WHERE set_id = ?", setID)
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("counting cards: %w", err)
	}
	return n, nil
}
