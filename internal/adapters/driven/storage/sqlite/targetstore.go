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

// targetStore implements driven.TargetStore.
type targetStore struct {
	store *Store
}

var _ driven.TargetStore = (*targetStore)(nil)

// Save stores or updates a target.
func (s *targetStore) Save(ctx context.Context, target domain.Target) error {
	filterJSON, err := json.Marshal(target.Filter)
	if err != nil {
		return fmt.Errorf("marshalling filter: %w", err)
	}

	now := time.Now().UTC()
	if target.CreatedAt.IsZero() {
		target.CreatedAt = now
	}
	target.UpdatedAt = now

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO targets (id, name, filter, created_at, updated_at, last_hydrated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			filter = excluded.filter,
			updated_at = excluded.updated_at
	`, target.ID, target.Name, string(filterJSON), target.CreatedAt, target.UpdatedAt,
		nullTime(target.LastHydratedAt))

	if err != nil {
		return fmt.Errorf("saving target: %w", err)
	}
	return nil
}

// Get retrieves a target by ID.
func (s *targetStore) Get(ctx context.Context, id string) (*domain.Target, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, filter, created_at, updated_at, last_hydrated_at
		FROM targets WHERE id = ?
	`, id)

	target, err := scanTarget(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return target, err
}

// List returns all targets ordered by creation time.
func (s *targetStore) List(ctx context.Context) ([]domain.Target, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, filter, created_at, updated_at, last_hydrated_at
		FROM targets ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying targets: %w", err)
	}
	defer rows.Close()

	var targets []domain.Target //nolint:prealloc // size unknown from query
	for rows.Next() {
		target, err := scanTarget(rows)
		if err != nil {
			return nil, err
		}
		targets = append(targets, *target)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating targets: %w", err)
	}

	return targets, nil
}

// Delete removes a target.
func (s *targetStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM targets WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting target: %w", err)
	}
	return nil
}

// MarkHydrated records a completed hydration.
func (s *targetStore) MarkHydrated(ctx context.Context, id string, at time.Time) error {
	res, err := s.store.db.ExecContext(ctx,
		"UPDATE targets SET last_hydrated_at = ? WHERE id = ?", at.UTC(), id)
	if err != nil {
		return fmt.Errorf("marking target hydrated: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTarget(row rowScanner) (*domain.Target, error) {
	var target domain.Target
	var filterJSON string
	var createdAt, updatedAt, hydratedAt sql.NullTime
	if err := row.Scan(&target.ID, &target.Name, &filterJSON,
		&createdAt, &updatedAt, &hydratedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning target: %w", err)
	}

	if err := json.Unmarshal([]byte(filterJSON), &target.Filter); err != nil {
		return nil, fmt.Errorf("unmarshaling filter: %w", err)
	}

	if createdAt.Valid {
		target.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		target.UpdatedAt = updatedAt.Time
	}
	if hydratedAt.Valid {
		target.LastHydratedAt = hydratedAt.Time
	}

	return &target, nil
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
