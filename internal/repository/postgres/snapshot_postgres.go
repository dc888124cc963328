package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pollbuilder/internal/repository"
)

// SnapshotPostgres stores one named snapshot as a JSONB row of the snapshots
// table. Writes are compare-and-swap on the version column.
type SnapshotPostgres[T any] struct {
	db   *sql.DB
	name string
	now  func() time.Time
}

// NewSnapshotPostgres creates a repository for the snapshot called name.
func NewSnapshotPostgres[T any](db *sql.DB, name string) *SnapshotPostgres[T] {
	return &SnapshotPostgres[T]{db: db, name: name, now: time.Now}
}

var _ repository.SnapshotRepository[int] = (*SnapshotPostgres[int])(nil)

// Load fetches the snapshot row; a missing row is an empty snapshot at version 0.
func (r *SnapshotPostgres[T]) Load(ctx context.Context) (*repository.Snapshot[T], error) {
	const q = `
		SELECT version, payload, updated_at
		FROM snapshots
		WHERE name = $1
	`
	var (
		out     repository.Snapshot[T]
		payload []byte
	)
	err := r.db.QueryRowContext(ctx, q, r.name).Scan(&out.Version, &payload, &out.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &repository.Snapshot[T]{}, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(payload, &out.Data); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", r.name, err)
	}
	return &out, nil
}

// Save writes s if the stored version still equals s.Version.
func (r *SnapshotPostgres[T]) Save(ctx context.Context, s *repository.Snapshot[T]) (*repository.Snapshot[T], error) {
	payload, err := json.Marshal(s.Data)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot %s: %w", r.name, err)
	}
	next := s.Version + 1
	now := r.now().UTC()

	var res sql.Result
	if s.Version == 0 {
		const q = `
			INSERT INTO snapshots (name, version, payload, updated_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (name) DO NOTHING
		`
		res, err = r.db.ExecContext(ctx, q, r.name, next, payload, now)
	} else {
		const q = `
			UPDATE snapshots
			SET version = $2, payload = $3, updated_at = $4
			WHERE name = $1 AND version = $5
		`
		res, err = r.db.ExecContext(ctx, q, r.name, next, payload, now, s.Version)
	}
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n != 1 {
		return nil, repository.ErrVersionConflict
	}
	return &repository.Snapshot[T]{Data: s.Data, Version: next, UpdatedAt: now}, nil
}
