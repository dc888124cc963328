package service

import (
	"context"
	"errors"
	"fmt"

	"pollbuilder/internal/repository"
)

// mutate applies fn to the current snapshot and saves the result, reloading and
// reapplying fn after a version conflict up to retries more times.
func mutate[T any](ctx context.Context, repo repository.SnapshotRepository[T], retries int, fn func(*repository.Snapshot[T]) (T, error)) (T, error) {
	var zero T
	for attempt := 0; ; attempt++ {
		cur, err := repo.Load(ctx)
		if err != nil {
			return zero, fmt.Errorf("load snapshot: %w", err)
		}
		next, err := fn(cur)
		if err != nil {
			return zero, err
		}
		saved, err := repo.Save(ctx, &repository.Snapshot[T]{Data: next, Version: cur.Version})
		if err == nil {
			return saved.Data, nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) || attempt >= retries {
			return zero, fmt.Errorf("save snapshot: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return zero, err
		}
	}
}
