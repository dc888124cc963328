// Package objectstore keeps snapshots as JSON blobs in the object store.
//
// The version check is a read followed by a write, not an atomic
// compare-and-swap: two writers racing between the read and the put both
// succeed and the last one wins.
package objectstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pollbuilder/internal/repository"
	"pollbuilder/internal/storage"
)

// SnapshotObject stores one snapshot under {name}.json.
type SnapshotObject[T any] struct {
	store storage.Storage
	key   string
	now   func() time.Time
}

// NewSnapshotObject creates a repository for the snapshot called name.
func NewSnapshotObject[T any](store storage.Storage, name string) *SnapshotObject[T] {
	return &SnapshotObject[T]{store: store, key: name + ".json", now: time.Now}
}

var _ repository.SnapshotRepository[int] = (*SnapshotObject[int])(nil)

// Load reads and decodes the blob; a missing blob is an empty snapshot.
func (r *SnapshotObject[T]) Load(ctx context.Context) (*repository.Snapshot[T], error) {
	rc, _, err := r.store.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return &repository.Snapshot[T]{}, nil
		}
		return nil, fmt.Errorf("read snapshot %s: %w", r.key, err)
	}
	defer rc.Close()

	var out repository.Snapshot[T]
	if err := json.NewDecoder(rc).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", r.key, err)
	}
	return &out, nil
}

// Save re-reads the stored version, rejects a stale write and replaces the blob.
func (r *SnapshotObject[T]) Save(ctx context.Context, s *repository.Snapshot[T]) (*repository.Snapshot[T], error) {
	cur, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	if cur.Version != s.Version {
		return nil, repository.ErrVersionConflict
	}

	out := &repository.Snapshot[T]{Data: s.Data, Version: s.Version + 1, UpdatedAt: r.now().UTC()}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot %s: %w", r.key, err)
	}
	if _, err := r.store.Put(ctx, r.key, bytes.NewReader(b), storage.PutObjectOptions{
		Size:        int64(len(b)),
		ContentType: "application/json",
	}); err != nil {
		return nil, fmt.Errorf("write snapshot %s: %w", r.key, err)
	}
	return out, nil
}
