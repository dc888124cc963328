// Package repository defines whole-snapshot persistence for the question
// library and the document list. Implementations live in subpackages.
package repository

import (
	"context"
	"errors"
	"time"

	"pollbuilder/internal/model"
)

// Snapshot names.
const (
	LibrarySnapshot   = "questions-db"
	DocumentsSnapshot = "documents"
)

// ErrVersionConflict is returned by Save when the stored snapshot changed
// since it was loaded.
var ErrVersionConflict = errors.New("snapshot version conflict")

// Snapshot is a versioned, whole-value copy of persisted state.
// Version 0 means the snapshot has never been written.
type Snapshot[T any] struct {
	Data      T         `json:"data"`
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SnapshotRepository reads and replaces one named snapshot.
type SnapshotRepository[T any] interface {
	// Load returns the current snapshot, or a zero snapshot at version 0 if none exists.
	Load(ctx context.Context) (*Snapshot[T], error)

	// Save replaces the stored value if its version still equals s.Version and
	// returns the stored snapshot at s.Version+1. Otherwise it returns ErrVersionConflict.
	Save(ctx context.Context, s *Snapshot[T]) (*Snapshot[T], error)
}

// LibraryRepository persists the question library.
type LibraryRepository = SnapshotRepository[model.Library]

// DocumentRepository persists the uploaded document list.
type DocumentRepository = SnapshotRepository[[]model.DocumentMetadata]
