package mocks

import (
	"context"
	"sync"

	"pollbuilder/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockSnapshotRepository[T any] struct {
	mock.Mock
}

func (m *MockSnapshotRepository[T]) Load(ctx context.Context) (*repository.Snapshot[T], error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Snapshot[T]), args.Error(1)
}

func (m *MockSnapshotRepository[T]) Save(ctx context.Context, s *repository.Snapshot[T]) (*repository.Snapshot[T], error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Snapshot[T]), args.Error(1)
}

// MemorySnapshot is an in-process SnapshotRepository with real version checks.
// Conflicts, when > 0, makes that many Save calls fail with ErrVersionConflict first.
type MemorySnapshot[T any] struct {
	mu        sync.Mutex
	snap      repository.Snapshot[T]
	Conflicts int
	Saves     int
}

func NewMemorySnapshot[T any](data T) *MemorySnapshot[T] {
	return &MemorySnapshot[T]{snap: repository.Snapshot[T]{Data: data}}
}

func (m *MemorySnapshot[T]) Load(ctx context.Context) (*repository.Snapshot[T], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.snap
	return &s, nil
}

func (m *MemorySnapshot[T]) Save(ctx context.Context, s *repository.Snapshot[T]) (*repository.Snapshot[T], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Conflicts > 0 {
		m.Conflicts--
		m.snap.Version++
		return nil, repository.ErrVersionConflict
	}
	if s.Version != m.snap.Version {
		return nil, repository.ErrVersionConflict
	}
	m.Saves++
	m.snap = repository.Snapshot[T]{Data: s.Data, Version: s.Version + 1}
	out := m.snap
	return &out, nil
}

// Current returns the stored data.
func (m *MemorySnapshot[T]) Current() T {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap.Data
}
