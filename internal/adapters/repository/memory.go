package repository

import (
	"context"
	"sync"

	"github.com/campusnav/core/internal/domain/entities"
)

// MemoryStore keeps records in memory. It satisfies every repository
// interface and backs the service and handler tests. LoadErr and SaveErr,
// when set, are returned by the next loads and saves.
type MemoryStore[T entities.Record[T]] struct {
	mu      sync.Mutex
	records []T
	saves   int

	LoadErr error
	SaveErr error
}

// NewMemoryStore creates a store seeded with records
func NewMemoryStore[T entities.Record[T]](records ...T) *MemoryStore[T] {
	return &MemoryStore[T]{records: append([]T{}, records...)}
}

func (m *MemoryStore[T]) LoadAll(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return append([]T{}, m.records...), nil
}

func (m *MemoryStore[T]) SaveAll(ctx context.Context, records []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveLocked(records)
}

func (m *MemoryStore[T]) Update(ctx context.Context, fn func([]T) ([]T, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return m.LoadErr
	}
	updated, err := fn(append([]T{}, m.records...))
	if err != nil {
		return err
	}
	return m.saveLocked(updated)
}

func (m *MemoryStore[T]) saveLocked(records []T) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.records = append([]T{}, records...)
	m.saves++
	return nil
}

// Records returns a copy of the current contents
func (m *MemoryStore[T]) Records() []T {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]T{}, m.records...)
}

// Saves reports how many saves succeeded
func (m *MemoryStore[T]) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
