package repository

import (
	"context"
	"sync"

	"github.com/signupdesk/signupdesk/backend/internal/submission"
)

// MemoryRepo is an in-memory repository used by tests and the "memory" store
// backend. Nothing survives a restart.
type MemoryRepo struct {
	mu      sync.RWMutex
	records []submission.Record
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{records: []submission.Record{}}
}

func (m *MemoryRepo) List(ctx context.Context) ([]submission.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]submission.Record, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *MemoryRepo) Insert(ctx context.Context, rec *submission.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if containsID(m.records, rec.ID) {
		return submission.ErrDuplicateID
	}
	m.records = append(m.records, *rec)
	return nil
}

func (m *MemoryRepo) DeleteMany(ctx context.Context, ids []string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept, removed := without(m.records, ids)
	m.records = kept
	return removed, nil
}

func (m *MemoryRepo) Ping(ctx context.Context) error { return nil }
