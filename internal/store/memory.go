package store

import (
	"context"
	"sync"

	"github.com/itc-club/club-applications/internal/types"
)

// MemoryStore is an in-memory RecordStore for tests and local development.
type MemoryStore struct {
	mu      sync.RWMutex
	records []types.Record

	// AppendErr, when set, is returned by Append. Lets tests exercise the
	// store-unavailable path.
	AppendErr error
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// EnsureHeaders always succeeds: the in-memory layout cannot drift.
func (m *MemoryStore) EnsureHeaders(ctx context.Context) error {
	return nil
}

// List returns a copy of every stored record.
func (m *MemoryStore) List(ctx context.Context) ([]types.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]types.Record, len(m.records))
	copy(out, m.records)
	return out, nil
}

// Append adds one record.
func (m *MemoryStore) Append(ctx context.Context, rec *types.Record) error {
	if m.AppendErr != nil {
		return m.AppendErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = append(m.records, *rec)
	return nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}
