package review

import (
	"context"
	"sync"

	"github.com/itc-club/club-applications/internal/types"
)

// MemoryStore is an in-memory Store used in tests.
type MemoryStore struct {
	mu      sync.RWMutex
	reviews []types.ReviewRecord

	// AppendErr, when set, is returned by Append to simulate failures.
	AppendErr error
}

// NewMemoryStore creates an empty in-memory review store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Append(_ context.Context, rec *types.ReviewRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.reviews = append(m.reviews, *rec)
	return nil
}

func (m *MemoryStore) List(_ context.Context) ([]types.ReviewRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]types.ReviewRecord, len(m.reviews))
	copy(out, m.reviews)
	return out, nil
}
