package entitlements

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store for tests and single-process setups.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]BillingRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[uuid.UUID]BillingRecord)}
}

func (s *MemoryStore) GetBillingRecord(_ context.Context, householdID uuid.UUID) (BillingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[householdID]
	if !ok {
		return BillingRecord{}, ErrNotFound
	}
	return rec, nil
}

func (s *MemoryStore) SaveBillingRecord(_ context.Context, rec BillingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[rec.HouseholdID] = rec
	return nil
}
