package storage

import (
	"context"
	"sync"

	"lead-capture/pkg/models"
)

// MemoryStore keeps leads in process memory. Contents are lost on exit.
type MemoryStore struct {
	mu    sync.RWMutex
	leads []models.Lead
}

// NewMemoryStore creates a store seeded with a copy of leads
func NewMemoryStore(leads ...models.Lead) *MemoryStore {
	return &MemoryStore{leads: cloneLeads(leads)}
}

func (s *MemoryStore) ReadAll(ctx context.Context) ([]models.Lead, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneLeads(s.leads), nil
}

func (s *MemoryStore) WriteAll(ctx context.Context, leads []models.Lead) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.leads = cloneLeads(leads)
	s.mu.Unlock()
	return nil
}

func cloneLeads(leads []models.Lead) []models.Lead {
	out := make([]models.Lead, len(leads))
	copy(out, leads)
	return out
}
