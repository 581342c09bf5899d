package registry

import (
	"context"
	"sync"

	"github.com/gdg-garage/contrib-role-api/internal/models"
)

// MemoryRegistry keeps records for the lifetime of the process only.
type MemoryRegistry struct {
	mu      sync.RWMutex
	records map[string]models.Verification
	order   []string
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{records: make(map[string]models.Verification)}
}

func (r *MemoryRegistry) Save(ctx context.Context, v models.Verification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[v.DiscordID]; !ok {
		r.order = append(r.order, v.DiscordID)
	}
	v.Repositories = append([]string(nil), v.Repositories...)
	r.records[v.DiscordID] = v
	return nil
}

func (r *MemoryRegistry) List(ctx context.Context) ([]models.Verification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Verification, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.records[id])
	}
	return out, nil
}

func (r *MemoryRegistry) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.records)), nil
}
