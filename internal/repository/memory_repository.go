package repository

import (
	"context"
	"sync"
)

type memorySlotRepository struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemorySlotRepository keeps slots in process memory. seed pre-populates
// stored values.
func NewMemorySlotRepository(seed map[string]string) SlotRepository {
	slots := make(map[string][]byte, len(seed))
	for k, v := range seed {
		slots[k] = []byte(v)
	}
	return &memorySlotRepository{slots: slots}
}

func (r *memorySlotRepository) Load(_ context.Context, key string) ([]byte, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.slots[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (r *memorySlotRepository) Save(_ context.Context, key string, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)
	r.mu.Lock()
	r.slots[key] = v
	r.mu.Unlock()
	return nil
}
