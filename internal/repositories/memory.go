package repositories

import (
	"context"
	"sync"

	"katalog/internal/models"
)

// MemoryItemRepository keeps items in a process-local map. Writers to
// the same id follow last-write-wins; the mutex only guarantees the map
// itself stays consistent under concurrent use.
type MemoryItemRepository struct {
	mu    sync.RWMutex
	items map[string]models.Item
}

// NewMemoryItemRepository creates an empty in-memory repository. Tests
// construct a fresh one per run instead of resetting shared state.
func NewMemoryItemRepository() *MemoryItemRepository {
	return &MemoryItemRepository{items: make(map[string]models.Item)}
}

// Put stores a copy of the item so later caller mutations cannot tear a
// stored record.
func (r *MemoryItemRepository) Put(ctx context.Context, item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = cloneItem(item)
	return nil
}

// Get returns a copy of the stored item, or ErrItemNotFound.
func (r *MemoryItemRepository) Get(ctx context.Context, id string) (*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	out := cloneItem(&item)
	return &out, nil
}

// Delete removes the item under id, reporting ErrItemNotFound when it
// was never there.
func (r *MemoryItemRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}

// All returns copies of every stored item in map iteration order.
func (r *MemoryItemRepository) All(ctx context.Context) ([]*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]*models.Item, 0, len(r.items))
	for id := range r.items {
		item := r.items[id]
		copied := cloneItem(&item)
		items = append(items, &copied)
	}
	return items, nil
}

func cloneItem(item *models.Item) models.Item {
	out := *item
	if item.Description != nil {
		d := *item.Description
		out.Description = &d
	}
	if item.Metadata != nil {
		meta := make(models.Metadata, len(item.Metadata))
		for k, v := range item.Metadata {
			meta[k] = v
		}
		out.Metadata = meta
	}
	return out
}
