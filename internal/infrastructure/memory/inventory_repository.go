package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/warehouse-ops/warehouse-api/internal/domain/inventory"
)

// InventoryRepository keeps items in process memory. Ids are assigned
// from a monotonic counter guarded by the same lock as the map, and are
// never reused after a delete. A separate id slice preserves insertion
// order for listing.
type InventoryRepository struct {
	mu     sync.RWMutex
	items  map[int64]*domain.Item
	order  []int64
	nextID int64
}

func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{
		items: make(map[int64]*domain.Item),
	}
}

func (r *InventoryRepository) Insert(ctx context.Context, item *domain.Item) error {
	_ = ctx
	if item == nil {
		return fmt.Errorf("inventory repository: item is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	item.ID = r.nextID
	r.items[item.ID] = item.Clone()
	r.order = append(r.order, item.ID)
	return nil
}

func (r *InventoryRepository) Get(ctx context.Context, id int64) (*domain.Item, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return item.Clone(), nil
}

func (r *InventoryRepository) List(ctx context.Context) ([]*domain.Item, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Item, 0, len(r.items))
	for _, id := range r.order {
		if item, ok := r.items[id]; ok {
			out = append(out, item.Clone())
		}
	}
	return out, nil
}

func (r *InventoryRepository) Update(ctx context.Context, item *domain.Item) error {
	_ = ctx
	if item == nil || item.ID == 0 {
		return fmt.Errorf("inventory repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		return domain.ErrNotFound
	}
	r.items[item.ID] = item.Clone()
	return nil
}

func (r *InventoryRepository) Delete(ctx context.Context, id int64) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[id]; !exists {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *InventoryRepository) Missing(ctx context.Context, ids []int64) ([]int64, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	var missing []int64
	for _, id := range ids {
		if _, ok := r.items[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}
