package inventory

import "context"

type Repository interface {
	// Insert assigns the next id to the item and stores it.
	Insert(ctx context.Context, item *Item) error
	Get(ctx context.Context, id int64) (*Item, error)
	// List returns all items in insertion order.
	List(ctx context.Context) ([]*Item, error)
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id int64) error
	// Missing reports which of the given ids do not exist.
	Missing(ctx context.Context, ids []int64) ([]int64, error)
}
