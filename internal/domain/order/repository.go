package order

import "context"

type Repository interface {
	// Insert assigns the next id to the order and stores it.
	Insert(ctx context.Context, order *Order) error
	Get(ctx context.Context, id int64) (*Order, error)
	// List returns all orders in insertion order.
	List(ctx context.Context) ([]*Order, error)
	Update(ctx context.Context, order *Order) error
	Delete(ctx context.Context, id int64) error
}
