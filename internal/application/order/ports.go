package order

import "context"

// ItemCatalog is the slice of the inventory store the order use cases
// need: existence checks for referenced item ids.
type ItemCatalog interface {
	Missing(ctx context.Context, ids []int64) ([]int64, error)
}
