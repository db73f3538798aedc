package inventory

import "errors"

var (
	ErrNotFound        = errors.New("inventory: item not found")
	ErrInvalidName     = errors.New("inventory: name must be 1 to 100 characters")
	ErrInvalidQuantity = errors.New("inventory: quantity must be zero or greater")
	ErrInvalidPrice    = errors.New("inventory: price must be zero or greater")
)

const maxNameLength = 100

// Item is a stocked product record. The id is assigned by the store and
// never changes afterwards.
type Item struct {
	ID       int64
	Name     string
	Quantity int
	Price    float64
}

func NewItem(name string, quantity int, price float64) (*Item, error) {
	item := &Item{
		Name:     name,
		Quantity: quantity,
		Price:    price,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

func (i *Item) Validate() error {
	if i.Name == "" || len(i.Name) > maxNameLength {
		return ErrInvalidName
	}
	if i.Quantity < 0 {
		return ErrInvalidQuantity
	}
	if i.Price < 0 {
		return ErrInvalidPrice
	}
	return nil
}

// Patch holds the fields of a partial update. A nil pointer means the
// field was not supplied and keeps its current value.
type Patch struct {
	Name     *string
	Quantity *int
	Price    *float64
}

// Apply overlays every supplied field onto the item. Validation runs on
// the merged result before anything is mutated.
func (i *Item) Apply(p Patch) error {
	next := *i
	if p.Name != nil {
		next.Name = *p.Name
	}
	if p.Quantity != nil {
		next.Quantity = *p.Quantity
	}
	if p.Price != nil {
		next.Price = *p.Price
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*i = next
	return nil
}

func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	clone := *i
	return &clone
}
