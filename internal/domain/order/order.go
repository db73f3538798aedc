package order

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("order: not found")
	ErrInvalidCustomer = errors.New("order: customer must be 1 to 100 characters")
	ErrInvalidStatus   = errors.New("order: unrecognized status")
	ErrUnknownItem     = errors.New("order: unknown inventory item")
)

const maxCustomerLength = 100

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// ParseStatus validates a raw status value against the enumeration. Any
// valid status may follow any other; no transition graph is enforced.
func ParseStatus(raw string) (Status, error) {
	switch s := Status(raw); s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return s, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
}

// Order is a customer purchase referencing inventory items by id. Item
// existence is checked when the order is created or its items are
// replaced, never afterwards: deleting an item leaves referencing orders
// with a stale id.
type Order struct {
	ID       int64
	Customer string
	Items    []int64
	Status   Status
}

func New(customer string, items []int64, status Status) (*Order, error) {
	o := &Order{
		Customer: customer,
		Items:    append([]int64(nil), items...),
		Status:   status,
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Order) Validate() error {
	if o.Customer == "" || len(o.Customer) > maxCustomerLength {
		return ErrInvalidCustomer
	}
	if _, err := ParseStatus(string(o.Status)); err != nil {
		return err
	}
	return nil
}

// Patch holds the fields of a partial update. A nil pointer means the
// field was not supplied. A non-nil empty Items slice clears the list.
type Patch struct {
	Customer *string
	Items    *[]int64
	Status   *Status
}

// Apply overlays every supplied field onto the order. Validation runs on
// the merged result before anything is mutated.
func (o *Order) Apply(p Patch) error {
	next := *o
	if p.Customer != nil {
		next.Customer = *p.Customer
	}
	if p.Items != nil {
		next.Items = append([]int64(nil), (*p.Items)...)
	}
	if p.Status != nil {
		next.Status = *p.Status
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*o = next
	return nil
}

func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Items = append([]int64(nil), o.Items...)
	return &clone
}
