package order

import "time"

// OrderCreatedEvent is a domain event emitted when a new order is created.
type OrderCreatedEvent struct {
	OrderID    int64
	Customer   string
	Items      []int64
	Status     Status
	OccurredAt time.Time
}

func (OrderCreatedEvent) EventName() string { return "order.created" }

func NewOrderCreatedEvent(o *Order) OrderCreatedEvent {
	return OrderCreatedEvent{
		OrderID:    o.ID,
		Customer:   o.Customer,
		Items:      append([]int64(nil), o.Items...),
		Status:     o.Status,
		OccurredAt: time.Now().UTC(),
	}
}

// OrderUpdatedEvent is emitted after a replace or patch.
type OrderUpdatedEvent struct {
	OrderID    int64
	Status     Status
	OccurredAt time.Time
}

func (OrderUpdatedEvent) EventName() string { return "order.updated" }

func NewOrderUpdatedEvent(o *Order) OrderUpdatedEvent {
	return OrderUpdatedEvent{
		OrderID:    o.ID,
		Status:     o.Status,
		OccurredAt: time.Now().UTC(),
	}
}

// OrderDeletedEvent is emitted when an order is removed.
type OrderDeletedEvent struct {
	OrderID    int64
	OccurredAt time.Time
}

func (OrderDeletedEvent) EventName() string { return "order.deleted" }

func NewOrderDeletedEvent(id int64) OrderDeletedEvent {
	return OrderDeletedEvent{
		OrderID:    id,
		OccurredAt: time.Now().UTC(),
	}
}
