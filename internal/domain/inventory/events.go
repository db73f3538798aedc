package inventory

import "time"

// ItemCreatedEvent is emitted when a new item enters the store.
type ItemCreatedEvent struct {
	ItemID     int64
	Name       string
	Quantity   int
	Price      float64
	OccurredAt time.Time
}

func (ItemCreatedEvent) EventName() string { return "inventory.item_created" }

func NewItemCreatedEvent(i *Item) ItemCreatedEvent {
	return ItemCreatedEvent{
		ItemID:     i.ID,
		Name:       i.Name,
		Quantity:   i.Quantity,
		Price:      i.Price,
		OccurredAt: time.Now().UTC(),
	}
}

// ItemUpdatedEvent is emitted after a replace or patch.
type ItemUpdatedEvent struct {
	ItemID     int64
	OccurredAt time.Time
}

func (ItemUpdatedEvent) EventName() string { return "inventory.item_updated" }

func NewItemUpdatedEvent(i *Item) ItemUpdatedEvent {
	return ItemUpdatedEvent{
		ItemID:     i.ID,
		OccurredAt: time.Now().UTC(),
	}
}

// ItemDeletedEvent is emitted when an item is removed. Orders referencing
// the id are left untouched.
type ItemDeletedEvent struct {
	ItemID     int64
	OccurredAt time.Time
}

func (ItemDeletedEvent) EventName() string { return "inventory.item_deleted" }

func NewItemDeletedEvent(id int64) ItemDeletedEvent {
	return ItemDeletedEvent{
		ItemID:     id,
		OccurredAt: time.Now().UTC(),
	}
}
