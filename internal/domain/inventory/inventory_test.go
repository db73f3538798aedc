package inventory

import (
	"errors"
	"strings"
	"testing"
)

func TestNewItem(t *testing.T) {
	item, err := NewItem("Widget", 10, 12.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.ID != 0 {
		t.Errorf("expected unassigned id, got %d", item.ID)
	}
	if item.Name != "Widget" || item.Quantity != 10 || item.Price != 12.5 {
		t.Errorf("unexpected item: %+v", item)
	}
}

func TestNewItem_Validation(t *testing.T) {
	cases := []struct {
		name     string
		itemName string
		quantity int
		price    float64
		want     error
	}{
		{"empty name", "", 1, 1, ErrInvalidName},
		{"name too long", strings.Repeat("x", 101), 1, 1, ErrInvalidName},
		{"negative quantity", "Widget", -1, 1, ErrInvalidQuantity},
		{"negative price", "Widget", 1, -0.01, ErrInvalidPrice},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewItem(tc.itemName, tc.quantity, tc.price); !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestApply_PartialFields(t *testing.T) {
	item, _ := NewItem("Widget", 10, 12.5)

	price := 9.99
	if err := item.Apply(Patch{Price: &price}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if item.Price != 9.99 {
		t.Errorf("expected price 9.99, got %v", item.Price)
	}
	if item.Name != "Widget" || item.Quantity != 10 {
		t.Errorf("unspecified fields changed: %+v", item)
	}
}

func TestApply_InvalidFieldLeavesItemUntouched(t *testing.T) {
	item, _ := NewItem("Widget", 10, 12.5)

	quantity := -5
	name := "Gadget"
	err := item.Apply(Patch{Name: &name, Quantity: &quantity})
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}

	if item.Name != "Widget" || item.Quantity != 10 {
		t.Errorf("failed patch mutated item: %+v", item)
	}
}

func TestClone(t *testing.T) {
	item, _ := NewItem("Widget", 10, 12.5)
	item.ID = 3

	clone := item.Clone()
	clone.Name = "changed"

	if item.Name != "Widget" {
		t.Errorf("clone aliases original")
	}
	if clone.ID != 3 {
		t.Errorf("clone lost id: %d", clone.ID)
	}
}
