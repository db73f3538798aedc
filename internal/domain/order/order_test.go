package order

import (
	"errors"
	"testing"
)

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{"pending", "confirmed", "shipped", "delivered", "cancelled"} {
		if _, err := ParseStatus(raw); err != nil {
			t.Errorf("expected %q to parse, got %v", raw, err)
		}
	}

	if _, err := ParseStatus("teleported"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := ParseStatus(""); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus for empty status, got %v", err)
	}
}

func TestNew(t *testing.T) {
	o, err := New("Ada", []int64{1, 2}, StatusPending)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Customer != "Ada" || len(o.Items) != 2 || o.Status != StatusPending {
		t.Errorf("unexpected order: %+v", o)
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New("", nil, StatusPending); !errors.Is(err, ErrInvalidCustomer) {
		t.Errorf("expected ErrInvalidCustomer, got %v", err)
	}
	if _, err := New("Ada", nil, Status("bogus")); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestApply_StatusOnly(t *testing.T) {
	o, _ := New("Ada", []int64{1}, StatusPending)

	shipped := StatusShipped
	if err := o.Apply(Patch{Status: &shipped}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if o.Status != StatusShipped {
		t.Errorf("expected shipped, got %s", o.Status)
	}
	if o.Customer != "Ada" || len(o.Items) != 1 {
		t.Errorf("unspecified fields changed: %+v", o)
	}
}

func TestApply_ClearsItemsWithEmptySlice(t *testing.T) {
	o, _ := New("Ada", []int64{1, 2}, StatusPending)

	empty := []int64{}
	if err := o.Apply(Patch{Items: &empty}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(o.Items) != 0 {
		t.Errorf("expected empty items, got %v", o.Items)
	}
}

func TestApply_InvalidStatusLeavesOrderUntouched(t *testing.T) {
	o, _ := New("Ada", []int64{1}, StatusPending)

	bogus := Status("bogus")
	customer := "Grace"
	err := o.Apply(Patch{Customer: &customer, Status: &bogus})
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if o.Customer != "Ada" || o.Status != StatusPending {
		t.Errorf("failed patch mutated order: %+v", o)
	}
}

func TestClone_DoesNotAliasItems(t *testing.T) {
	o, _ := New("Ada", []int64{1, 2}, StatusPending)
	o.ID = 7

	clone := o.Clone()
	clone.Items[0] = 99

	if o.Items[0] != 1 {
		t.Errorf("clone aliases item slice")
	}
}
