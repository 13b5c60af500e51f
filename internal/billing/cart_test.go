package billing

import (
	"errors"
	"testing"
)

func newTestCart() *Cart {
	return NewCart(testCatalog())
}

func TestCartStartsEmpty(t *testing.T) {
	cart := newTestCart()

	if cart.HasAnySelection() {
		t.Fatal("new cart reports a selection")
	}
	quantities := cart.Quantities()
	if len(quantities) != 3 {
		t.Fatalf("quantities = %d entries, want 3", len(quantities))
	}
	for id, qty := range quantities {
		if qty != 0 {
			t.Fatalf("item %s starts at %d, want 0", id, qty)
		}
	}
}

func TestCartIncrementDecrement(t *testing.T) {
	cart := newTestCart()

	if qty, err := cart.Increment("itm-1"); err != nil || qty != 1 {
		t.Fatalf("increment = %d, %v; want 1, nil", qty, err)
	}
	if qty, err := cart.Increment("itm-1"); err != nil || qty != 2 {
		t.Fatalf("second increment = %d, %v; want 2, nil", qty, err)
	}
	if !cart.HasAnySelection() {
		t.Fatal("selection not reported after increment")
	}

	if qty, err := cart.Decrement("itm-1"); err != nil || qty != 1 {
		t.Fatalf("decrement = %d, %v; want 1, nil", qty, err)
	}
}

func TestCartDecrementClampsAtZero(t *testing.T) {
	cart := newTestCart()

	qty, err := cart.Decrement("itm-2")
	if err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if qty != 0 {
		t.Fatalf("decrement at zero = %d, want 0", qty)
	}
}

func TestCartToggle(t *testing.T) {
	cart := newTestCart()

	if qty, _ := cart.Toggle("itm-1"); qty != 1 {
		t.Fatalf("toggle from zero = %d, want 1", qty)
	}
	if _, err := cart.Increment("itm-1"); err != nil {
		t.Fatalf("increment: %v", err)
	}
	if _, err := cart.Increment("itm-1"); err != nil {
		t.Fatalf("increment: %v", err)
	}
	// Toggling any positive quantity drops it straight to zero.
	if qty, _ := cart.Toggle("itm-1"); qty != 0 {
		t.Fatalf("toggle from three = %d, want 0", qty)
	}
}

func TestCartUnknownItem(t *testing.T) {
	cart := newTestCart()

	if _, err := cart.Increment("ghost"); !errors.Is(err, ErrInvalidItem) {
		t.Fatalf("increment unknown = %v, want ErrInvalidItem", err)
	}
	if _, err := cart.Decrement("ghost"); !errors.Is(err, ErrInvalidItem) {
		t.Fatalf("decrement unknown = %v, want ErrInvalidItem", err)
	}
	if _, err := cart.Toggle("ghost"); !errors.Is(err, ErrInvalidItem) {
		t.Fatalf("toggle unknown = %v, want ErrInvalidItem", err)
	}
}

func TestCartResetIdempotent(t *testing.T) {
	cart := newTestCart()

	cart.Increment("itm-1")
	cart.Increment("itm-2")

	cart.Reset()
	if cart.HasAnySelection() {
		t.Fatal("selection survives reset")
	}

	cart.Reset()
	if cart.HasAnySelection() {
		t.Fatal("second reset changed state")
	}
}

func TestCartReloadClearsSelection(t *testing.T) {
	cart := newTestCart()
	cart.Increment("itm-1")

	catalog := testCatalog()[:2]
	cart.Reload(catalog)

	if cart.HasAnySelection() {
		t.Fatal("selection survives reload")
	}
	if _, err := cart.Increment("itm-3"); !errors.Is(err, ErrInvalidItem) {
		t.Fatalf("removed item still accepted: %v", err)
	}
}

func TestCartQuantitiesIsACopy(t *testing.T) {
	cart := newTestCart()
	cart.Increment("itm-1")

	quantities := cart.Quantities()
	quantities["itm-1"] = 99

	if qty := cart.Quantities()["itm-1"]; qty != 1 {
		t.Fatalf("external mutation leaked into cart: %d", qty)
	}
}
