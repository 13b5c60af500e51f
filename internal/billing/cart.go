package billing

import (
	"sync"

	"vajanpos/backend/internal/domain"
)

// Cart holds the live selection: a quantity per catalog item, all zero
// until the operator taps something. Safe for concurrent use; every
// mutation goes through the mutex.
type Cart struct {
	mu         sync.Mutex
	quantities map[string]int
}

func NewCart(catalog []domain.CatalogItem) *Cart {
	c := &Cart{}
	c.reload(catalog)
	return c
}

// Reload re-keys the cart against a changed catalog. All quantities
// reset to zero; a stale selection must never survive a catalog change.
func (c *Cart) Reload(catalog []domain.CatalogItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reload(catalog)
}

func (c *Cart) reload(catalog []domain.CatalogItem) {
	c.quantities = make(map[string]int, len(catalog))
	for _, item := range catalog {
		c.quantities[item.ID] = 0
	}
}

func (c *Cart) Increment(id string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	qty, exists := c.quantities[id]
	if !exists {
		return 0, ErrInvalidItem
	}
	qty++
	c.quantities[id] = qty
	return qty, nil
}

// Decrement lowers the quantity by one, clamped at zero. Decrementing
// an already-zero item is a no-op, not an error.
func (c *Cart) Decrement(id string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	qty, exists := c.quantities[id]
	if !exists {
		return 0, ErrInvalidItem
	}
	if qty > 0 {
		qty--
		c.quantities[id] = qty
	}
	return qty, nil
}

// Toggle flips an item between deselected and a single unit: zero goes
// to one, anything above zero goes back to zero.
func (c *Cart) Toggle(id string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	qty, exists := c.quantities[id]
	if !exists {
		return 0, ErrInvalidItem
	}
	if qty == 0 {
		qty = 1
	} else {
		qty = 0
	}
	c.quantities[id] = qty
	return qty, nil
}

// HasAnySelection reports whether any quantity is above zero. It is
// recomputed on every call rather than cached.
func (c *Cart) HasAnySelection() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasAnySelection()
}

func (c *Cart) hasAnySelection() bool {
	for _, qty := range c.quantities {
		if qty > 0 {
			return true
		}
	}
	return false
}

// Quantities returns a copy of the current selection keyed by item id.
func (c *Cart) Quantities() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotQuantities()
}

func (c *Cart) snapshotQuantities() map[string]int {
	out := make(map[string]int, len(c.quantities))
	for id, qty := range c.quantities {
		out[id] = qty
	}
	return out
}

// Reset zeroes every quantity. Resetting an empty cart is a no-op.
func (c *Cart) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

func (c *Cart) reset() {
	for id := range c.quantities {
		c.quantities[id] = 0
	}
}

// View builds the read model handed to the API layer.
func (c *Cart) View() domain.CartView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.CartView{
		Quantities:      c.snapshotQuantities(),
		HasAnySelection: c.hasAnySelection(),
	}
}
