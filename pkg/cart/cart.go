// Package cart holds the shopper's pending selection before checkout.
//
// The cart has no server authority: prices are snapshots taken when a product
// is added and are re-derived by the order service at submission.
package cart

import (
	"slices"
	"sync"
)

// Product is the denormalized snapshot stored with a line.
type Product struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Image    string `json:"image,omitempty"`
	Category string `json:"category,omitempty"`
}

type Line struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

func (l Line) Total() int64 {
	return l.Product.Price * int64(l.Quantity)
}

// Cart is safe for concurrent use. The zero value is not usable, use New.
type Cart struct {
	mu    sync.RWMutex
	order []string
	lines map[string]*Line
}

func New() *Cart {
	return &Cart{lines: make(map[string]*Line)}
}

// AddItem increments an existing line or inserts a new one. Quantities
// below 1 count as 1.
func (c *Cart) AddItem(p Product, quantity int) {
	quantity = max(quantity, 1)

	c.mu.Lock()
	defer c.mu.Unlock()

	if l, ok := c.lines[p.ID]; ok {
		l.Quantity += quantity
		return
	}
	c.lines[p.ID] = &Line{Product: p, Quantity: quantity}
	c.order = append(c.order, p.ID)
}

// UpdateQuantity sets the quantity of an existing line, clamped to 1.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if l, ok := c.lines[productID]; ok {
		l.Quantity = max(quantity, 1)
	}
}

func (c *Cart) RemoveItem(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.lines[productID]; !ok {
		return
	}
	delete(c.lines, productID)
	c.order = slices.DeleteFunc(c.order, func(id string) bool { return id == productID })
}

// Clear empties the cart. Call it only once an order reached a terminal
// successful state.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = make(map[string]*Line)
	c.order = nil
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []Line {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		items = append(items, *c.lines[id])
	}
	return items
}

func (c *Cart) Quantity(productID string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if l, ok := c.lines[productID]; ok {
		return l.Quantity
	}
	return 0
}

// Count is the number of units across all lines.
func (c *Cart) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Total is recomputed on every call so it follows the current snapshots.
func (c *Cart) Total() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var total int64
	for _, l := range c.lines {
		total += l.Total()
	}
	return total
}

func (c *Cart) IsEmpty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lines) == 0
}
