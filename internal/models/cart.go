package models

// CartLine is a pending purchase intent: a product id with a quantity.
// Quantity is always >= 1; a line that would drop to zero or below is
// removed from the cart instead of being stored.
type CartLine struct {
	ProductID string `json:"id"`
	Quantity  int    `json:"qty"`
}

// Cart holds the lines of a single shopping session. Lines keep their
// insertion order and product ids are unique within a cart.
type Cart struct {
	lines []CartLine
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// Add increases the quantity for a product, creating the line if absent.
// A zero or negative quantity is ignored.
func (c *Cart) Add(productID string, qty int) {
	if qty <= 0 {
		return
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity += qty
			return
		}
	}
	c.lines = append(c.lines, CartLine{ProductID: productID, Quantity: qty})
}

// Remove deletes the line for a product, if present.
func (c *Cart) Remove(productID string) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// AdjustQuantity changes a line's quantity by delta. If the result drops
// to zero or below the line is removed, never stored as zero/negative.
func (c *Cart) AdjustQuantity(productID string, delta int) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity += delta
			if c.lines[i].Quantity <= 0 {
				c.lines = append(c.lines[:i], c.lines[i+1:]...)
			}
			return
		}
	}
}

// Quantity returns the quantity for a product, zero if absent.
func (c *Cart) Quantity(productID string) int {
	for _, line := range c.lines {
		if line.ProductID == productID {
			return line.Quantity
		}
	}
	return 0
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// ItemCount returns the total quantity across all lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// Clear removes every line.
func (c *Cart) Clear() {
	c.lines = nil
}
