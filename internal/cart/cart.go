// Package cart implements in-memory order composition: an ordered set of
// priced line items plus subtotal/tax/total computation. Carts are owned by a
// single UI session and mutated sequentially; every operation returns a new
// cart value instead of mutating shared state.
package cart

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ventadesk/ventadesk/internal/catalog"
	"github.com/ventadesk/ventadesk/internal/shared"
)

// Line is one product-and-quantity entry. TempID correlates UI rows within a
// session and is never persisted. UnitPrice is snapshotted at addition time;
// later catalog price changes do not retroactively alter an open cart.
type Line struct {
	TempID      string  `json:"temp_id"`
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
}

// Subtotal returns unit price × quantity for this line.
func (l Line) Subtotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// Cart is an ordered sequence of lines. Insertion order is preserved for
// display; it has no pricing significance.
type Cart struct {
	Lines []Line `json:"lines"`
}

// AddItem appends the product as a new line with quantity 1, snapshotting its
// price from the given catalog snapshot. Adding a product already present
// merges into the existing line by incrementing its quantity: two independent
// lines for the same product have no distinct meaning here.
func (c Cart) AddItem(snapshot []catalog.Product, productID int64) (Cart, error) {
	for i, line := range c.Lines {
		if line.ProductID == productID {
			return c.withQuantity(i, line.Quantity+1), nil
		}
	}

	for _, p := range snapshot {
		if p.ID == productID {
			next := c.clone()
			next.Lines = append(next.Lines, Line{
				TempID:      uuid.NewString(),
				ProductID:   p.ID,
				ProductName: p.Name,
				UnitPrice:   p.BasePrice,
				Quantity:    1,
			})
			return next, nil
		}
	}
	return c, fmt.Errorf("%w: product %d", shared.ErrNotFound, productID)
}

// RemoveItem drops the line with the given temp id. Removing an absent line is
// a no-op, not an error.
func (c Cart) RemoveItem(tempID string) Cart {
	for i, line := range c.Lines {
		if line.TempID == tempID {
			next := Cart{Lines: make([]Line, 0, len(c.Lines)-1)}
			next.Lines = append(next.Lines, c.Lines[:i]...)
			next.Lines = append(next.Lines, c.Lines[i+1:]...)
			return next
		}
	}
	return c
}

// UpdateQuantity replaces the quantity of the line with the given temp id.
// Quantities below 1 are rejected and leave the cart unchanged; removal is the
// only way to eliminate a line.
func (c Cart) UpdateQuantity(tempID string, quantity int) (Cart, error) {
	if quantity < 1 {
		return c, fmt.Errorf("%w: quantity must be at least 1", shared.ErrValidation)
	}
	for i, line := range c.Lines {
		if line.TempID == tempID {
			return c.withQuantity(i, quantity), nil
		}
	}
	return c, fmt.Errorf("%w: line %s", shared.ErrNotFound, tempID)
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c Cart) clone() Cart {
	next := Cart{Lines: make([]Line, len(c.Lines))}
	copy(next.Lines, c.Lines)
	return next
}

func (c Cart) withQuantity(index, quantity int) Cart {
	next := c.clone()
	next.Lines[index].Quantity = quantity
	return next
}
