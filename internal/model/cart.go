package model

import "github.com/shopspring/decimal"

// CartItem is a catalog product plus the quantity in the cart.
// Quantity is always >= 1; an item that would drop below 1 is removed.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// Subtotal returns price * quantity for this line.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart holds the ordered list of cart items. The zero value is an empty
// cart. Mutations preserve insertion order and keep at most one item per
// product id.
type Cart struct {
	Items []CartItem `json:"items"`
}

// Add increments the quantity of an existing item or appends a new one
// with quantity 1.
func (c *Cart) Add(p Product) {
	for idx := range c.Items {
		if c.Items[idx].ID == p.ID {
			c.Items[idx].Quantity++
			return
		}
	}
	c.Items = append(c.Items, CartItem{Product: p, Quantity: 1})
}

// UpdateQuantity sets the quantity of an item exactly. A quantity below 1
// removes the item instead.
func (c *Cart) UpdateQuantity(productID, quantity int) {
	if quantity < 1 {
		c.Remove(productID)
		return
	}
	for idx := range c.Items {
		if c.Items[idx].ID == productID {
			c.Items[idx].Quantity = quantity
			return
		}
	}
}

// Remove deletes the item for productID. Absence is a no-op.
func (c *Cart) Remove(productID int) {
	for idx := range c.Items {
		if c.Items[idx].ID == productID {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			return
		}
	}
}

// TotalItems returns the sum of all quantities.
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice returns the sum of line subtotals rounded to 2 decimal places.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total.Round(2)
}
