package models

import "github.com/shopspring/decimal"

// CartItem is a single cart line. Price is captured when the line is added.
type CartItem struct {
	ID       string  `json:"_id,omitempty"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Subtotal returns price times quantity.
func (i CartItem) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(i.Price).Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is scoped server-side by CartID (see the session package).
type Cart struct {
	ID          string     `json:"_id,omitempty"`
	CartID      string     `json:"cartId"`
	Items       []CartItem `json:"items"`
	TotalAmount *float64   `json:"totalAmount,omitempty"`
}

// Item looks up the line for a product.
func (c *Cart) Item(productID string) (CartItem, bool) {
	if c == nil {
		return CartItem{}, false
	}
	for _, item := range c.Items {
		if item.Product.ID == productID {
			return item, true
		}
	}
	return CartItem{}, false
}

// Total prefers the server-computed total and falls back to summing lines.
func (c *Cart) Total() decimal.Decimal {
	if c == nil {
		return decimal.Zero
	}
	if c.TotalAmount != nil {
		return decimal.NewFromFloat(*c.TotalAmount)
	}
	return SumItems(c.Items)
}

// Count returns the number of units across all lines.
func (c *Cart) Count() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// IsEmpty reports whether the cart is missing or has no lines.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// SumItems totals a set of lines.
func SumItems(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}
