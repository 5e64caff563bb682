package cart

import "github.com/shopspring/decimal"

// Item is one pre-checkout row of a user's cart, joined with the live catalog.
type Item struct {
	ProductID int             `json:"product_id" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	Name      string          `json:"product_name" db:"product_name"`
	Price     decimal.Decimal `json:"price" db:"price"`
	ImageURL  *string         `json:"product_image,omitempty" db:"product_image"`
	Stock     int             `json:"stock" db:"stock"`
}

// Cart is the response shape for a user's whole cart.
type Cart struct {
	Items         []Item          `json:"items"`
	TotalQuantity int             `json:"total_quantity"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

func newCart(items []Item) Cart {
	c := Cart{Items: items, Subtotal: decimal.Zero}
	if c.Items == nil {
		c.Items = []Item{}
	}
	for _, it := range c.Items {
		c.TotalQuantity += it.Quantity
		c.Subtotal = c.Subtotal.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return c
}
