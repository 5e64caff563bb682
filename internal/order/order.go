package order

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wichananm65/storefront-backend/internal/shipping"
)

// Status is the closed set of order states. ParseStatus is the only way a
// client-supplied token becomes a Status.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

var statuses = []Status{StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled}

func ParseStatus(s string) (Status, error) {
	for _, st := range statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Order is one checkout event. Line items are written once with the header
// and never change afterwards.
type Order struct {
	ID              int             `json:"id" db:"id"`
	UserID          int             `json:"user_id" db:"user_id"`
	UserEmail       *string         `json:"user_email,omitempty" db:"user_email"`
	TotalAmount     decimal.Decimal `json:"total_amount" db:"total_amount"`
	ShippingMethod  shipping.Method `json:"shipping_method" db:"shipping_method"`
	ShippingCost    decimal.Decimal `json:"shipping_cost" db:"shipping_cost"`
	ShippingAddress *string         `json:"shipping_address" db:"shipping_address"`
	Status          Status          `json:"status" db:"status"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
	Items           []LineItem      `json:"items" db:"-"`
}

// LineItem keeps the unit price captured at checkout. Product name and image
// are read from the catalog when the order is loaded.
type LineItem struct {
	ID           int             `json:"id" db:"id"`
	OrderID      int             `json:"order_id" db:"order_id"`
	ProductID    int             `json:"product_id" db:"product_id"`
	Quantity     int             `json:"quantity" db:"quantity"`
	Price        decimal.Decimal `json:"price" db:"price"`
	ProductName  *string         `json:"product_name" db:"product_name"`
	ProductImage *string         `json:"product_image" db:"product_image"`
}

// Subtotal is price × quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

type ItemInput struct {
	ProductID int             `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// PlaceOrderRequest is the checkout payload. Prices are taken as submitted.
type PlaceOrderRequest struct {
	Items           []ItemInput     `json:"items"`
	ShippingMethod  string          `json:"shipping_method"`
	ShippingCost    decimal.Decimal `json:"shipping_cost"`
	ShippingAddress *string         `json:"shipping_address,omitempty"`
}

const (
	// moneyScale is the number of decimal places stored for every amount.
	moneyScale = 2
	// maxQuantity is the largest quantity the order_items.quantity column holds.
	maxQuantity = math.MaxInt32
)

// maxAmount is the largest value a NUMERIC(12, 2) money column holds.
var maxAmount = decimal.RequireFromString("9999999999.99")

// checkAmount rejects negative amounts, amounts finer than a cent and
// amounts the money columns cannot store.
func checkAmount(field string, v decimal.Decimal) error {
	switch {
	case v.IsNegative():
		return &ValidationError{Field: field, Msg: "must not be negative"}
	case !v.Equal(v.Round(moneyScale)):
		return &ValidationError{Field: field, Msg: "must have at most 2 decimal places"}
	case v.GreaterThan(maxAmount):
		return &ValidationError{Field: field, Msg: "must be at most " + maxAmount.StringFixed(moneyScale)}
	}
	return nil
}

// NewOrder validates req and builds the pending order to persist for userID,
// with the total computed from the submitted lines.
func NewOrder(userID int, req PlaceOrderRequest) (Order, error) {
	if len(req.Items) == 0 {
		return Order{}, ErrEmptyOrder
	}

	items := make([]LineItem, 0, len(req.Items))
	total := decimal.Zero
	for i, in := range req.Items {
		field := fmt.Sprintf("items[%d]", i)
		if in.ProductID <= 0 {
			return Order{}, &ValidationError{Field: field + ".product_id", Msg: "must be a positive id"}
		}
		if in.Quantity <= 0 {
			return Order{}, &ValidationError{Field: field + ".quantity", Msg: "must be greater than 0"}
		}
		if in.Quantity > maxQuantity {
			return Order{}, &ValidationError{Field: field + ".quantity", Msg: fmt.Sprintf("must be at most %d", maxQuantity)}
		}
		if err := checkAmount(field+".price", in.Price); err != nil {
			return Order{}, err
		}
		li := LineItem{ProductID: in.ProductID, Quantity: in.Quantity, Price: in.Price}
		total = total.Add(li.Subtotal())
		items = append(items, li)
	}

	method, err := shipping.ParseMethod(req.ShippingMethod)
	if err != nil {
		return Order{}, &ValidationError{Field: "shipping_method", Msg: err.Error()}
	}
	if err := checkAmount("shipping_cost", req.ShippingCost); err != nil {
		return Order{}, err
	}
	if total.GreaterThan(maxAmount) {
		return Order{}, &ValidationError{Field: "items", Msg: "order total exceeds " + maxAmount.StringFixed(moneyScale)}
	}

	var address *string
	if req.ShippingAddress != nil {
		if a := strings.TrimSpace(*req.ShippingAddress); a != "" {
			address = &a
		}
	}

	return Order{
		UserID:          userID,
		TotalAmount:     total,
		ShippingMethod:  method,
		ShippingCost:    req.ShippingCost,
		ShippingAddress: address,
		Status:          StatusPending,
		Items:           items,
	}, nil
}

// stockByProduct sums the ordered quantity per product.
func (o Order) stockByProduct() map[int]int {
	qty := make(map[int]int, len(o.Items))
	for _, li := range o.Items {
		qty[li.ProductID] += li.Quantity
	}
	return qty
}

func (o Order) productIDs() []int {
	ids := make([]int, 0, len(o.Items))
	for _, li := range o.Items {
		ids = append(ids, li.ProductID)
	}
	return ids
}
