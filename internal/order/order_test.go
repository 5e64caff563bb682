package order

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wichananm65/storefront-backend/internal/shipping"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestNewOrder_ComputesTotalFromSubmittedPrices(t *testing.T) {
	addr := "  99 Soi Sukhumvit  "
	o, err := NewOrder(42, PlaceOrderRequest{
		Items: []ItemInput{
			{ProductID: 1, Quantity: 2, Price: dec("100")},
			{ProductID: 2, Quantity: 1, Price: dec("50")},
		},
		ShippingMethod:  "home_delivery",
		ShippingCost:    dec("90"),
		ShippingAddress: &addr,
	})
	require.NoError(t, err)

	assert.True(t, o.TotalAmount.Equal(dec("250")), "total %s", o.TotalAmount)
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, shipping.MethodHomeDelivery, o.ShippingMethod)
	require.NotNil(t, o.ShippingAddress)
	assert.Equal(t, "99 Soi Sukhumvit", *o.ShippingAddress)
	require.Len(t, o.Items, 2)
	assert.True(t, o.Items[0].Price.Equal(dec("100")))
}

func TestNewOrder_DecimalPrecision(t *testing.T) {
	o, err := NewOrder(1, PlaceOrderRequest{
		Items: []ItemInput{
			{ProductID: 1, Quantity: 3, Price: dec("19.99")},
			{ProductID: 2, Quantity: 7, Price: dec("0.10")},
		},
		ShippingMethod: "shopee",
	})
	require.NoError(t, err)
	assert.Equal(t, "60.67", o.TotalAmount.StringFixed(2))
	assert.Nil(t, o.ShippingAddress)
}

// Every accepted amount must survive the two-decimal money columns unchanged,
// so the stored total still equals the sum of the stored line items.
func TestNewOrder_AmountsFitStoredScale(t *testing.T) {
	o, err := NewOrder(1, PlaceOrderRequest{
		Items: []ItemInput{
			{ProductID: 1, Quantity: 2, Price: dec("0.01")},
			{ProductID: 2, Quantity: 3, Price: dec("12.35")},
		},
		ShippingMethod: "shopee",
		ShippingCost:   dec("70.5"),
	})
	require.NoError(t, err)

	sum := decimal.Zero
	for _, li := range o.Items {
		stored := li.Price.Round(moneyScale)
		assert.True(t, stored.Equal(li.Price))
		sum = sum.Add(stored.Mul(decimal.NewFromInt(int64(li.Quantity))))
	}
	assert.True(t, o.TotalAmount.Round(moneyScale).Equal(sum), "total %s, line items %s", o.TotalAmount, sum)
	assert.Equal(t, "37.07", o.TotalAmount.StringFixed(2))

	_, err = NewOrder(1, PlaceOrderRequest{
		Items:          []ItemInput{{ProductID: 1, Quantity: 2, Price: dec("0.005")}},
		ShippingMethod: "shopee",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "items[0].price", verr.Field)
	assert.Equal(t, "must have at most 2 decimal places", verr.Msg)
}

func TestNewOrder_Validation(t *testing.T) {
	valid := func() PlaceOrderRequest {
		return PlaceOrderRequest{
			Items:          []ItemInput{{ProductID: 1, Quantity: 1, Price: dec("10")}},
			ShippingMethod: "seven_eleven",
			ShippingCost:   dec("70"),
		}
	}

	cases := map[string]struct {
		mutate func(*PlaceOrderRequest)
		field  string
	}{
		"zero quantity":      {func(r *PlaceOrderRequest) { r.Items[0].Quantity = 0 }, "items[0].quantity"},
		"negative quantity":  {func(r *PlaceOrderRequest) { r.Items[0].Quantity = -2 }, "items[0].quantity"},
		"negative price":     {func(r *PlaceOrderRequest) { r.Items[0].Price = dec("-1") }, "items[0].price"},
		"missing product":    {func(r *PlaceOrderRequest) { r.Items[0].ProductID = 0 }, "items[0].product_id"},
		"unknown method":     {func(r *PlaceOrderRequest) { r.ShippingMethod = "drone" }, "shipping_method"},
		"negative shipping":  {func(r *PlaceOrderRequest) { r.ShippingCost = dec("-5") }, "shipping_cost"},
		"sub-cent price":     {func(r *PlaceOrderRequest) { r.Items[0].Price = dec("0.005") }, "items[0].price"},
		"sub-cent shipping":  {func(r *PlaceOrderRequest) { r.ShippingCost = dec("70.001") }, "shipping_cost"},
		"oversized price":    {func(r *PlaceOrderRequest) { r.Items[0].Price = dec("10000000000") }, "items[0].price"},
		"oversized quantity": {func(r *PlaceOrderRequest) { r.Items[0].Quantity = maxQuantity + 1 }, "items[0].quantity"},
		"oversized total": {func(r *PlaceOrderRequest) {
			r.Items[0].Price = dec("9999999999.99")
			r.Items[0].Quantity = 2
		}, "items"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := valid()
			tc.mutate(&req)
			_, err := NewOrder(1, req)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(t, tc.field, verr.Field)
			assert.ErrorIs(t, err, ErrInvalidOrder)
		})
	}

	_, err := NewOrder(1, PlaceOrderRequest{ShippingMethod: "shopee"})
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "paid", "shipped", "delivered", "cancelled"} {
		st, err := ParseStatus(s)
		require.NoError(t, err)
		assert.Equal(t, Status(s), st)
	}

	for _, s := range []string{"", "PAID", "refunded", "canceled"} {
		_, err := ParseStatus(s)
		assert.ErrorIs(t, err, ErrInvalidStatus, s)
	}
}

func TestStockByProduct_SumsDuplicateLines(t *testing.T) {
	o := Order{Items: []LineItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
		{ProductID: 1, Quantity: 3},
	}}
	assert.Equal(t, map[int]int{1: 5, 2: 1}, o.stockByProduct())
}
