// Package shipping owns the closed set of delivery methods, their flat fees
// and the pickup-store directories offered at checkout.
package shipping

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrInvalidMethod = errors.New("invalid shipping method")

type Method string

const (
	MethodSevenEleven  Method = "seven_eleven"
	MethodShopee       Method = "shopee"
	MethodHomeDelivery Method = "home_delivery"
)

// Quote is the fee and delivery estimate for one method.
type Quote struct {
	Method        Method          `json:"shipping_method"`
	Fee           decimal.Decimal `json:"shipping_fee"`
	EstimatedDays int             `json:"estimated_days"`
}

var quotes = map[Method]Quote{
	MethodSevenEleven:  {Method: MethodSevenEleven, Fee: decimal.NewFromInt(70), EstimatedDays: 3},
	MethodShopee:       {Method: MethodShopee, Fee: decimal.NewFromInt(70), EstimatedDays: 3},
	MethodHomeDelivery: {Method: MethodHomeDelivery, Fee: decimal.NewFromInt(90), EstimatedDays: 2},
}

// Methods lists every accepted method in display order.
func Methods() []Method {
	return []Method{MethodSevenEleven, MethodShopee, MethodHomeDelivery}
}

// ParseMethod validates a client-supplied token against the closed set.
func ParseMethod(s string) (Method, error) {
	m := Method(s)
	if _, ok := quotes[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidMethod, s)
	}
	return m, nil
}

// Calculate returns the flat fee for m.
func Calculate(m Method) (Quote, error) {
	q, ok := quotes[m]
	if !ok {
		return Quote{}, fmt.Errorf("%w: %q", ErrInvalidMethod, string(m))
	}
	return q, nil
}

// RequiresStore reports whether the method delivers to a pickup store.
func (m Method) RequiresStore() bool {
	return m == MethodSevenEleven || m == MethodShopee
}
