package httpx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type validateItem struct {
	Quantity int `json:"quantity" validate:"gt=0"`
}

type validateRequest struct {
	Email  string         `json:"email" validate:"required,email"`
	Name   string         `json:"name" validate:"max=5"`
	Method string         `json:"shipping_method" validate:"omitempty,oneof=a b"`
	Items  []validateItem `json:"items" validate:"dive"`
}

func TestValidate(t *testing.T) {
	assert.Empty(t, Validate(&validateRequest{Email: "a@b.co", Items: []validateItem{{Quantity: 1}}}))

	assert.Equal(t, "email is required", Validate(&validateRequest{}))
	assert.Equal(t, "email must be a valid email", Validate(&validateRequest{Email: "nope"}))
	assert.Equal(t, "name must be at most 5", Validate(&validateRequest{Email: "a@b.co", Name: "abcdefg"}))
	assert.Equal(t, "shipping_method must be one of [a b]", Validate(&validateRequest{Email: "a@b.co", Method: "c"}))
	assert.Equal(t, "items[0].quantity must be greater than 0",
		Validate(&validateRequest{Email: "a@b.co", Items: []validateItem{{Quantity: 0}}}))

	msg := Validate(&validateRequest{Email: "x", Name: "toolongname"})
	assert.Contains(t, msg, "email must be a valid email")
	assert.Contains(t, msg, "; name must be at most 5")
}
