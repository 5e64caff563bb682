package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Price is the live catalog price; orders keep
// their own snapshot of it.
type Product struct {
	ID          int             `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Stock       int             `json:"stock" db:"stock"`
	ImageURL    *string         `json:"image_url,omitempty" db:"image_url"`
	CategoryID  *int            `json:"category_id,omitempty" db:"category_id"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}
