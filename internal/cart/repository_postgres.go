package cart

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type PostgresRepository struct {
	db *sqlx.DB
}

const (
	listCartQuery = `
		SELECT ci.product_id, ci.quantity, p.name AS product_name, p.price, p.image_url AS product_image, p.stock
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.created_at, ci.product_id
	`
	addCartItemQuery = `
		INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = NOW()
	`
	setCartItemQuery = `
		UPDATE cart_items SET quantity = $3, updated_at = NOW()
		WHERE user_id = $1 AND product_id = $2
	`
	removeCartItemQuery = `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`
	clearCartQuery      = `DELETE FROM cart_items WHERE user_id = $1`
)

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, userID int) ([]Item, error) {
	out := make([]Item, 0)
	if err := r.db.SelectContext(ctx, &out, listCartQuery, userID); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRepository) Add(ctx context.Context, userID, productID, qty int) error {
	_, err := r.db.ExecContext(ctx, addCartItemQuery, userID, productID, qty)
	return err
}

func (r *PostgresRepository) SetQuantity(ctx context.Context, userID, productID, qty int) error {
	return r.execAffecting(ctx, setCartItemQuery, userID, productID, qty)
}

func (r *PostgresRepository) Remove(ctx context.Context, userID, productID int) error {
	return r.execAffecting(ctx, removeCartItemQuery, userID, productID)
}

func (r *PostgresRepository) Clear(ctx context.Context, userID int) error {
	_, err := r.db.ExecContext(ctx, clearCartQuery, userID)
	return err
}

// execAffecting runs a statement that must touch exactly one existing row.
func (r *PostgresRepository) execAffecting(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
