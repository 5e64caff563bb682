package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/wichananm65/storefront-backend/internal/database"
)

const foreignKeyViolation = "23503"

type PostgresRepository struct {
	db *sqlx.DB
}

const (
	orderColumns = `id, user_id, total_amount, shipping_method, shipping_cost, shipping_address, status, created_at, updated_at`

	insertOrderQuery = `
		INSERT INTO orders (user_id, total_amount, shipping_method, shipping_cost, shipping_address, status)
		VALUES ($1, $2, $3, $4, $5, 'pending')
		RETURNING ` + orderColumns

	insertLineItemQuery = `
		INSERT INTO order_items (order_id, product_id, quantity, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, order_id, product_id, quantity, price`

	// the stock guard makes an oversold line abort the whole checkout
	decrementStockQuery = `UPDATE products SET stock = stock - $1, updated_at = NOW() WHERE id = $2 AND stock >= $1`

	clearCartQuery = `DELETE FROM cart_items WHERE user_id = $1`

	getOrderForUserQuery = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 AND user_id = $2`

	listOrdersByUserQuery = `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC, id DESC`

	listAllOrdersQuery = `
		SELECT o.id, o.user_id, o.total_amount, o.shipping_method, o.shipping_cost, o.shipping_address,
		       o.status, o.created_at, o.updated_at, u.email AS user_email
		FROM orders o
		LEFT JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC, o.id DESC`

	listLineItemsQuery = `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price,
		       p.name AS product_name, p.image_url AS product_image
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1::int[])
		ORDER BY oi.order_id, oi.id`

	// GREATEST keeps updated_at strictly increasing even when two writes land
	// within the same clock tick.
	updateStatusQuery = `
		UPDATE orders
		SET status = $1, updated_at = GREATEST(NOW(), updated_at + INTERVAL '1 microsecond')
		WHERE id = $2
		RETURNING ` + orderColumns
)

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, o Order) (Order, error) {
	var created Order
	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &created, insertOrderQuery,
			o.UserID, o.TotalAmount, o.ShippingMethod, o.ShippingCost, o.ShippingAddress); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		created.Items = make([]LineItem, 0, len(o.Items))
		for _, in := range o.Items {
			var li LineItem
			if err := tx.GetContext(ctx, &li, insertLineItemQuery, created.ID, in.ProductID, in.Quantity, in.Price); err != nil {
				if isForeignKeyViolation(err) {
					return &ValidationError{Field: "items", Msg: fmt.Sprintf("product %d does not exist", in.ProductID)}
				}
				return fmt.Errorf("insert line item for product %d: %w", in.ProductID, err)
			}

			res, err := tx.ExecContext(ctx, decrementStockQuery, in.Quantity, in.ProductID)
			if err != nil {
				return fmt.Errorf("decrement stock for product %d: %w", in.ProductID, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("%w: product %d", ErrStockUnavailable, in.ProductID)
			}
			created.Items = append(created.Items, li)
		}

		if _, err := tx.ExecContext(ctx, clearCartQuery, o.UserID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return Order{}, err
	}
	return created, nil
}

func (r *PostgresRepository) GetByIDForUser(ctx context.Context, id, userID int) (Order, error) {
	var o Order
	if err := r.db.GetContext(ctx, &o, getOrderForUserQuery, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}

	orders := []Order{o}
	if err := r.attachItems(ctx, orders); err != nil {
		return Order{}, err
	}
	return orders[0], nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int) ([]Order, error) {
	orders := make([]Order, 0)
	if err := r.db.SelectContext(ctx, &orders, listOrdersByUserQuery, userID); err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]Order, error) {
	orders := make([]Order, 0)
	if err := r.db.SelectContext(ctx, &orders, listAllOrdersQuery); err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id int, s Status) (Order, error) {
	var o Order
	if err := r.db.GetContext(ctx, &o, updateStatusQuery, s, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}
	out := []Order{o}
	if err := r.attachItems(ctx, out); err != nil {
		return Order{}, err
	}
	return out[0], nil
}

// attachItems loads the line items of every order in one query.
func (r *PostgresRepository) attachItems(ctx context.Context, orders []Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	items := make([]LineItem, 0)
	if err := r.db.SelectContext(ctx, &items, listLineItemsQuery, pq.Array(ids)); err != nil {
		return fmt.Errorf("load line items: %w", err)
	}

	byOrder := make(map[int][]LineItem, len(orders))
	for _, li := range items {
		byOrder[li.OrderID] = append(byOrder[li.OrderID], li)
	}
	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
		if orders[i].Items == nil {
			orders[i].Items = []LineItem{}
		}
	}
	return nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}
