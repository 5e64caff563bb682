package product

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const foreignKeyViolation = "23503"

type PostgresRepository struct {
	db *sqlx.DB
}

const (
	productColumns = `id, name, description, price, stock, image_url, category_id, created_at, updated_at`

	listProductsQuery = `SELECT ` + productColumns + ` FROM products ORDER BY id`

	listProductsByCategoryQuery = `SELECT ` + productColumns + ` FROM products WHERE category_id = $1 ORDER BY id`

	getProductByIDQuery = `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	listProductsByIDsQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = ANY($1::int[])
		ORDER BY array_position($1::int[], id)
	`
	insertProductQuery = `
		INSERT INTO products (name, description, price, stock, image_url, category_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + productColumns
	updateProductQuery = `
		UPDATE products
		SET name = $1,
			description = $2,
			price = $3,
			stock = $4,
			image_url = $5,
			category_id = $6,
			updated_at = NOW()
		WHERE id = $7
		RETURNING ` + productColumns

	// cart rows cascade; order_items has no cascade and blocks the delete
	deleteProductQuery = `DELETE FROM products WHERE id = $1`
)

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]Product, error) {
	out := make([]Product, 0)
	if err := r.db.SelectContext(ctx, &out, listProductsQuery); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRepository) ListByCategory(ctx context.Context, categoryID int) ([]Product, error) {
	out := make([]Product, 0)
	if err := r.db.SelectContext(ctx, &out, listProductsByCategoryQuery, categoryID); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (Product, error) {
	var p Product
	if err := r.db.GetContext(ctx, &p, getProductByIDQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

// ListByIDs returns products matching ids, ordered like ids. An empty slice
// returns immediately without a query.
func (r *PostgresRepository) ListByIDs(ctx context.Context, ids []int) ([]Product, error) {
	out := make([]Product, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	if err := r.db.SelectContext(ctx, &out, listProductsByIDsQuery, pq.Array(ids)); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p Product) (Product, error) {
	var created Product
	err := r.db.GetContext(ctx, &created, insertProductQuery, p.Name, p.Description, p.Price, p.Stock, p.ImageURL, p.CategoryID)
	if err != nil {
		return Product{}, err
	}
	return created, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int, p Product) (Product, error) {
	var updated Product
	err := r.db.GetContext(ctx, &updated, updateProductQuery, p.Name, p.Description, p.Price, p.Stock, p.ImageURL, p.CategoryID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, deleteProductQuery, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return ErrInUse
		}
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
