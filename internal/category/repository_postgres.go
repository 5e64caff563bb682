package category

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

const uniqueViolation = "23505"

// PostgresRepository implements Repository using Postgres.
type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns category rows ordered by name.
func (r *PostgresRepository) List(ctx context.Context, limit int) ([]Category, error) {
	out := make([]Category, 0)
	err := r.db.SelectContext(ctx, &out,
		`SELECT id, name, description, created_at FROM categories ORDER BY name, id LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (Category, error) {
	var c Category
	err := r.db.GetContext(ctx, &c, `SELECT id, name, description, created_at FROM categories WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Category{}, ErrNotFound
	}
	return c, err
}

func (r *PostgresRepository) Create(ctx context.Context, c Category) (Category, error) {
	var created Category
	err := r.db.GetContext(ctx, &created,
		`INSERT INTO categories (name, description) VALUES ($1, $2) RETURNING id, name, description, created_at`,
		c.Name, c.Description)
	if err != nil {
		return Category{}, mapWriteError(err)
	}
	return created, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int, c Category) (Category, error) {
	var updated Category
	err := r.db.GetContext(ctx, &updated,
		`UPDATE categories SET name = $1, description = $2 WHERE id = $3 RETURNING id, name, description, created_at`,
		c.Name, c.Description, id)
	if err != nil {
		return Category{}, mapWriteError(err)
	}
	return updated, nil
}

// Delete relies on products.category_id being ON DELETE SET NULL.
func (r *PostgresRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
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

func mapWriteError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrNameExists
	}
	return err
}
