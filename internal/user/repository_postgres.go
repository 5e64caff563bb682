package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

type PostgresRepository struct {
	db *sqlx.DB
}

const (
	userColumns = `id, email, password_hash, name, role, created_at, updated_at`

	getUserByIDQuery    = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	getUserByEmailQuery = `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	insertUserQuery     = `
		INSERT INTO users (email, password_hash, name, role)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns
	updateRoleQuery = `
		UPDATE users SET role = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + userColumns

	uniqueViolation = "23505"
)

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (User, error) {
	var u User
	if err := r.db.GetContext(ctx, &u, getUserByIDQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	var u User
	if err := r.db.GetContext(ctx, &u, getUserByEmailQuery, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) Create(ctx context.Context, u User) (User, error) {
	var created User
	err := r.db.GetContext(ctx, &created, insertUserQuery, u.Email, u.Password, u.Name, u.Role)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return User{}, ErrEmailExists
		}
		return User{}, err
	}
	return created, nil
}

func (r *PostgresRepository) UpdateRole(ctx context.Context, id int, role Role) (User, error) {
	var u User
	if err := r.db.GetContext(ctx, &u, updateRoleQuery, role, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}
