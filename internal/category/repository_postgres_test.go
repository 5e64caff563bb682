package category

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestList(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery("FROM categories ORDER BY name").
		WithArgs(100).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "created_at"}).
			AddRow(2, "Food", nil, now).
			AddRow(1, "Toys", "fun", now))

	items, err := repo.List(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Nil(t, items[0].Description)
	assert.Equal(t, "fun", *items[1].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("FROM categories WHERE id = \\$1").
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "created_at"}))

	_, err := repo.GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateName(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO categories").
		WithArgs("Toys", nil).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})

	_, err := repo.Create(context.Background(), Category{Name: "Toys"})
	assert.ErrorIs(t, err, ErrNameExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()
	cols := []string{"id", "name", "description", "created_at"}

	mock.ExpectQuery("UPDATE categories SET name = \\$1, description = \\$2 WHERE id = \\$3").
		WithArgs("Beds", nil, 3).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(3, "Beds", nil, now))
	c, err := repo.Update(context.Background(), 3, Category{Name: "Beds"})
	require.NoError(t, err)
	assert.Equal(t, "Beds", c.Name)

	mock.ExpectQuery("UPDATE categories").
		WithArgs("Beds", nil, 9).
		WillReturnRows(sqlmock.NewRows(cols))
	_, err = repo.Update(context.Background(), 9, Category{Name: "Beds"})
	assert.ErrorIs(t, err, ErrNotFound)

	mock.ExpectQuery("UPDATE categories").
		WithArgs("Food", nil, 3).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})
	_, err = repo.Update(context.Background(), 3, Category{Name: "Food"})
	assert.ErrorIs(t, err, ErrNameExists)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM categories WHERE id = \\$1").WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), 3))

	mock.ExpectExec("DELETE FROM categories").WithArgs(9).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), 9), ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
