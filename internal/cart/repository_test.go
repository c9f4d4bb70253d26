package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestRepository_FindByUser(t *testing.T) {
	ctx := context.Background()

	t.Run("With items", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`SELECT id, user_id, subtotal, tax, shipping_cost, total_amount, updated_at\s+FROM carts`).
			WithArgs(7).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "subtotal", "tax", "shipping_cost", "total_amount", "updated_at"}).
				AddRow(10, 7, "600", "108", "0", "708", time.Now()))
		mock.ExpectQuery(`FROM cart_items ci\s+JOIN products p`).
			WithArgs(10).
			WillReturnRows(sqlmock.NewRows([]string{"product_id", "name", "image", "quantity", "price"}).
				AddRow(1, "Hammer", "h.png", 2, "300"))

		c, err := repo.FindByUser(ctx, 7)
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, uint(10), c.ID)
		require.Len(t, c.Items, 1)
		assert.Equal(t, "Hammer", c.Items[0].Name)
		assert.True(t, c.TotalAmount.Equal(d("708")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No cart", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`FROM carts`).WithArgs(7).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		c, err := repo.FindByUser(ctx, 7)
		assert.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("Query error", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`FROM carts`).WillReturnError(errors.New("db down"))

		_, err := repo.FindByUser(ctx, 7)
		assert.Error(t, err)
	})
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMockRepo(t)
	c := &Cart{UserID: 7}
	DefaultPricing().Apply(c)

	mock.ExpectQuery(`INSERT INTO carts .* ON CONFLICT \(user_id\)`).
		WithArgs(7, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "updated_at"}).AddRow(11, time.Now()))

	require.NoError(t, repo.Create(context.Background(), c))
	assert.Equal(t, uint(11), c.ID)
}

func TestRepository_Save(t *testing.T) {
	ctx := context.Background()
	c := &Cart{ID: 10, UserID: 7, Items: []Item{
		{ProductID: 1, Quantity: 2, Price: d("300")},
		{ProductID: 2, Quantity: 1, Price: d("20")},
	}}
	DefaultPricing().Apply(c)

	t.Run("Commit", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE carts\s+SET subtotal`).
			WithArgs(c.Subtotal, c.Tax, c.ShippingCost, c.TotalAmount, 10).
			WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(time.Now()))
		mock.ExpectExec(`DELETE FROM cart_items WHERE cart_id = \$1`).WithArgs(10).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO cart_items`).WithArgs(10, 1, 2, d("300")).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(`INSERT INTO cart_items`).WithArgs(10, 2, 1, d("20")).
			WillReturnResult(sqlmock.NewResult(2, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Save(ctx, c))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rollback on item failure", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE carts`).
			WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(time.Now()))
		mock.ExpectExec(`DELETE FROM cart_items`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`INSERT INTO cart_items`).WillReturnError(errors.New("fk violation"))
		mock.ExpectRollback()

		assert.Error(t, repo.Save(ctx, c))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
