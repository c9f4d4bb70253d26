package user

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	u := User{Name: "Jane", Email: "jane@example.com", Password: "hash", Role: RoleUser}

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(u.Name, u.Email, u.Password, u.Role, u.Phone).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(5, now))

		created, err := repo.Create(context.Background(), u)
		assert.NoError(t, err)
		assert.Equal(t, uint(5), created.ID)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(&pq.Error{Code: "23505"})

		_, err := repo.Create(context.Background(), u)
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("Other error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(errors.New("db error"))

		_, err := repo.Create(context.Background(), u)
		assert.EqualError(t, err, "db error")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	cols := []string{"id", "name", "email", "password", "role", "phone", "created_at"}

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, email, password, role, phone, created_at FROM users WHERE email").
			WithArgs("a@b.test").
			WillReturnRows(sqlmock.NewRows(cols).AddRow(1, "A", "a@b.test", "hash", "admin", nil, time.Now()))

		u, err := repo.FindByEmail(context.Background(), "a@b.test")
		assert.NoError(t, err)
		assert.Equal(t, RoleAdmin, u.Role)
		assert.Nil(t, u.Phone)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("FROM users WHERE email").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByEmail(context.Background(), "none@b.test")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestRepository_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("FROM users WHERE id").
		WithArgs(uint(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password", "role", "phone", "created_at"}).
			AddRow(4, "B", "b@b.test", "hash", "user", "0800", time.Now()))

	u, err := repo.FindByID(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "0800", *u.Phone)
}
