package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/unclebandit/simple-crm/internal/errors"
	"github.com/unclebandit/simple-crm/internal/model"
	"github.com/unclebandit/simple-crm/internal/repository"
)

var customerColumns = []string{"id", "name", "email", "phone", "status", "created_at"}

func newMockRepo(t *testing.T) (*repository.CustomerRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &repository.CustomerRepository{DB: db}, mock
}

func TestCreateAssignsDefaultStatus(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO customers`).
		WithArgs("Alice", "alice@example.com", "0700", "Lead").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(42, now))

	c := &model.Customer{Name: "Alice", Email: "alice@example.com", Phone: "0700"}
	require.NoError(t, repo.Create(context.Background(), c))

	assert.Equal(t, 42, c.ID)
	assert.Equal(t, model.StatusLead, c.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAllPreservesOrder(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT id, name, email, phone, status, created_at\s+FROM customers\s+ORDER BY id`).
		WillReturnRows(sqlmock.NewRows(customerColumns).
			AddRow(1, "Alice", "a@x.io", "1", "Lead", now).
			AddRow(2, "Bob", "b@x.io", "2", "Active", now))

	customers, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, 1, customers[0].ID)
	assert.Equal(t, model.StatusActive, customers[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAllEmptyIsNotNil(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`FROM customers`).WillReturnRows(sqlmock.NewRows(customerColumns))

	customers, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, customers)
	assert.Empty(t, customers)
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`FROM customers\s+WHERE id = \$1`).WithArgs(9).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 9)
	assert.True(t, appErrors.IsNotFound(err))
}

func TestUpdateStatusReturnsRow(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`UPDATE customers SET status = \$1`).
		WithArgs("Active", 3).
		WillReturnRows(sqlmock.NewRows(customerColumns).AddRow(3, "Cara", "c@x.io", "3", "Active", now))

	c, err := repo.UpdateStatus(context.Background(), 3, model.StatusActive)
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, c.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusMissing(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`UPDATE customers`).WithArgs("Inactive", 5).WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateStatus(context.Background(), 5, model.StatusInactive)
	assert.True(t, appErrors.IsNotFound(err))
}

func TestDeleteMissing(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`DELETE FROM customers`).WithArgs(5).WillReturnError(sql.ErrNoRows)

	_, err := repo.Delete(context.Background(), 5)
	assert.True(t, appErrors.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
