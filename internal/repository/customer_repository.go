package repository

import (
	"context"
	"database/sql"
	"errors"

	appErrors "github.com/unclebandit/simple-crm/internal/errors"
	"github.com/unclebandit/simple-crm/internal/model"
)

// CustomerRepositoryInterface defines methods used by service
type CustomerRepositoryInterface interface {
	Create(ctx context.Context, c *model.Customer) error
	GetByID(ctx context.Context, id int) (*model.Customer, error)
	ListAll(ctx context.Context) ([]model.Customer, error)
	UpdateStatus(ctx context.Context, id int, status model.Status) (*model.Customer, error)
	Delete(ctx context.Context, id int) (*model.Customer, error)
}

// CustomerRepository is the concrete implementation
type CustomerRepository struct {
	DB *sql.DB
}

// Create inserts c and fills in the generated id, status and timestamp.
func (r *CustomerRepository) Create(ctx context.Context, c *model.Customer) error {
	if c.Status == "" {
		c.Status = model.DefaultStatus
	}
	query := `
        INSERT INTO customers (name, email, phone, status)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `
	return r.DB.QueryRowContext(ctx, query, c.Name, c.Email, c.Phone, c.Status).Scan(&c.ID, &c.CreatedAt)
}

// GetByID fetches a customer by ID
func (r *CustomerRepository) GetByID(ctx context.Context, id int) (*model.Customer, error) {
	query := `
        SELECT id, name, email, phone, status, created_at
        FROM customers
        WHERE id = $1
    `
	var c model.Customer
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Status, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewCustomerNotFound(id)
		}
		return nil, err
	}
	return &c, nil
}

// ListAll fetches every customer in id order.
func (r *CustomerRepository) ListAll(ctx context.Context) ([]model.Customer, error) {
	query := `
        SELECT id, name, email, phone, status, created_at
        FROM customers
        ORDER BY id
    `
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []model.Customer{}
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Status, &c.CreatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// UpdateStatus sets the status and returns the updated row.
func (r *CustomerRepository) UpdateStatus(ctx context.Context, id int, status model.Status) (*model.Customer, error) {
	query := `
        UPDATE customers SET status = $1
        WHERE id = $2
        RETURNING id, name, email, phone, status, created_at
    `
	var c model.Customer
	err := r.DB.QueryRowContext(ctx, query, status, id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Status, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewCustomerNotFound(id)
		}
		return nil, err
	}
	return &c, nil
}

// Delete removes the customer and returns the removed row.
func (r *CustomerRepository) Delete(ctx context.Context, id int) (*model.Customer, error) {
	query := `
        DELETE FROM customers
        WHERE id = $1
        RETURNING id, name, email, phone, status, created_at
    `
	var c model.Customer
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Status, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewCustomerNotFound(id)
		}
		return nil, err
	}
	return &c, nil
}

var _ CustomerRepositoryInterface = (*CustomerRepository)(nil)
