package repository

import (
	"context"
	"database/sql"

	"github.com/unclebandit/simple-crm/internal/model"
)

type ActivityRepositoryInterface interface {
	Create(ctx context.Context, entry *model.ActivityEntry) error
	ListByCustomer(ctx context.Context, customerID int) ([]model.ActivityEntry, error)
}

type ActivityRepository struct {
	DB *sql.DB
}

// Create inserts a rendered activity entry and returns the created ID
func (r *ActivityRepository) Create(ctx context.Context, entry *model.ActivityEntry) error {
	query := `
        INSERT INTO customer_events (customer_id, event_type, message)
        VALUES ($1, $2, $3)
        RETURNING id, created_at
    `
	return r.DB.QueryRowContext(
		ctx,
		query,
		entry.CustomerID,
		entry.EventType,
		entry.Message,
	).Scan(&entry.ID, &entry.CreatedAt)
}

// ListByCustomer returns the activity log of one customer, newest first.
func (r *ActivityRepository) ListByCustomer(ctx context.Context, customerID int) ([]model.ActivityEntry, error) {
	query := `
        SELECT id, customer_id, event_type, message, created_at
        FROM customer_events
        WHERE customer_id = $1
        ORDER BY created_at DESC, id DESC
    `
	rows, err := r.DB.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []model.ActivityEntry{}
	for rows.Next() {
		var e model.ActivityEntry
		if err := rows.Scan(&e.ID, &e.CustomerID, &e.EventType, &e.Message, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

var _ ActivityRepositoryInterface = (*ActivityRepository)(nil)
