// internal/model/customer_event.go
package model

import "time"

// EventType names a customer lifecycle transition.
type EventType string

const (
	EventCustomerCreated       EventType = "customer.created"
	EventCustomerStatusChanged EventType = "customer.status_changed"
	EventCustomerDeleted       EventType = "customer.deleted"
)

// CustomerEvent is published by the service whenever a customer changes.
type CustomerEvent struct {
	Type       EventType `json:"type"`
	CustomerID int       `json:"customer_id"`
	Name       string    `json:"name"`
	OldStatus  Status    `json:"old_status,omitempty"`
	NewStatus  Status    `json:"new_status,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ActivityEntry is a rendered CustomerEvent persisted by the worker.
type ActivityEntry struct {
	ID         int       `db:"id" json:"id"`
	CustomerID int       `db:"customer_id" json:"customer_id"`
	EventType  EventType `db:"event_type" json:"event_type"`
	Message    string    `db:"message" json:"message"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
