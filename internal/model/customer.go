// internal/model/customer.go
package model

import (
	"fmt"
	"time"
)

// Status is the sales-pipeline stage of a customer.
type Status string

const (
	StatusLead     Status = "Lead"
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// DefaultStatus is assigned by the backend to newly created customers.
const DefaultStatus = StatusLead

// Statuses lists every status in display order.
var Statuses = []Status{StatusLead, StatusActive, StatusInactive}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusLead, StatusActive, StatusInactive:
		return true
	}
	return false
}

// ParseStatus converts raw input into a Status. Matching is exact.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown status %q", raw)
	}
	return s, nil
}

type Customer struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	Status    Status    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"-"`
}

// CreateCustomer is the payload of a creation request. The backend assigns id and status.
type CreateCustomer struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
	Phone string `json:"phone" validate:"required"`
}

// UpdateStatus is the payload of PUT /customers/{id}/status.
type UpdateStatus struct {
	Status Status `json:"status"`
}
