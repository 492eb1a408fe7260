// internal/errors/errors.go
package appErrors

import (
	"errors"
	"fmt"
)

// ErrCustomerNotFound is returned when no customer has the requested ID.
type ErrCustomerNotFound struct {
	CustomerID int
}

func (e *ErrCustomerNotFound) Error() string {
	return fmt.Sprintf("customer with ID %d not found", e.CustomerID)
}

// NewCustomerNotFound is a helper constructor.
func NewCustomerNotFound(id int) error {
	return &ErrCustomerNotFound{CustomerID: id}
}

// IsNotFound reports whether err wraps an ErrCustomerNotFound.
func IsNotFound(err error) bool {
	var nf *ErrCustomerNotFound
	return errors.As(err, &nf)
}

// ValidationError carries a user-facing message for rejected input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidation(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
