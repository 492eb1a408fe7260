// Package form holds the customer creation draft and submits it to the backend.
package form

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/unclebandit/simple-crm/internal/model"
)

const (
	MsgCreated = "Customer created successfully"
	MsgFailed  = "Error creating customer"
)

var (
	ErrSubmitInFlight = errors.New("a submission is already in flight")
	ErrUnknownField   = errors.New("unknown field")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Creator sends a new customer to the backend.
type Creator interface {
	CreateCustomer(ctx context.Context, in model.CreateCustomer) (*model.Customer, error)
}

// Notifier shows a message to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type Form struct {
	creator Creator
	notify  Notifier

	mu         sync.Mutex
	draft      model.CreateCustomer
	submitting bool
}

func New(creator Creator, notify Notifier) *Form {
	return &Form{creator: creator, notify: notify}
}

// SetField updates one draft field by its name: name, email or phone.
func (f *Form) SetField(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch strings.ToLower(name) {
	case "name":
		f.draft.Name = value
	case "email":
		f.draft.Email = value
	case "phone":
		f.draft.Phone = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

func (f *Form) Draft() model.CreateCustomer {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

func (f *Form) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Submit sends the draft. The draft is cleared on success and kept on failure.
func (f *Form) Submit(ctx context.Context) (*model.Customer, error) {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	draft := f.draft
	if err := requireFields(draft); err != nil {
		f.mu.Unlock()
		f.notify.Error(err.Error())
		return nil, err
	}
	f.submitting = true
	f.mu.Unlock()

	created, err := f.creator.CreateCustomer(ctx, draft)

	f.mu.Lock()
	f.submitting = false
	if err == nil {
		f.draft = model.CreateCustomer{}
	}
	f.mu.Unlock()

	if err != nil {
		f.notify.Error(MsgFailed)
		return nil, fmt.Errorf("create customer: %w", err)
	}
	f.notify.Success(MsgCreated)
	return created, nil
}

func requireFields(draft model.CreateCustomer) error {
	err := validate.Struct(draft)
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	missing := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		missing = append(missing, strings.ToLower(fe.Field()))
	}
	return fmt.Errorf("please fill in: %s", strings.Join(missing, ", "))
}
