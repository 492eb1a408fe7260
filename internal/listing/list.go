package listing

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/unclebandit/simple-crm/internal/model"
)

// ErrUnknownCustomer is returned when a mutation names an id that is not in the last fetch.
var ErrUnknownCustomer = errors.New("customer not in current list")

// Backend is the part of the API client the list screen uses.
type Backend interface {
	ListCustomers(ctx context.Context) ([]model.Customer, error)
	UpdateStatus(ctx context.Context, id int, status model.Status) (*model.Customer, error)
	DeleteCustomer(ctx context.Context, id int) error
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Notifier shows a message to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// List owns the list screen state and its collaborators.
type List struct {
	backend Backend
	confirm Confirmer
	notify  Notifier

	mu    sync.Mutex
	state *State
}

func NewList(backend Backend, confirm Confirmer, notify Notifier) *List {
	return &List{
		backend: backend,
		confirm: confirm,
		notify:  notify,
		state:   NewState(),
	}
}

// Refresh replaces the collection with a fresh fetch. On failure the old collection stays.
func (l *List) Refresh(ctx context.Context) error {
	customers, err := l.backend.ListCustomers(ctx)
	if err != nil {
		l.notify.Error(fmt.Sprintf("Error loading customers: %v", err))
		return fmt.Errorf("refresh customers: %w", err)
	}

	l.mu.Lock()
	l.state.SetCollection(customers)
	l.mu.Unlock()
	return nil
}

// ChangeStatus asks for confirmation, updates the customer and refetches.
// It reports whether a request was sent.
func (l *List) ChangeStatus(ctx context.Context, id int, status model.Status) (bool, error) {
	c, err := l.lookup(id)
	if err != nil {
		return false, err
	}
	if c.Status == status {
		return false, nil
	}

	prompt := fmt.Sprintf("Are you sure you want to update status from %s to %s?", c.Status, status)
	if !l.confirm.Confirm(prompt) {
		return false, nil
	}

	if _, err := l.backend.UpdateStatus(ctx, id, status); err != nil {
		l.notify.Error(fmt.Sprintf("Error updating status: %v", err))
		return true, fmt.Errorf("update status of customer %d: %w", id, err)
	}
	return true, l.Refresh(ctx)
}

// Delete asks for confirmation, deletes the customer and refetches.
// It reports whether a request was sent.
func (l *List) Delete(ctx context.Context, id int) (bool, error) {
	c, err := l.lookup(id)
	if err != nil {
		return false, err
	}

	if !l.confirm.Confirm(fmt.Sprintf("Are you sure you want to delete %s?", c.Name)) {
		return false, nil
	}

	if err := l.backend.DeleteCustomer(ctx, id); err != nil {
		l.notify.Error(fmt.Sprintf("Error deleting customer: %v", err))
		return true, fmt.Errorf("delete customer %d: %w", id, err)
	}
	return true, l.Refresh(ctx)
}

func (l *List) SetFilter(f Filter) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.SetFilter(f)
}

func (l *List) SetSearch(query string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.SetSearch(query)
}

func (l *List) NextPage() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.NextPage()
}

func (l *List) PrevPage() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.PrevPage()
}

// View returns the current derived page.
func (l *List) View() Page {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.View()
}

func (l *List) Filter() Filter {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Filter()
}

func (l *List) Search() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Search()
}

func (l *List) lookup(id int) (model.Customer, error) {
	l.mu.Lock()
	c, ok := l.state.Find(id)
	l.mu.Unlock()
	if !ok {
		l.notify.Error(fmt.Sprintf("No customer with id %d in the current list", id))
		return model.Customer{}, fmt.Errorf("%w: %d", ErrUnknownCustomer, id)
	}
	return c, nil
}
