package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/unclebandit/simple-crm/internal/model"
	"github.com/unclebandit/simple-crm/internal/service"
)

// MockActivityRepo stores entries in memory
type MockActivityRepo struct {
	mu      sync.Mutex
	entries []model.ActivityEntry
	err     error
}

func (m *MockActivityRepo) Create(_ context.Context, entry *model.ActivityEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	entry.ID = len(m.entries) + 1
	m.entries = append(m.entries, *entry)
	return nil
}

func TestWorker(t *testing.T) {
	repo := &MockActivityRepo{}
	worker := service.NewWorker(repo, zap.NewNop())

	require.NoError(t, worker.Handle(context.Background(), model.CustomerEvent{
		Type: model.EventCustomerCreated, CustomerID: 1, Name: "Alice", NewStatus: model.StatusLead,
	}))
	require.NoError(t, worker.Handle(context.Background(), model.CustomerEvent{
		Type: model.EventCustomerStatusChanged, CustomerID: 1, Name: "Alice", OldStatus: model.StatusLead, NewStatus: model.StatusActive,
	}))

	require.Len(t, repo.entries, 2)
	assert.Equal(t, "Alice was added as Lead", repo.entries[0].Message)
	assert.Equal(t, "Alice moved from Lead to Active", repo.entries[1].Message)
	assert.Equal(t, model.EventCustomerStatusChanged, repo.entries[1].EventType)
}

func TestWorkerWrapsStoreError(t *testing.T) {
	repo := &MockActivityRepo{err: errors.New("db down")}
	worker := service.NewWorker(repo, nil)

	err := worker.Handle(context.Background(), model.CustomerEvent{Type: model.EventCustomerDeleted, CustomerID: 4})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store activity for customer 4")
}

func TestRenderActivity(t *testing.T) {
	assert.Equal(t, "<unknown> was deleted", service.RenderActivity(model.CustomerEvent{Type: model.EventCustomerDeleted}))
	assert.Equal(t, "Bo: customer.merged", service.RenderActivity(model.CustomerEvent{Type: "customer.merged", Name: "Bo"}))
}

func TestRenderTemplate(t *testing.T) {
	out := service.RenderTemplate("Hi {name}, {name}!", map[string]string{"name": "Cy"})
	assert.Equal(t, "Hi Cy, Cy!", out)
}
