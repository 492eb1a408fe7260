package queue

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/unclebandit/simple-crm/internal/model"
)

func TestPublishWithoutSubscribers(t *testing.T) {
	q := NewInMemoryQueue(zap.NewNop())
	assert.Error(t, q.Publish(TopicCustomerEvents, 1))
}

func TestPublishRetriesUntilSuccess(t *testing.T) {
	q := NewInMemoryQueue(zap.NewNop())
	q.backoff = time.Millisecond

	var calls int32
	require.NoError(t, q.Subscribe("t", func(payload any) error {
		if atomic.AddInt32(&calls, 1) < 3 {
			return errors.New("boom")
		}
		return nil
	}))

	require.NoError(t, q.Publish("t", "x"))
	q.Wait()
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestPublishGivesUpAfterMaxRetries(t *testing.T) {
	q := NewInMemoryQueue(zap.NewNop())
	q.backoff = time.Millisecond

	var calls int32
	require.NoError(t, q.Subscribe("t", func(payload any) error {
		atomic.AddInt32(&calls, 1)
		return errors.New("always")
	}))

	require.NoError(t, q.Publish("t", "x"))
	q.Wait()
	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))
}

func TestCustomerEventSubscriber(t *testing.T) {
	q := NewInMemoryQueue(zap.NewNop())

	got := make(chan model.CustomerEvent, 1)
	require.NoError(t, StartCustomerEventSubscriber(q, func(_ context.Context, ev model.CustomerEvent) error {
		got <- ev
		return nil
	}, zap.NewNop()))

	require.NoError(t, q.Publish(TopicCustomerEvents, "not an event"))
	require.NoError(t, q.Publish(TopicCustomerEvents, model.CustomerEvent{Type: model.EventCustomerDeleted, CustomerID: 3}))
	q.Wait()

	select {
	case ev := <-got:
		assert.Equal(t, 3, ev.CustomerID)
	default:
		t.Fatal("expected event to be handled")
	}
	assert.Empty(t, got)
}
