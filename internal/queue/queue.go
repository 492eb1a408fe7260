package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/unclebandit/simple-crm/internal/model"
)

// TopicCustomerEvents carries model.CustomerEvent payloads.
const TopicCustomerEvents = "customer_events"

// Publisher is the write side used by the service layer.
type Publisher interface {
	Publish(topic string, payload any) error
}

// Queue interface
type Queue interface {
	Publisher
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue delivers every published payload to all subscribers of a topic, retrying failed handlers.
type InMemoryQueue struct {
	mu         sync.Mutex
	handlers   map[string][]func(payload any) error
	logger     *zap.Logger
	maxRetries int
	backoff    time.Duration
	inflight   sync.WaitGroup
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue(logger *zap.Logger) *InMemoryQueue {
	return &InMemoryQueue{
		handlers:   make(map[string][]func(payload any) error),
		logger:     logger,
		maxRetries: 3,
		backoff:    500 * time.Millisecond,
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Topic      string
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish sends a message to all subscribers
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	for _, handler := range handlers {
		job := JobPayload{
			Topic:      topic,
			Payload:    payload,
			MaxRetries: q.maxRetries,
		}
		q.inflight.Add(1)
		go q.processJob(handler, job)
	}

	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
	defer q.inflight.Done()

	for {
		err := handler(job.Payload)
		if err == nil {
			return
		}

		job.RetryCount++
		if job.RetryCount > job.MaxRetries {
			q.logger.Error("job permanently failed",
				zap.String("topic", job.Topic),
				zap.Int("attempts", job.RetryCount),
				zap.Error(err),
			)
			return
		}

		q.logger.Warn("job failed, retrying",
			zap.String("topic", job.Topic),
			zap.Int("attempt", job.RetryCount),
			zap.Int("max_retries", job.MaxRetries),
			zap.Error(err),
		)
		time.Sleep(time.Duration(job.RetryCount) * q.backoff)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// Wait blocks until every job published so far has finished.
func (q *InMemoryQueue) Wait() {
	q.inflight.Wait()
}

// StartCustomerEventSubscriber routes customer events published on q to handle.
func StartCustomerEventSubscriber(q Queue, handle func(ctx context.Context, ev model.CustomerEvent) error, logger *zap.Logger) error {
	return q.Subscribe(TopicCustomerEvents, func(payload any) error {
		ev, ok := payload.(model.CustomerEvent)
		if !ok {
			logger.Warn("invalid payload type, expected customer event",
				zap.String("type", fmt.Sprintf("%T", payload)),
			)
			return nil
		}
		return handle(context.Background(), ev)
	})
}
