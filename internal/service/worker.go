package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/unclebandit/simple-crm/internal/model"
)

// ActivityRecorder defines the methods the worker needs
type ActivityRecorder interface {
	Create(ctx context.Context, entry *model.ActivityEntry) error
}

// Worker turns customer events into activity log entries
type Worker struct {
	Repo   ActivityRecorder
	Logger *zap.Logger
}

// Constructor
func NewWorker(repo ActivityRecorder, logger *zap.Logger) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{
		Repo:   repo,
		Logger: logger,
	}
}

// Handle renders and persists a single event.
func (w *Worker) Handle(ctx context.Context, ev model.CustomerEvent) error {
	entry := &model.ActivityEntry{
		CustomerID: ev.CustomerID,
		EventType:  ev.Type,
		Message:    RenderActivity(ev),
	}
	if err := w.Repo.Create(ctx, entry); err != nil {
		return fmt.Errorf("store activity for customer %d: %w", ev.CustomerID, err)
	}

	w.Logger.Debug("activity recorded",
		zap.Int("customer_id", ev.CustomerID),
		zap.String("message", entry.Message),
	)
	return nil
}
