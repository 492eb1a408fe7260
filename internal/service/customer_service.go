// internal/service/customer_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/unclebandit/simple-crm/internal/cache"
	appErrors "github.com/unclebandit/simple-crm/internal/errors"
	"github.com/unclebandit/simple-crm/internal/model"
	"github.com/unclebandit/simple-crm/internal/queue"
	"github.com/unclebandit/simple-crm/internal/repository"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type CustomerService struct {
	CustomerRepo repository.CustomerRepositoryInterface
	ActivityRepo repository.ActivityRepositoryInterface
	Cache        cache.CustomerCache
	Events       queue.Publisher
	Logger       *zap.Logger
}

// CreateCustomer validates the payload and stores a new customer with the default status.
func (s *CustomerService) CreateCustomer(ctx context.Context, in model.CreateCustomer) (*model.Customer, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	c := &model.Customer{
		Name:   in.Name,
		Email:  in.Email,
		Phone:  in.Phone,
		Status: model.DefaultStatus,
	}
	if err := s.CustomerRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}

	s.invalidate(ctx)
	s.publish(model.CustomerEvent{
		Type:       model.EventCustomerCreated,
		CustomerID: c.ID,
		Name:       c.Name,
		NewStatus:  c.Status,
	})
	return c, nil
}

// ListCustomers returns the full collection, served from cache when possible.
func (s *CustomerService) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	if customers, hit, err := s.cache().GetAll(ctx); err != nil {
		s.logger().Warn("customer cache read failed", zap.Error(err))
	} else if hit {
		return customers, nil
	}

	// read before the query so a mutation committed meanwhile keeps this snapshot out of the cache
	gen, genErr := s.cache().Generation(ctx)
	if genErr != nil {
		s.logger().Warn("customer cache generation read failed", zap.Error(genErr))
	}

	customers, err := s.CustomerRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	if genErr == nil {
		if err := s.cache().SetAll(ctx, customers, gen); err != nil {
			s.logger().Warn("customer cache write failed", zap.Error(err))
		}
	}
	return customers, nil
}

// UpdateStatus moves a customer to a new pipeline stage.
func (s *CustomerService) UpdateStatus(ctx context.Context, id int, status model.Status) (*model.Customer, error) {
	if !status.Valid() {
		return nil, appErrors.NewValidation("status must be one of Lead, Active, Inactive")
	}

	existing, err := s.CustomerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.CustomerRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	if existing.Status != updated.Status {
		s.publish(model.CustomerEvent{
			Type:       model.EventCustomerStatusChanged,
			CustomerID: updated.ID,
			Name:       updated.Name,
			OldStatus:  existing.Status,
			NewStatus:  updated.Status,
		})
	}
	return updated, nil
}

// DeleteCustomer removes a customer for good.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id int) error {
	deleted, err := s.CustomerRepo.Delete(ctx, id)
	if err != nil {
		return err
	}

	s.invalidate(ctx)
	s.publish(model.CustomerEvent{
		Type:       model.EventCustomerDeleted,
		CustomerID: deleted.ID,
		Name:       deleted.Name,
		OldStatus:  deleted.Status,
	})
	return nil
}

// ListActivity returns the activity log of a customer, newest first.
func (s *CustomerService) ListActivity(ctx context.Context, customerID int) ([]model.ActivityEntry, error) {
	if s.ActivityRepo == nil {
		return []model.ActivityEntry{}, nil
	}
	return s.ActivityRepo.ListByCustomer(ctx, customerID)
}

func validateCreate(in model.CreateCustomer) error {
	if err := validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			missing := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				missing = append(missing, strings.ToLower(fe.Field()))
			}
			return appErrors.NewValidation("missing required fields: %s", strings.Join(missing, ", "))
		}
		return err
	}
	if err := validate.Var(in.Email, "email"); err != nil {
		return appErrors.NewValidation("invalid email address %q", in.Email)
	}
	return nil
}

func (s *CustomerService) invalidate(ctx context.Context) {
	if err := s.cache().Invalidate(ctx); err != nil {
		s.logger().Warn("customer cache invalidation failed", zap.Error(err))
	}
}

func (s *CustomerService) publish(ev model.CustomerEvent) {
	if s.Events == nil {
		return
	}
	ev.OccurredAt = time.Now().UTC()
	if err := s.Events.Publish(queue.TopicCustomerEvents, ev); err != nil {
		s.logger().Warn("failed to publish customer event",
			zap.String("type", string(ev.Type)),
			zap.Int("customer_id", ev.CustomerID),
			zap.Error(err),
		)
	}
}

func (s *CustomerService) cache() cache.CustomerCache {
	if s.Cache == nil {
		return cache.NopCustomerCache{}
	}
	return s.Cache
}

func (s *CustomerService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
