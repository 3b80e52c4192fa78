package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/commerce-admin/internal/domain"
	"github.com/spec-kit/commerce-admin/internal/events"
	"github.com/spec-kit/commerce-admin/internal/repository"
	apperrors "github.com/spec-kit/commerce-admin/pkg/util"
)

// PurchaseService manages per-user purchase lists and the purchasing
// statistics aggregate.
type PurchaseService struct {
	purchases  repository.PurchaseRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewPurchaseService builds the service.
func NewPurchaseService(purchases repository.PurchaseRepository, users repository.UserRepository, dispatcher events.Dispatcher, logger *zap.Logger) *PurchaseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PurchaseService{purchases: purchases, users: users, dispatcher: dispatcher, logger: logger}
}

// ListAll returns every user's purchase list.
func (s *PurchaseService) ListAll(ctx context.Context) ([]domain.UserPurchases, error) {
	lists, err := s.purchases.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewInfrastructureError(err)
	}
	return lists, nil
}

// ListByUser returns one user's purchase list.
func (s *PurchaseService) ListByUser(ctx context.Context, userID string) ([]domain.PurchaseEntry, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	entries, err := s.purchases.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInfrastructureError(err)
	}
	return entries, nil
}

// EntryInput is a purchase list entry to add.
type EntryInput struct {
	Name     string
	UnitCost float64
	Quantity int
}

// Add appends entries to a user's purchase list.
func (s *PurchaseService) Add(ctx context.Context, userID string, inputs []EntryInput) ([]domain.PurchaseEntry, error) {
	if len(inputs) == 0 {
		return nil, apperrors.NewValidationError("at least one product is required")
	}
	for _, input := range inputs {
		if input.Name == "" {
			return nil, apperrors.NewValidationError("product name is required")
		}
		if input.Quantity <= 0 {
			return nil, apperrors.NewValidationError("quantity must be positive")
		}
		if input.UnitCost < 0 {
			return nil, apperrors.NewValidationError("cost cannot be negative")
		}
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	entries := make([]domain.PurchaseEntry, 0, len(inputs))
	for _, input := range inputs {
		entry := domain.PurchaseEntry{
			UserID:   userID,
			Name:     input.Name,
			UnitCost: input.UnitCost,
			Quantity: input.Quantity,
		}
		if err := s.purchases.Insert(ctx, &entry); err != nil {
			return nil, apperrors.MapError(err)
		}
		entries = append(entries, entry)

		s.publish(ctx, events.EventPurchaseAdded, entry.ID, events.PurchaseEventPayload{
			UserID:   userID,
			Name:     entry.Name,
			UnitCost: entry.UnitCost,
			Quantity: entry.Quantity,
		})
	}
	return entries, nil
}

// UpdateQuantity changes the quantity of a single list entry.
func (s *PurchaseService) UpdateQuantity(ctx context.Context, userID, entryID string, quantity int) error {
	if quantity <= 0 {
		return apperrors.NewValidationError("quantity must be positive")
	}
	if err := s.purchases.UpdateQuantity(ctx, userID, entryID, quantity); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Product not found to update")
		}
		return apperrors.NewInfrastructureError(err)
	}
	return nil
}

// Remove deletes a single list entry.
func (s *PurchaseService) Remove(ctx context.Context, userID, entryID string) error {
	if err := s.purchases.Delete(ctx, userID, entryID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("User or product not found")
		}
		return apperrors.NewInfrastructureError(err)
	}
	return nil
}

// Stats returns the purchasing aggregate: total spend and entry count
// per user email and product name, ordered by email then name.
func (s *PurchaseService) Stats(ctx context.Context) ([]domain.PurchaseStat, error) {
	stats, err := s.purchases.Stats(ctx)
	if err != nil {
		return nil, apperrors.NewInfrastructureError(err)
	}
	return stats, nil
}

func (s *PurchaseService) ensureUser(ctx context.Context, userID string) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound(fmt.Sprintf("User with id %s was not found", userID))
		}
		return apperrors.NewInfrastructureError(err)
	}
	return nil
}

func (s *PurchaseService) publish(ctx context.Context, eventType events.EventType, subjectID string, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
