package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/commerce-admin/internal/domain"
	"github.com/spec-kit/commerce-admin/internal/events"
	"github.com/spec-kit/commerce-admin/internal/repository"
	apperrors "github.com/spec-kit/commerce-admin/pkg/util"
)

const (
	maxProductNameLen        = 50
	maxProductDescriptionLen = 400
	minProductCost           = 0.01
)

// ProductService manages the shared catalog.
type ProductService struct {
	products   repository.ProductRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewProductService builds the service.
func NewProductService(products repository.ProductRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{products: products, dispatcher: dispatcher, logger: logger}
}

// List returns the whole catalog.
func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, apperrors.NewInfrastructureError(err)
	}
	return products, nil
}

// GetByID fetches one catalog entry.
func (s *ProductService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(fmt.Sprintf("Product with id %s was not found", id))
		}
		return nil, apperrors.NewInfrastructureError(err)
	}
	return product, nil
}

// ProductInput is the payload for catalog creation and update.
type ProductInput struct {
	Name        string
	Description string
	UnitCost    float64
	Quantity    int
	Categories  []string
}

// Create adds a catalog entry. Product names are unique.
func (s *ProductService) Create(ctx context.Context, input ProductInput) (*domain.Product, error) {
	product, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	if err := s.ensureNameFree(ctx, product.Name, ""); err != nil {
		return nil, err
	}
	if err := s.products.Create(ctx, product); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict(fmt.Sprintf("Product with name %s already exists", product.Name))
		}
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventProductCreated, product.ID, events.ProductEventPayload{Name: product.Name})
	return product, nil
}

// Update replaces a catalog entry's fields. Renaming onto an existing
// name is a conflict.
func (s *ProductService) Update(ctx context.Context, id string, input ProductInput) (*domain.Product, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.validate(input)
	if err != nil {
		return nil, err
	}
	if updated.Name != existing.Name {
		if err := s.ensureNameFree(ctx, updated.Name, id); err != nil {
			return nil, err
		}
	}

	updated.ID = existing.ID
	if err := s.products.Update(ctx, updated); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict(fmt.Sprintf("Product with name %s already exists", updated.Name))
		}
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventProductUpdated, updated.ID, events.ProductEventPayload{Name: updated.Name})
	return updated, nil
}

// Delete removes a catalog entry.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}

	s.publish(ctx, events.EventProductDeleted, id, events.ProductEventPayload{Name: product.Name})
	return nil
}

func (s *ProductService) validate(input ProductInput) (*domain.Product, error) {
	if input.Name == "" {
		return nil, apperrors.NewValidationError("Product name is a required field")
	}
	if len(input.Name) > maxProductNameLen {
		return nil, apperrors.NewValidationError("Product name too long")
	}
	if len(input.Description) > maxProductDescriptionLen {
		return nil, apperrors.NewValidationError("Product description too long")
	}
	if input.UnitCost < minProductCost {
		return nil, apperrors.NewValidationError("Cost must be at least 0.01")
	}
	if input.Quantity < 0 {
		return nil, apperrors.NewValidationError("Quantity cannot be negative")
	}
	if len(input.Categories) == 0 {
		return nil, apperrors.NewValidationError("At least one category is required")
	}
	categories := make([]domain.ProductCategory, len(input.Categories))
	for i, name := range input.Categories {
		category := domain.ProductCategory(name)
		if !domain.ValidCategory(category) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown category %q", name))
		}
		categories[i] = category
	}

	return &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		UnitCost:    math.Round(input.UnitCost*100) / 100,
		Quantity:    input.Quantity,
		Categories:  categories,
	}, nil
}

func (s *ProductService) ensureNameFree(ctx context.Context, name, excludeID string) error {
	existing, err := s.products.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return apperrors.NewInfrastructureError(err)
	}
	if existing.ID == excludeID {
		return nil
	}
	return apperrors.NewConflict(fmt.Sprintf("Product with name %s already exists", name))
}

func (s *ProductService) publish(ctx context.Context, eventType events.EventType, subjectID string, payload any) {
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
