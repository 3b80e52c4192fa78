package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/commerce-admin/internal/auth"
	"github.com/spec-kit/commerce-admin/internal/config"
	"github.com/spec-kit/commerce-admin/internal/domain"
	"github.com/spec-kit/commerce-admin/internal/events"
	"github.com/spec-kit/commerce-admin/internal/repository"
	apperrors "github.com/spec-kit/commerce-admin/pkg/util"
)

// UserService covers account administration and self-service profile
// operations.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(cfg config.AuthConfig, users repository.UserRepository, dispatcher events.Dispatcher, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		users:      users,
		dispatcher: dispatcher,
		logger:     logger,
		bcryptCost: cfg.BcryptCost,
	}
}

// List returns every account.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.NewInfrastructureError(err)
	}
	return users, nil
}

// GetByID fetches one account.
func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(fmt.Sprintf("User with id %s was not found", id))
		}
		return nil, apperrors.NewInfrastructureError(err)
	}
	return user, nil
}

// AdminCreateInput is the payload for admin-created accounts.
type AdminCreateInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Roles     []string
}

// Create makes a local account on behalf of an administrator. Unlike
// registration, an explicit role set may be assigned.
func (s *UserService) Create(ctx context.Context, input AdminCreateInput) (*domain.User, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("email and password are required")
	}
	if !emailPattern.MatchString(email) {
		return nil, apperrors.NewValidationError("email has not valid format")
	}
	roles, ok := domain.NormalizeRoles(input.Roles)
	if !ok {
		return nil, apperrors.NewValidationError("unknown role")
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("User already exists")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewInfrastructureError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInfrastructureError(err)
	}

	user := &domain.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        email,
		PasswordHash: hash,
		AuthProvider: domain.ProviderLocal,
		Roles:        roles,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("User already exists")
		}
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventUserRegistered, user.ID, events.UserEventPayload{
		Email:    user.Email,
		Provider: string(user.AuthProvider),
	})
	return user, nil
}

// ProfileUpdate carries the self-service editable fields. Nil means
// leave unchanged.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	AvatarURL *string
}

// UpdateProfile applies profile changes for the authenticated user.
func (s *UserService) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*domain.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.AvatarURL != nil {
		user.AvatarURL = *update.AvatarURL
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// AdminUpdate additionally allows role and active-flag changes.
type AdminUpdate struct {
	Profile  ProfileUpdate
	Roles    []string
	IsActive *bool
}

// Update applies an administrative update to any account.
func (s *UserService) Update(ctx context.Context, id string, update AdminUpdate) (*domain.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.Profile.FirstName != nil {
		user.FirstName = *update.Profile.FirstName
	}
	if update.Profile.LastName != nil {
		user.LastName = *update.Profile.LastName
	}
	if update.Profile.AvatarURL != nil {
		user.AvatarURL = *update.Profile.AvatarURL
	}
	if update.Roles != nil {
		roles, ok := domain.NormalizeRoles(update.Roles)
		if !ok {
			return nil, apperrors.NewValidationError("unknown role")
		}
		user.Roles = roles
	}
	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// SoftDelete deactivates an account. The record is preserved; future
// logins fail, but already issued tokens stay valid until expiry.
func (s *UserService) SoftDelete(ctx context.Context, id string) error {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.users.SetActive(ctx, id, false); err != nil {
		return apperrors.MapError(err)
	}

	s.publish(ctx, events.EventUserDeactivated, id, events.UserEventPayload{Email: user.Email})
	return nil
}

func (s *UserService) publish(ctx context.Context, eventType events.EventType, subjectID string, payload any) {
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
