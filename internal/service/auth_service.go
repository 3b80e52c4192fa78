package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
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

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// GoogleExchanger resolves an authorization code to an external identity.
type GoogleExchanger interface {
	Exchange(ctx context.Context, code string) (auth.GoogleIdentity, error)
}

// AuthService coordinates registration, login, federated sign-in and
// password changes.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	google     GoogleExchanger
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// AuthDependencies encapsulates collaborator requirements for the service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Google     GoogleExchanger
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service. The token manager is owned here and
// exposed for the access gate; tokens always live for one hour.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.UserRepo,
		tokens:     auth.NewTokenManager(cfg.JWTSecret, auth.TokenLifetime),
		google:     deps.Google,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		bcryptCost: cfg.BcryptCost,
	}
}

// RegisterInput is the payload for local account registration.
type RegisterInput struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Register creates a new local account with the default READER role.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" || input.ConfirmPassword == "" {
		return nil, apperrors.NewValidationError("Invalid input: email, password and confirmPassword are required")
	}
	if !emailPattern.MatchString(email) {
		return nil, apperrors.NewValidationError("Invalid input: email has not valid format")
	}
	if input.Password != input.ConfirmPassword {
		return nil, apperrors.NewValidationError("Invalid input: passwords do not match")
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
		Roles:        domain.DefaultRoles(),
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent register can slip past the pre-check and hit the
		// unique index instead.
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

// Login authenticates a local account. Unknown email, wrong password,
// inactive account and google-provider account all collapse into one
// generic failure so responses cannot be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", apperrors.NewValidationError("Please provide login credentials")
	}

	notLoggedIn := apperrors.NewUnauthenticated("User not logged in")

	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", notLoggedIn
		}
		return "", apperrors.NewInfrastructureError(err)
	}
	if !user.IsActive {
		return "", notLoggedIn
	}
	// A google-provider account has no usable hash, so the comparison
	// fails naturally.
	if !auth.ComparePassword(password, user.PasswordHash) {
		return "", notLoggedIn
	}

	token, _, err := s.tokens.Issue(domain.IdentityOf(user))
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventUserLoggedIn, user.ID, events.UserEventPayload{
		Email:    user.Email,
		Provider: string(user.AuthProvider),
	})
	return token, nil
}

// GoogleSignIn exchanges the authorization code, maps the asserted
// identity onto a local account (creating one if absent) and issues a
// token from the canonical local claims.
func (s *AuthService) GoogleSignIn(ctx context.Context, code string) (string, error) {
	problem := apperrors.NewDomainError("FEDERATION_FAILED", "Problem in Google Login", 400)

	if s.google == nil {
		s.logger.Warn("google federation not configured")
		return "", problem
	}

	identity, err := s.google.Exchange(ctx, code)
	if err != nil {
		s.logger.Warn("google exchange failed", zap.Error(err))
		return "", problem
	}

	email := normalizeEmail(identity.Email)
	user, err := s.users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		created := &domain.User{
			FirstName:    identity.GivenName,
			LastName:     identity.FamilyName,
			Email:        email,
			AuthProvider: domain.ProviderGoogle,
			GoogleID:     identity.Subject,
			AvatarURL:    identity.AvatarURL,
			Roles:        domain.DefaultRoles(),
			IsActive:     true,
		}
		if err := s.users.Create(ctx, created); err != nil {
			// A concurrent sign-in may have created the account already;
			// the canonical re-fetch below resolves either way.
			if !apperrors.IsUniqueViolation(err) {
				return "", apperrors.MapError(err)
			}
		}
	case err != nil:
		return "", apperrors.NewInfrastructureError(err)
	case user.AuthProvider == domain.ProviderLocal:
		// Asserted email collides with a pre-existing local account.
		// The account is reused as-is; no provider merge is performed.
		s.logger.Warn("google login against local account", zap.String("email", email))
	}

	// Re-fetch the canonical record for authoritative id, roles and
	// active flag.
	user, err = s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", apperrors.NewInfrastructureError(err)
	}
	if !user.IsActive {
		return "", apperrors.NewUnauthenticated("user is inactive")
	}

	token, _, err := s.tokens.Issue(domain.IdentityOf(user))
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventGoogleLogin, user.ID, events.UserEventPayload{
		Email:    user.Email,
		Provider: string(user.AuthProvider),
	})
	return token, nil
}

// ChangePassword verifies the current password before storing a new hash.
// Google-provider accounts have no password to change.
func (s *AuthService) ChangePassword(ctx context.Context, userID, current, newPassword, confirm string) error {
	if current == "" || newPassword == "" || confirm == "" {
		return apperrors.NewValidationError("currentPassword, newPassword and newPasswordConfirm are required")
	}
	if newPassword != confirm {
		return apperrors.NewValidationError("password confirmation does not match")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if user.AuthProvider != domain.ProviderLocal {
		return apperrors.NewValidationError("password change is not available for federated accounts")
	}
	if !auth.ComparePassword(current, user.PasswordHash) {
		return apperrors.NewUnauthenticated("current password is incorrect")
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInfrastructureError(err)
	}
	if err := s.users.SetPasswordHash(ctx, userID, hash); err != nil {
		return apperrors.MapError(err)
	}

	s.publish(ctx, events.EventPasswordChanged, userID, events.UserEventPayload{Email: user.Email})
	return nil
}

// TokenManager exposes the underlying token manager for the access gate.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, subjectID string, payload any) {
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

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
