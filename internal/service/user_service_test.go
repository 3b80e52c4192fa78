package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/commerce-admin/internal/config"
	"github.com/spec-kit/commerce-admin/internal/domain"
	"github.com/spec-kit/commerce-admin/internal/events"
)

func newUserService(users *fakeUserRepo, dispatcher events.Dispatcher) *UserService {
	return NewUserService(config.AuthConfig{BcryptCost: bcrypt.MinCost}, users, dispatcher, nil)
}

func TestUserCreate_WithRoles(t *testing.T) {
	users := newFakeUserRepo()
	svc := newUserService(users, nil)

	user, err := svc.Create(context.Background(), AdminCreateInput{
		FirstName: "Grace",
		Email:     "grace@example.com",
		Password:  "pass1234",
		Roles:     []string{"ADMIN", "EDITOR"},
	})
	require.NoError(t, err)
	assert.Equal(t, []domain.Role{domain.RoleAdmin, domain.RoleEditor}, user.Roles)
	assert.True(t, user.IsActive)
}

func TestUserCreate_DefaultsToReader(t *testing.T) {
	svc := newUserService(newFakeUserRepo(), nil)

	user, err := svc.Create(context.Background(), AdminCreateInput{
		Email:    "grace@example.com",
		Password: "pass1234",
	})
	require.NoError(t, err)
	assert.Equal(t, []domain.Role{domain.RoleReader}, user.Roles)
}

func TestUserCreate_UnknownRole(t *testing.T) {
	svc := newUserService(newFakeUserRepo(), nil)

	_, err := svc.Create(context.Background(), AdminCreateInput{
		Email:    "grace@example.com",
		Password: "pass1234",
		Roles:    []string{"SUPERUSER"},
	})
	de := domainErr(t, err)
	assert.Equal(t, 400, de.HTTPStatus)
}

func TestUserGetByID_NotFound(t *testing.T) {
	svc := newUserService(newFakeUserRepo(), nil)

	_, err := svc.GetByID(context.Background(), "missing-id")
	de := domainErr(t, err)
	assert.Equal(t, 404, de.HTTPStatus)
	assert.Equal(t, "User with id missing-id was not found", de.Message)
}

func TestUserUpdateProfile(t *testing.T) {
	users := newFakeUserRepo()
	svc := newUserService(users, nil)

	created, err := svc.Create(context.Background(), AdminCreateInput{
		FirstName: "Grace",
		Email:     "grace@example.com",
		Password:  "pass1234",
	})
	require.NoError(t, err)

	newName := "Graciela"
	updated, err := svc.UpdateProfile(context.Background(), created.ID, ProfileUpdate{FirstName: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Graciela", updated.FirstName)
	// Untouched fields stay as they were.
	assert.Equal(t, "grace@example.com", updated.Email)
}

func TestUserAdminUpdate_RolesAndActive(t *testing.T) {
	users := newFakeUserRepo()
	svc := newUserService(users, nil)

	created, err := svc.Create(context.Background(), AdminCreateInput{
		Email:    "grace@example.com",
		Password: "pass1234",
	})
	require.NoError(t, err)

	inactive := false
	updated, err := svc.Update(context.Background(), created.ID, AdminUpdate{
		Roles:    []string{"EDITOR"},
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, []domain.Role{domain.RoleEditor}, updated.Roles)
	assert.False(t, updated.IsActive)
}

func TestUserSoftDelete(t *testing.T) {
	users := newFakeUserRepo()
	dispatcher := &recordingDispatcher{}
	svc := newUserService(users, dispatcher)

	created, err := svc.Create(context.Background(), AdminCreateInput{
		Email:    "grace@example.com",
		Password: "pass1234",
	})
	require.NoError(t, err)

	require.NoError(t, svc.SoftDelete(context.Background(), created.ID))

	// The record is preserved, only deactivated.
	stored, err := users.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
	assert.Contains(t, dispatcher.types(), events.EventUserDeactivated)

	err = svc.SoftDelete(context.Background(), "missing-id")
	de := domainErr(t, err)
	assert.Equal(t, 404, de.HTTPStatus)
}
