package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/commerce-admin/internal/domain"
)

func seedUser(t *testing.T, users *fakeUserRepo, email string) string {
	t.Helper()
	user := &domain.User{
		Email:        email,
		AuthProvider: domain.ProviderLocal,
		Roles:        domain.DefaultRoles(),
		IsActive:     true,
	}
	require.NoError(t, users.Create(context.Background(), user))
	return user.ID
}

func TestPurchaseAddAndList(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewPurchaseService(newFakePurchaseRepo(users), users, nil, nil)
	userID := seedUser(t, users, "ada@example.com")

	entries, err := svc.Add(context.Background(), userID, []EntryInput{
		{Name: "Mouse", UnitCost: 25, Quantity: 2},
		{Name: "Desk Mat", UnitCost: 15.5, Quantity: 1},
	})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.NotEmpty(t, entries[0].ID)

	listed, err := svc.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "Mouse", listed[0].Name)
	assert.Equal(t, 2, listed[0].Quantity)
}

func TestPurchaseAdd_Validation(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewPurchaseService(newFakePurchaseRepo(users), users, nil, nil)
	userID := seedUser(t, users, "ada@example.com")

	tests := []struct {
		name   string
		inputs []EntryInput
	}{
		{name: "empty list", inputs: nil},
		{name: "missing name", inputs: []EntryInput{{UnitCost: 1, Quantity: 1}}},
		{name: "zero quantity", inputs: []EntryInput{{Name: "Mouse", UnitCost: 1, Quantity: 0}}},
		{name: "negative cost", inputs: []EntryInput{{Name: "Mouse", UnitCost: -1, Quantity: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(context.Background(), userID, tt.inputs)
			de := domainErr(t, err)
			assert.Equal(t, 400, de.HTTPStatus)
		})
	}
}

func TestPurchaseAdd_UnknownUser(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewPurchaseService(newFakePurchaseRepo(users), users, nil, nil)

	_, err := svc.Add(context.Background(), "missing-id", []EntryInput{{Name: "Mouse", UnitCost: 1, Quantity: 1}})
	de := domainErr(t, err)
	assert.Equal(t, 404, de.HTTPStatus)
	assert.Equal(t, "User with id missing-id was not found", de.Message)
}

func TestPurchaseUpdateQuantity(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewPurchaseService(newFakePurchaseRepo(users), users, nil, nil)
	userID := seedUser(t, users, "ada@example.com")

	entries, err := svc.Add(context.Background(), userID, []EntryInput{{Name: "Mouse", UnitCost: 25, Quantity: 2}})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateQuantity(context.Background(), userID, entries[0].ID, 5))

	listed, err := svc.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 5, listed[0].Quantity)

	err = svc.UpdateQuantity(context.Background(), userID, "missing-entry", 5)
	de := domainErr(t, err)
	assert.Equal(t, 404, de.HTTPStatus)
	assert.Equal(t, "Product not found to update", de.Message)

	err = svc.UpdateQuantity(context.Background(), userID, entries[0].ID, 0)
	de = domainErr(t, err)
	assert.Equal(t, 400, de.HTTPStatus)
}

func TestPurchaseRemove(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewPurchaseService(newFakePurchaseRepo(users), users, nil, nil)
	userID := seedUser(t, users, "ada@example.com")

	entries, err := svc.Add(context.Background(), userID, []EntryInput{{Name: "Mouse", UnitCost: 25, Quantity: 2}})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(context.Background(), userID, entries[0].ID))

	err = svc.Remove(context.Background(), userID, entries[0].ID)
	de := domainErr(t, err)
	assert.Equal(t, 404, de.HTTPStatus)
	assert.Equal(t, "User or product not found", de.Message)
}

func TestPurchaseListAll(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewPurchaseService(newFakePurchaseRepo(users), users, nil, nil)

	adaID := seedUser(t, users, "ada@example.com")
	seedUser(t, users, "bob@example.com")

	_, err := svc.Add(context.Background(), adaID, []EntryInput{{Name: "Mouse", UnitCost: 25, Quantity: 1}})
	require.NoError(t, err)

	lists, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, lists, 2)

	// Users without purchases still appear, with an empty list.
	assert.Len(t, lists[0].Entries, 1)
	assert.Empty(t, lists[1].Entries)
}

func TestPurchaseStats(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewPurchaseService(newFakePurchaseRepo(users), users, nil, nil)

	adaID := seedUser(t, users, "ada@example.com")
	bobID := seedUser(t, users, "bob@example.com")

	_, err := svc.Add(context.Background(), adaID, []EntryInput{
		{Name: "Mouse", UnitCost: 25, Quantity: 2},
		{Name: "Mouse", UnitCost: 20, Quantity: 1},
		{Name: "Desk Mat", UnitCost: 15.5, Quantity: 1},
	})
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), bobID, []EntryInput{
		{Name: "Mouse", UnitCost: 30, Quantity: 1},
	})
	require.NoError(t, err)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 3)

	// Ordered by email then product name, grouped per (email, name).
	assert.Equal(t, domain.PurchaseStat{Email: "ada@example.com", ProductName: "Desk Mat", TotalAmount: 15.5, Count: 1}, stats[0])
	assert.Equal(t, domain.PurchaseStat{Email: "ada@example.com", ProductName: "Mouse", TotalAmount: 70, Count: 2}, stats[1])
	assert.Equal(t, domain.PurchaseStat{Email: "bob@example.com", ProductName: "Mouse", TotalAmount: 30, Count: 1}, stats[2])
}
