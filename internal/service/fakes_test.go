package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/commerce-admin/internal/auth"
	"github.com/spec-kit/commerce-admin/internal/domain"
	"github.com/spec-kit/commerce-admin/internal/events"
)

// fakeUserRepo is an in-memory stand-in for the Postgres user repository.
type fakeUserRepo struct {
	mu      sync.Mutex
	nextID  int
	byID    map[string]*domain.User
	failing bool

	// createErr is returned by the next Create call, hideEmailOnce makes
	// the next GetByEmail miss. Together they simulate a concurrent
	// insert racing past the existence pre-check.
	createErr     error
	hideEmailOnce bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*domain.User)}
}

var errFakeRepo = errors.New("fake repository failure")

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return errFakeRepo
	}
	if r.createErr != nil {
		err := r.createErr
		r.createErr = nil
		return err
	}
	r.nextID++
	user.ID = fmt.Sprintf("user-%d", r.nextID)
	clone := *user
	r.byID[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	r.byID[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return nil, errFakeRepo
	}
	if r.hideEmailOnce {
		r.hideEmailOnce = false
		return nil, pgx.ErrNoRows
	}
	for _, user := range r.byID {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]domain.User, 0, len(r.byID))
	for _, user := range r.byID {
		users = append(users, *user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *fakeUserRepo) SetActive(_ context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.IsActive = active
	return nil
}

func (r *fakeUserRepo) SetPasswordHash(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.PasswordHash = hash
	return nil
}

// fakeProductRepo is an in-memory stand-in for the catalog repository.
type fakeProductRepo struct {
	mu        sync.Mutex
	nextID    int
	byID      map[string]*domain.Product
	createErr error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{byID: make(map[string]*domain.Product)}
}

func (r *fakeProductRepo) Create(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		err := r.createErr
		r.createErr = nil
		return err
	}
	r.nextID++
	product.ID = fmt.Sprintf("product-%d", r.nextID)
	clone := *product
	r.byID[product.ID] = &clone
	return nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[product.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *product
	r.byID[product.ID] = &clone
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *product
	return &clone, nil
}

func (r *fakeProductRepo) GetByName(_ context.Context, name string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, product := range r.byID {
		if product.Name == name {
			clone := *product
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeProductRepo) List(_ context.Context) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	products := make([]domain.Product, 0, len(r.byID))
	for _, product := range r.byID {
		products = append(products, *product)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}

// fakePurchaseRepo mirrors the SQL semantics of the purchase repository,
// including the grouped statistics aggregate.
type fakePurchaseRepo struct {
	mu      sync.Mutex
	nextID  int
	entries []domain.PurchaseEntry
	users   *fakeUserRepo
}

func newFakePurchaseRepo(users *fakeUserRepo) *fakePurchaseRepo {
	return &fakePurchaseRepo{users: users}
}

func (r *fakePurchaseRepo) Insert(_ context.Context, entry *domain.PurchaseEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	entry.ID = fmt.Sprintf("entry-%d", r.nextID)
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakePurchaseRepo) ListByUser(_ context.Context, userID string) ([]domain.PurchaseEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.PurchaseEntry
	for _, entry := range r.entries {
		if entry.UserID == userID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (r *fakePurchaseRepo) ListAll(ctx context.Context) ([]domain.UserPurchases, error) {
	users, err := r.users.List(ctx)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.UserPurchases
	for _, user := range users {
		list := domain.UserPurchases{UserID: user.ID, Email: user.Email}
		for _, entry := range r.entries {
			if entry.UserID == user.ID {
				list.Entries = append(list.Entries, entry)
			}
		}
		out = append(out, list)
	}
	return out, nil
}

func (r *fakePurchaseRepo) UpdateQuantity(_ context.Context, userID, entryID string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, entry := range r.entries {
		if entry.UserID == userID && entry.ID == entryID {
			r.entries[i].Quantity = quantity
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakePurchaseRepo) Delete(_ context.Context, userID, entryID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, entry := range r.entries {
		if entry.UserID == userID && entry.ID == entryID {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakePurchaseRepo) Stats(ctx context.Context) ([]domain.PurchaseStat, error) {
	users, err := r.users.List(ctx)
	if err != nil {
		return nil, err
	}
	emails := make(map[string]string, len(users))
	for _, user := range users {
		emails[user.ID] = user.Email
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	type key struct{ email, name string }
	grouped := make(map[key]*domain.PurchaseStat)
	for _, entry := range r.entries {
		k := key{email: emails[entry.UserID], name: entry.Name}
		stat, ok := grouped[k]
		if !ok {
			stat = &domain.PurchaseStat{Email: k.email, ProductName: k.name}
			grouped[k] = stat
		}
		stat.TotalAmount += entry.UnitCost * float64(entry.Quantity)
		stat.Count++
	}

	stats := make([]domain.PurchaseStat, 0, len(grouped))
	for _, stat := range grouped {
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Email != stats[j].Email {
			return stats[i].Email < stats[j].Email
		}
		return stats[i].ProductName < stats[j].ProductName
	})
	return stats, nil
}

// fakeExchanger returns a canned identity or error for federated sign-in.
type fakeExchanger struct {
	identity auth.GoogleIdentity
	err      error
	lastCode string
}

func (f *fakeExchanger) Exchange(_ context.Context, code string) (auth.GoogleIdentity, error) {
	f.lastCode = code
	if f.err != nil {
		return auth.GoogleIdentity{}, f.err
	}
	return f.identity, nil
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.EventType, len(d.events))
	for i, event := range d.events {
		out[i] = event.Type
	}
	return out
}
