package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/commerce-admin/internal/domain"
)

// PurchaseRepository defines persistence access for per-user purchase
// lists and the purchasing aggregate.
type PurchaseRepository interface {
	Insert(ctx context.Context, entry *domain.PurchaseEntry) error
	ListByUser(ctx context.Context, userID string) ([]domain.PurchaseEntry, error)
	ListAll(ctx context.Context) ([]domain.UserPurchases, error)
	UpdateQuantity(ctx context.Context, userID, entryID string, quantity int) error
	Delete(ctx context.Context, userID, entryID string) error
	Stats(ctx context.Context) ([]domain.PurchaseStat, error)
}

type purchaseRepository struct {
	pool *pgxpool.Pool
}

// NewPurchaseRepository returns a Postgres-backed implementation.
func NewPurchaseRepository(pool *pgxpool.Pool) PurchaseRepository {
	return &purchaseRepository{pool: pool}
}

func (r *purchaseRepository) Insert(ctx context.Context, entry *domain.PurchaseEntry) error {
	const query = `
        INSERT INTO user_products (user_id, name, unit_cost, quantity)
        VALUES ($1, $2, $3, $4)
        RETURNING id, added_at`

	return r.pool.QueryRow(ctx, query,
		entry.UserID,
		entry.Name,
		entry.UnitCost,
		entry.Quantity,
	).Scan(&entry.ID, &entry.AddedAt)
}

func (r *purchaseRepository) ListByUser(ctx context.Context, userID string) ([]domain.PurchaseEntry, error) {
	const query = `
        SELECT id, user_id, name, unit_cost, quantity, added_at
        FROM user_products WHERE user_id=$1 ORDER BY added_at`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.PurchaseEntry
	for rows.Next() {
		var entry domain.PurchaseEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Name,
			&entry.UnitCost,
			&entry.Quantity,
			&entry.AddedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *purchaseRepository) ListAll(ctx context.Context) ([]domain.UserPurchases, error) {
	const query = `
        SELECT u.id, u.email, p.id, p.name, p.unit_cost, p.quantity, p.added_at
        FROM users u
        LEFT JOIN user_products p ON p.user_id = u.id
        ORDER BY u.email, p.added_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.UserPurchases
	index := make(map[string]int)
	for rows.Next() {
		var userID, email string
		var entryID, name *string
		var unitCost *float64
		var quantity *int
		var addedAt *time.Time
		if err := rows.Scan(&userID, &email, &entryID, &name, &unitCost, &quantity, &addedAt); err != nil {
			return nil, err
		}

		pos, seen := index[userID]
		if !seen {
			pos = len(result)
			index[userID] = pos
			result = append(result, domain.UserPurchases{UserID: userID, Email: email})
		}
		if entryID == nil {
			continue
		}
		entry := domain.PurchaseEntry{
			ID:       *entryID,
			UserID:   userID,
			Name:     *name,
			UnitCost: *unitCost,
			Quantity: *quantity,
		}
		if addedAt != nil {
			entry.AddedAt = *addedAt
		}
		result[pos].Entries = append(result[pos].Entries, entry)
	}
	return result, rows.Err()
}

func (r *purchaseRepository) UpdateQuantity(ctx context.Context, userID, entryID string, quantity int) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE user_products SET quantity=$1 WHERE user_id=$2 AND id=$3`,
		quantity, userID, entryID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *purchaseRepository) Delete(ctx context.Context, userID, entryID string) error {
	cmd, err := r.pool.Exec(ctx,
		`DELETE FROM user_products WHERE user_id=$1 AND id=$2`, userID, entryID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Stats computes, per user email and product name, the total spend and
// entry count across all purchase lists.
func (r *purchaseRepository) Stats(ctx context.Context) ([]domain.PurchaseStat, error) {
	const query = `
        SELECT u.email, p.name, SUM(p.unit_cost * p.quantity), COUNT(*)
        FROM user_products p
        JOIN users u ON u.id = p.user_id
        GROUP BY u.email, p.name
        ORDER BY u.email, p.name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []domain.PurchaseStat
	for rows.Next() {
		var stat domain.PurchaseStat
		if err := rows.Scan(&stat.Email, &stat.ProductName, &stat.TotalAmount, &stat.Count); err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}
	return stats, rows.Err()
}
