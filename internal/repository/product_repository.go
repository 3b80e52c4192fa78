package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/commerce-admin/internal/domain"
)

// ProductRepository defines persistence access for the catalog.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetByName(ctx context.Context, name string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a Postgres-backed implementation.
func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &productRepository{pool: pool}
}

const productColumns = `
        id, name, COALESCE(description, ''), unit_cost, quantity, categories, created_at, updated_at`

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	const query = `
        INSERT INTO products (name, description, unit_cost, quantity, categories)
        VALUES ($1, NULLIF($2, ''), $3, $4, $5)
        RETURNING id, created_at, updated_at`

	categories := make([]string, len(product.Categories))
	for i, c := range product.Categories {
		categories[i] = string(c)
	}

	return r.pool.QueryRow(ctx, query,
		product.Name,
		product.Description,
		product.UnitCost,
		product.Quantity,
		categories,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	const query = `
        UPDATE products SET name=$1, description=NULLIF($2, ''), unit_cost=$3, quantity=$4, categories=$5, updated_at=NOW()
        WHERE id=$6`

	categories := make([]string, len(product.Categories))
	for i, c := range product.Categories {
		categories[i] = string(c)
	}

	cmd, err := r.pool.Exec(ctx, query,
		product.Name,
		product.Description,
		product.UnitCost,
		product.Quantity,
		categories,
		product.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id=$1`, id)
}

func (r *productRepository) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE name=$1`, name)
}

func (r *productRepository) getOne(ctx context.Context, query string, arg any) (*domain.Product, error) {
	var product domain.Product
	var categories []string
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.UnitCost,
		&product.Quantity,
		&categories,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		return nil, err
	}
	product.Categories = toCategories(categories)
	return &product, nil
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var product domain.Product
		var categories []string
		if err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Description,
			&product.UnitCost,
			&product.Quantity,
			&categories,
			&product.CreatedAt,
			&product.UpdatedAt,
		); err != nil {
			return nil, err
		}
		product.Categories = toCategories(categories)
		products = append(products, product)
	}
	return products, rows.Err()
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func toCategories(names []string) []domain.ProductCategory {
	out := make([]domain.ProductCategory, len(names))
	for i, n := range names {
		out[i] = domain.ProductCategory(n)
	}
	return out
}
