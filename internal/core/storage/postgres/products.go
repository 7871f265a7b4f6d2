package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopadmin/shopadmin/internal/core/storage"
)

// FindProducts returns the products matching f, oldest first.
func (a *Adapter) FindProducts(ctx context.Context, f storage.ProductFilter) ([]storage.Product, error) {
	w := productWhere(f)
	return a.queryProducts(ctx, querySelectProducts+w.String()+" ORDER BY created_at ASC, id ASC", w.args...)
}

// CountProducts counts the products matching f.
func (a *Adapter) CountProducts(ctx context.Context, f storage.ProductFilter) (int64, error) {
	return a.count(ctx, queryCountProducts, productWhere(f))
}

// DistinctCategories returns every category in use, sorted.
func (a *Adapter) DistinctCategories(ctx context.Context) ([]string, error) {
	rows, err := a.db.QueryContext(ctx, queryDistinctCategories)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}

// LatestProducts returns the limit most recently created products.
func (a *Adapter) LatestProducts(ctx context.Context, limit int) ([]storage.Product, error) {
	return a.queryProducts(ctx, queryLatestProducts, limit)
}

// SearchProducts returns one page of products plus the total number of matches.
func (a *Adapter) SearchProducts(ctx context.Context, s storage.ProductSearch) ([]storage.Product, int64, error) {
	w := searchWhere(s)

	total, err := a.count(ctx, queryCountProducts, w)
	if err != nil {
		return nil, 0, err
	}

	order := " ORDER BY created_at ASC, id ASC"
	switch s.Sort {
	case "asc":
		order = " ORDER BY price ASC, created_at ASC, id ASC"
	case "desc":
		order = " ORDER BY price DESC, created_at ASC, id ASC"
	}

	query := querySelectProducts + w.String() + order
	args := append([]interface{}{}, w.args...)
	if s.Limit > 0 {
		args = append(args, s.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if s.Offset > 0 {
		args = append(args, s.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	products, err := a.queryProducts(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// GetProduct returns one product or storage.ErrNotFound.
func (a *Adapter) GetProduct(ctx context.Context, id string) (*storage.Product, error) {
	p, err := scanProductRow(a.db.QueryRowContext(ctx, queryGetProduct, id))
	if err != nil {
		return nil, notFound("product", id, err)
	}
	return p, nil
}

// CreateProduct inserts p.
func (a *Adapter) CreateProduct(ctx context.Context, p *storage.Product) error {
	_, err := a.db.ExecContext(ctx, queryInsertProduct,
		p.ID, p.Name, p.Photo, p.Category, p.Price, p.Stock, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	slog.Debug("[Postgres] Saved product", "product_id", p.ID)
	return nil
}

// UpdateProduct overwrites the mutable fields of p.
func (a *Adapter) UpdateProduct(ctx context.Context, p *storage.Product) error {
	res, err := a.db.ExecContext(ctx, queryUpdateProduct,
		p.ID, p.Name, p.Photo, p.Category, p.Price, p.Stock, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return requireAffected(res, "product", p.ID)
}

// DeleteProduct removes a product.
func (a *Adapter) DeleteProduct(ctx context.Context, id string) error {
	res, err := a.db.ExecContext(ctx, queryDeleteProduct, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return requireAffected(res, "product", id)
}

func (a *Adapter) queryProducts(ctx context.Context, query string, args ...interface{}) ([]storage.Product, error) {
	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]storage.Product, 0)
	for rows.Next() {
		p, err := scanProductRow(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	return products, nil
}
