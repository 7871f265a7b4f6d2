package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopadmin/shopadmin/internal/core/cache"
	"github.com/shopadmin/shopadmin/internal/core/storage"
	"github.com/shopspring/decimal"
)

// ProductInput creates a product. Every field is required.
type ProductInput struct {
	Name     string           `json:"name"`
	Category string           `json:"category"`
	Photo    string           `json:"photo"`
	Price    *decimal.Decimal `json:"price"`
	Stock    *int             `json:"stock"`
}

// ProductPatch updates a product. Nil and empty fields are left unchanged.
type ProductPatch struct {
	Name     string           `json:"name"`
	Category string           `json:"category"`
	Photo    string           `json:"photo"`
	Price    *decimal.Decimal `json:"price"`
	Stock    *int             `json:"stock"`
}

// SearchQuery is the public product search.
type SearchQuery struct {
	Search   string   `form:"search"`
	Category string   `form:"category"`
	Price    *float64 `form:"price"`
	Sort     string   `form:"sort"`
	Page     int      `form:"page"`
}

// SearchResult is one page of search matches.
type SearchResult struct {
	Products  []storage.Product `json:"products"`
	TotalPage int64             `json:"totalPage"`
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Category) == "" || in.Price == nil || in.Stock == nil {
		return invalidInputf("name, category, price and stock are required")
	}
	if strings.TrimSpace(in.Photo) == "" {
		return invalidInputf("photo is required")
	}
	if !in.Price.IsPositive() {
		return invalidInputf("price must be > 0")
	}
	if *in.Stock < 0 {
		return invalidInputf("stock must be >= 0")
	}
	return nil
}

// NewProduct creates a product.
func (s *Service) NewProduct(ctx context.Context, in ProductInput) (*storage.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := s.nowFn()
	p := &storage.Product{
		ID:        s.newID(),
		Name:      strings.TrimSpace(in.Name),
		Photo:     in.Photo,
		Category:  strings.ToLower(strings.TrimSpace(in.Category)),
		Price:     *in.Price,
		Stock:     *in.Stock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.cache.Invalidate(cache.Invalidation{Product: true, Admin: true})
	slog.Info("[Catalog] Product created", "product_id", p.ID, "category", p.Category)
	return p, nil
}

// UpdateProduct applies the non-empty fields of patch.
func (s *Service) UpdateProduct(ctx context.Context, id string, patch ProductPatch) (*storage.Product, error) {
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}

	if name := strings.TrimSpace(patch.Name); name != "" {
		p.Name = name
	}
	if category := strings.TrimSpace(patch.Category); category != "" {
		p.Category = strings.ToLower(category)
	}
	if patch.Photo != "" {
		p.Photo = patch.Photo
	}
	if patch.Price != nil {
		if !patch.Price.IsPositive() {
			return nil, invalidInputf("price must be > 0")
		}
		p.Price = *patch.Price
	}
	if patch.Stock != nil {
		if *patch.Stock < 0 {
			return nil, invalidInputf("stock must be >= 0")
		}
		p.Stock = *patch.Stock
	}
	p.UpdatedAt = s.nowFn()

	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.cache.Invalidate(cache.Invalidation{Product: true, Admin: true, ProductIDs: []string{p.ID}})
	slog.Info("[Catalog] Product updated", "product_id", p.ID)
	return p, nil
}

// DeleteProduct removes a product.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	s.cache.Invalidate(cache.Invalidation{Product: true, Admin: true, ProductIDs: []string{id}})
	slog.Info("[Catalog] Product deleted", "product_id", id)
	return nil
}

// LatestProducts returns the newest products.
func (s *Service) LatestProducts(ctx context.Context) ([]storage.Product, error) {
	return cachedRead(ctx, s, cache.LatestProducts, func(ctx context.Context) ([]storage.Product, error) {
		return s.repo.LatestProducts(ctx, s.latestLimit)
	})
}

// Categories returns the distinct product categories.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return cachedRead(ctx, s, cache.Categories, s.repo.DistinctCategories)
}

// AdminProducts returns every product.
func (s *Service) AdminProducts(ctx context.Context) ([]storage.Product, error) {
	return cachedRead(ctx, s, cache.AllProducts, func(ctx context.Context) ([]storage.Product, error) {
		return s.repo.FindProducts(ctx, storage.ProductFilter{})
	})
}

// GetProduct returns one product.
func (s *Service) GetProduct(ctx context.Context, id string) (*storage.Product, error) {
	return cachedRead(ctx, s, cache.ProductKey(id), func(ctx context.Context) (*storage.Product, error) {
		return s.repo.GetProduct(ctx, id)
	})
}

// SearchProducts returns one page of products matching q. Search results are
// not cached.
func (s *Service) SearchProducts(ctx context.Context, q SearchQuery) (SearchResult, error) {
	switch q.Sort {
	case "", "asc", "desc":
	default:
		return SearchResult{}, invalidInputf("sort must be asc or desc")
	}
	if q.Price != nil && *q.Price < 0 {
		return SearchResult{}, invalidInputf("price must be >= 0")
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := s.productsPerPage

	products, total, err := s.repo.SearchProducts(ctx, storage.ProductSearch{
		Name:     q.Search,
		Category: strings.ToLower(q.Category),
		MaxPrice: q.Price,
		Sort:     q.Sort,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	})
	if err != nil {
		return SearchResult{}, fmt.Errorf("search products: %w", err)
	}

	return SearchResult{
		Products:  products,
		TotalPage: (total + int64(limit) - 1) / int64(limit),
	}, nil
}
