package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopadmin/shopadmin/internal/core/cache"
	"github.com/shopadmin/shopadmin/internal/core/storage"
)

// ErrInvalidInput marks request validation errors that should return HTTP 400.
var ErrInvalidInput = errors.New("invalid input")

func invalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Options tunes the catalog service. Zero values fall back to defaults.
type Options struct {
	ProductsPerPage int
	LatestLimit     int
	MaxBodySizeMB   int
}

// Service owns product, order and user writes and the cached entity reads.
// Every successful write invalidates the cache entries derived from it before
// returning.
type Service struct {
	repo             storage.Repository
	cache            *cache.Store
	productsPerPage  int
	latestLimit      int
	maxBodySizeBytes int64
	nowFn            func() time.Time
	newID            func() string
}

func NewService(repo storage.Repository, store *cache.Store, opts Options) *Service {
	if repo == nil {
		panic("catalog: repository must not be nil")
	}
	if store == nil {
		panic("catalog: cache must not be nil")
	}
	if opts.ProductsPerPage <= 0 {
		opts.ProductsPerPage = 8
	}
	if opts.LatestLimit <= 0 {
		opts.LatestLimit = 4
	}
	if opts.MaxBodySizeMB <= 0 {
		opts.MaxBodySizeMB = 1
	}
	return &Service{
		repo:             repo,
		cache:            store,
		productsPerPage:  opts.ProductsPerPage,
		latestLimit:      opts.LatestLimit,
		maxBodySizeBytes: int64(opts.MaxBodySizeMB) * 1024 * 1024,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
		newID: uuid.NewString,
	}
}

// RegisterRoutes registers the product, order and user routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	products := r.Group("/product")
	products.POST("/new", s.HandleNewProduct)
	products.GET("/latest", s.HandleLatestProducts)
	products.GET("/categories", s.HandleCategories)
	products.GET("/admin-products", s.HandleAdminProducts)
	products.GET("/all", s.HandleSearchProducts)
	products.GET("/:id", s.HandleGetProduct)
	products.PUT("/:id", s.HandleUpdateProduct)
	products.DELETE("/:id", s.HandleDeleteProduct)

	orders := r.Group("/order")
	orders.POST("/new", s.HandleNewOrder)
	orders.GET("/my", s.HandleMyOrders)
	orders.GET("/all", s.HandleAllOrders)
	orders.GET("/:id", s.HandleGetOrder)
	orders.PUT("/:id", s.HandleProcessOrder)
	orders.DELETE("/:id", s.HandleDeleteOrder)

	users := r.Group("/user")
	users.POST("/new", s.HandleNewUser)
	users.GET("/all", s.HandleAllUsers)
	users.GET("/:id", s.HandleGetUser)
	users.DELETE("/:id", s.HandleDeleteUser)
}

// cachedRead returns the value stored under key, or loads and stores it.
func cachedRead[T any](ctx context.Context, s *Service, key cache.Key, load func(context.Context) (T, error)) (T, error) {
	epoch := s.cache.Epoch()
	if v, ok := cache.Load[T](s.cache, key); ok {
		return v, nil
	}

	v, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	if _, err := cache.SaveIfEpoch(s.cache, key, v, epoch); err != nil {
		slog.Error("[Catalog] Failed to cache read", "key", key.String(), "error", err)
	}
	return v, nil
}
