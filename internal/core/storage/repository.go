package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when an entity with the requested id does not exist.
var ErrNotFound = errors.New("entity not found")

// TimeRange bounds a query on createdAt. Both ends are inclusive; a zero bound is
// open.
type TimeRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the range.
func (r TimeRange) Contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && t.After(r.To) {
		return false
	}
	return true
}

// ProductFilter selects products. Zero fields do not filter.
type ProductFilter struct {
	Created    TimeRange
	Category   string
	OutOfStock bool
}

// ProductSearch is the paginated catalog search.
type ProductSearch struct {
	Name     string // case-insensitive substring
	Category string
	MaxPrice *float64
	Sort     string // "asc" | "desc" | "" (by price)
	Limit    int
	Offset   int
}

// UserFilter selects users. Zero fields do not filter.
type UserFilter struct {
	Created TimeRange
	Gender  string
	Role    string
}

// OrderFilter selects orders. Zero fields do not filter.
type OrderFilter struct {
	Created TimeRange
	Status  string
	UserID  string
	// Newest sorts by createdAt descending; Limit > 0 caps the result.
	Newest bool
	Limit  int
}

// ProductStore is the read/write contract for products.
type ProductStore interface {
	FindProducts(ctx context.Context, f ProductFilter) ([]Product, error)
	CountProducts(ctx context.Context, f ProductFilter) (int64, error)
	DistinctCategories(ctx context.Context) ([]string, error)
	LatestProducts(ctx context.Context, limit int) ([]Product, error)
	// SearchProducts returns one page of matches and the total match count.
	SearchProducts(ctx context.Context, s ProductSearch) ([]Product, int64, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	CreateProduct(ctx context.Context, p *Product) error
	UpdateProduct(ctx context.Context, p *Product) error
	DeleteProduct(ctx context.Context, id string) error
}

// UserStore is the read/write contract for users.
type UserStore interface {
	FindUsers(ctx context.Context, f UserFilter) ([]User, error)
	CountUsers(ctx context.Context, f UserFilter) (int64, error)
	GetUser(ctx context.Context, id string) (*User, error)
	CreateUser(ctx context.Context, u *User) error
	DeleteUser(ctx context.Context, id string) error
}

// OrderStore is the read/write contract for orders.
type OrderStore interface {
	FindOrders(ctx context.Context, f OrderFilter) ([]Order, error)
	CountOrders(ctx context.Context, f OrderFilter) (int64, error)
	GetOrder(ctx context.Context, id string) (*Order, error)
	CreateOrder(ctx context.Context, o *Order) error
	UpdateOrder(ctx context.Context, o *Order) error
	DeleteOrder(ctx context.Context, id string) error
}

// Repository is the document-store facade the rest of the system talks to.
type Repository interface {
	ProductStore
	UserStore
	OrderStore
}
