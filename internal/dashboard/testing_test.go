package dashboard

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopadmin/shopadmin/internal/core/cache"
	"github.com/shopadmin/shopadmin/internal/core/storage"
	"github.com/shopadmin/shopadmin/internal/core/storage/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var (
	testNow     = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	errUpstream = errors.New("connection reset")

	_ storage.Repository = (*countingRepo)(nil)
	_ storage.Repository = failingRepo{}
)

func at(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 9, 0, 0, 0, time.UTC)
}

func money(v int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(v))
}

func items(n int) []storage.OrderItem {
	out := make([]storage.OrderItem, n)
	for i := range out {
		out[i] = storage.OrderItem{ProductID: "p1", Quantity: 1, Price: decimal.NewFromInt(10)}
	}
	return out
}

// fixture is a small shop as seen on 2024-06-15.
func fixture(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()

	for _, p := range []storage.Product{
		{ID: "p1", Name: "Laptop", Category: "electronics", Price: decimal.NewFromInt(900), Stock: 5, CreatedAt: at(2024, 6, 2)},
		{ID: "p2", Name: "Phone", Category: "electronics", Price: decimal.NewFromInt(500), Stock: 0, CreatedAt: at(2024, 5, 10)},
		{ID: "p3", Name: "Shirt", Category: "apparel", Price: decimal.NewFromInt(20), Stock: 3, CreatedAt: at(2024, 3, 1)},
		{ID: "p4", Name: "Scarf", Category: "apparel", Price: decimal.NewFromInt(15), Stock: 2, CreatedAt: at(2023, 1, 1)},
	} {
		require.NoError(t, s.CreateProduct(ctx, &p))
	}

	for _, u := range []storage.User{
		{ID: "u1", Name: "Ann", Role: storage.RoleAdmin, Gender: storage.GenderFemale, DOB: at(1990, 1, 1), CreatedAt: at(2024, 6, 1)},
		{ID: "u2", Name: "Bob", Role: storage.RoleUser, Gender: storage.GenderMale, DOB: at(2010, 7, 1), CreatedAt: at(2024, 5, 20)},
		{ID: "u3", Name: "Cid", Role: storage.RoleUser, Gender: storage.GenderFemale, DOB: at(1970, 6, 15), CreatedAt: at(2024, 1, 10)},
	} {
		require.NoError(t, s.CreateUser(ctx, &u))
	}

	for _, o := range []storage.Order{
		{
			ID: "o1", UserID: "u2", Items: items(2), Status: storage.StatusProcessing, CreatedAt: at(2024, 6, 10),
			Total: money(100), Discount: money(10), Tax: money(5), ShippingCharges: money(2),
		},
		{
			ID: "o2", UserID: "u3", Items: items(1), Status: storage.StatusShipped, CreatedAt: at(2024, 5, 5),
			Total: money(50),
		},
		{
			ID: "o3", UserID: "u2", Items: items(1), Status: storage.StatusDelivered, CreatedAt: at(2024, 1, 20),
			Total: money(200), Discount: money(20), Tax: money(10), ShippingCharges: money(8),
		},
		// No money fields at all.
		{ID: "o4", UserID: "u1", Status: storage.StatusProcessing, CreatedAt: at(2023, 12, 1)},
	} {
		require.NoError(t, s.CreateOrder(ctx, &o))
	}
	return s
}

// countingRepo counts every read the reports issue.
type countingRepo struct {
	storage.Repository
	calls atomic.Int64
}

func (r *countingRepo) FindProducts(ctx context.Context, f storage.ProductFilter) ([]storage.Product, error) {
	r.calls.Add(1)
	return r.Repository.FindProducts(ctx, f)
}

func (r *countingRepo) CountProducts(ctx context.Context, f storage.ProductFilter) (int64, error) {
	r.calls.Add(1)
	return r.Repository.CountProducts(ctx, f)
}

func (r *countingRepo) DistinctCategories(ctx context.Context) ([]string, error) {
	r.calls.Add(1)
	return r.Repository.DistinctCategories(ctx)
}

func (r *countingRepo) FindUsers(ctx context.Context, f storage.UserFilter) ([]storage.User, error) {
	r.calls.Add(1)
	return r.Repository.FindUsers(ctx, f)
}

func (r *countingRepo) CountUsers(ctx context.Context, f storage.UserFilter) (int64, error) {
	r.calls.Add(1)
	return r.Repository.CountUsers(ctx, f)
}

func (r *countingRepo) FindOrders(ctx context.Context, f storage.OrderFilter) ([]storage.Order, error) {
	r.calls.Add(1)
	return r.Repository.FindOrders(ctx, f)
}

func (r *countingRepo) CountOrders(ctx context.Context, f storage.OrderFilter) (int64, error) {
	r.calls.Add(1)
	return r.Repository.CountOrders(ctx, f)
}

// failingRepo fails every order and category read.
type failingRepo struct {
	storage.Repository
}

func (failingRepo) FindOrders(context.Context, storage.OrderFilter) ([]storage.Order, error) {
	return nil, errUpstream
}

func (failingRepo) CountOrders(context.Context, storage.OrderFilter) (int64, error) {
	return 0, errUpstream
}

func (failingRepo) CountProducts(context.Context, storage.ProductFilter) (int64, error) {
	return 0, errUpstream
}

func newTestService(repo storage.Repository) (*Service, *cache.Store) {
	store := cache.NewStore()
	svc := NewService(repo, store, nil)
	svc.nowFn = func() time.Time { return testNow }
	return svc, store
}
