package catalog

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopadmin/shopadmin/internal/core/cache"
	"github.com/shopadmin/shopadmin/internal/core/storage"
	"github.com/shopadmin/shopadmin/internal/core/storage/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *memory.Store, *cache.Store) {
	t.Helper()
	repo := memory.NewStore()
	store := cache.NewStore()
	svc := NewService(repo, store, Options{ProductsPerPage: 3})

	var seq int
	svc.newID = func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	svc.nowFn = func() time.Time { return testNow }
	return svc, repo, store
}

func price(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func stock(n int) *int { return &n }

func seedProduct(t *testing.T, repo *memory.Store, id, category string, priceValue int64, stockCount int) {
	t.Helper()
	require.NoError(t, repo.CreateProduct(context.Background(), &storage.Product{
		ID:        id,
		Name:      "Product " + id,
		Category:  category,
		Price:     decimal.NewFromInt(priceValue),
		Stock:     stockCount,
		CreatedAt: testNow.Add(-time.Hour),
	}))
}

func seedUser(t *testing.T, repo *memory.Store, id string) {
	t.Helper()
	require.NoError(t, repo.CreateUser(context.Background(), &storage.User{
		ID:     id,
		Name:   "User " + id,
		Role:   storage.RoleUser,
		Gender: storage.GenderMale,
	}))
}

// fillCache puts a placeholder under every key so tests can see which ones an
// operation drops.
func fillCache(store *cache.Store, keys ...cache.Key) {
	for _, key := range keys {
		store.Set(key, []byte(`null`))
	}
}

func requireCached(t *testing.T, store *cache.Store, present []cache.Key, absent []cache.Key) {
	t.Helper()
	for _, key := range present {
		require.True(t, store.Has(key), "expected %s to stay cached", key)
	}
	for _, key := range absent {
		require.False(t, store.Has(key), "expected %s to be invalidated", key)
	}
}
