package dashboard

import (
	"context"
	"fmt"

	"github.com/shopadmin/shopadmin/internal/core/storage"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

var hundred = decimal.NewFromInt(100)

// Inventories returns the share of products in each category as a rounded
// percentage of productCount. The per-category counts run concurrently and the
// first failure aborts the rest. With no products no query is issued.
func Inventories(ctx context.Context, products storage.ProductStore, categories []string, productCount int64) (map[string]int, error) {
	out := make(map[string]int, len(categories))
	if productCount == 0 || len(categories) == 0 {
		return out, nil
	}

	counts := make([]int64, len(categories))
	g, gctx := errgroup.WithContext(ctx)
	for i, category := range categories {
		i, category := i, category
		g.Go(func() error {
			n, err := products.CountProducts(gctx, storage.ProductFilter{Category: category})
			if err != nil {
				return fmt.Errorf("count products in %q: %w", category, err)
			}
			counts[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := decimal.NewFromInt(productCount)
	for i, category := range categories {
		out[category] = int(decimal.NewFromInt(counts[i]).Div(total).Mul(hundred).Round(0).IntPart())
	}
	return out, nil
}
