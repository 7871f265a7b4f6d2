package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/shopadmin/shopadmin/internal/core/aggregation"
	"github.com/shopadmin/shopadmin/internal/core/cache"
	"github.com/shopadmin/shopadmin/internal/core/storage"
	"golang.org/x/sync/errgroup"
)

const (
	statsChartMonths   = 6
	latestTransactions = 4
)

// monthRanges returns the createdAt ranges of the current and the previous
// calendar month as seen from now.
func monthRanges(now time.Time) (thisMonth, lastMonth storage.TimeRange) {
	start := aggregation.MonthStart(now, 0)
	thisMonth = storage.TimeRange{From: start, To: now}
	// Postgres keeps microseconds, so this is the last representable instant
	// before the current month.
	lastMonth = storage.TimeRange{From: aggregation.MonthStart(now, -1), To: start.Add(-time.Microsecond)}
	return thisMonth, lastMonth
}

// trailing returns the range covering the last months calendar months up to now.
func trailing(now time.Time, months int) storage.TimeRange {
	return storage.TimeRange{From: aggregation.MonthStart(now, -(months - 1)), To: now}
}

// DashboardStats returns the admin-stats report.
func (s *Service) DashboardStats(ctx context.Context) (Stats, error) {
	return cached(ctx, s, cache.AdminStats, ReportStats, s.buildStats)
}

func (s *Service) buildStats(ctx context.Context, now time.Time) (Stats, error) {
	thisMonth, lastMonth := monthRanges(now)
	sixMonths := trailing(now, statsChartMonths)

	var (
		thisMonthProducts, lastMonthProducts int64
		thisMonthUsers, lastMonthUsers       int64
		thisMonthOrders, lastMonthOrders     []storage.Order
		productCount, userCount, femaleCount int64
		allOrders, sixMonthOrders, latest    []storage.Order
		categories                           []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		thisMonthProducts, err = s.repo.CountProducts(gctx, storage.ProductFilter{Created: thisMonth})
		return wrap("count this month's products", err)
	})
	g.Go(func() (err error) {
		lastMonthProducts, err = s.repo.CountProducts(gctx, storage.ProductFilter{Created: lastMonth})
		return wrap("count last month's products", err)
	})
	g.Go(func() (err error) {
		thisMonthUsers, err = s.repo.CountUsers(gctx, storage.UserFilter{Created: thisMonth})
		return wrap("count this month's users", err)
	})
	g.Go(func() (err error) {
		lastMonthUsers, err = s.repo.CountUsers(gctx, storage.UserFilter{Created: lastMonth})
		return wrap("count last month's users", err)
	})
	g.Go(func() (err error) {
		thisMonthOrders, err = s.repo.FindOrders(gctx, storage.OrderFilter{Created: thisMonth})
		return wrap("find this month's orders", err)
	})
	g.Go(func() (err error) {
		lastMonthOrders, err = s.repo.FindOrders(gctx, storage.OrderFilter{Created: lastMonth})
		return wrap("find last month's orders", err)
	})
	g.Go(func() (err error) {
		productCount, err = s.repo.CountProducts(gctx, storage.ProductFilter{})
		return wrap("count products", err)
	})
	g.Go(func() (err error) {
		userCount, err = s.repo.CountUsers(gctx, storage.UserFilter{})
		return wrap("count users", err)
	})
	g.Go(func() (err error) {
		allOrders, err = s.repo.FindOrders(gctx, storage.OrderFilter{})
		return wrap("find orders", err)
	})
	g.Go(func() (err error) {
		sixMonthOrders, err = s.repo.FindOrders(gctx, storage.OrderFilter{Created: sixMonths})
		return wrap("find trailing orders", err)
	})
	g.Go(func() (err error) {
		categories, err = s.repo.DistinctCategories(gctx)
		return wrap("list categories", err)
	})
	g.Go(func() (err error) {
		femaleCount, err = s.repo.CountUsers(gctx, storage.UserFilter{Gender: storage.GenderFemale})
		return wrap("count female users", err)
	})
	g.Go(func() (err error) {
		latest, err = s.repo.FindOrders(gctx, storage.OrderFilter{Newest: true, Limit: latestTransactions})
		return wrap("find latest orders", err)
	})
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	categoryCount, err := Inventories(ctx, s.repo, categories, productCount)
	if err != nil {
		return Stats{}, err
	}

	thisMonthRevenue := aggregation.Sum(thisMonthOrders, aggregation.FieldTotal)
	lastMonthRevenue := aggregation.Sum(lastMonthOrders, aggregation.FieldTotal)

	transactions := make([]Transaction, 0, len(latest))
	for _, o := range latest {
		transactions = append(transactions, Transaction{
			ID:       o.ID,
			Discount: aggregation.FieldValue(o, aggregation.FieldDiscount).InexactFloat64(),
			Amount:   aggregation.FieldValue(o, aggregation.FieldTotal).InexactFloat64(),
			Quantity: len(o.Items),
			Status:   o.Status,
		})
	}

	return Stats{
		CategoryCount: categoryCount,
		ChangePercent: ChangePercent{
			Revenue: aggregation.PercentageChange(thisMonthRevenue, lastMonthRevenue),
			User:    aggregation.PercentageChangeInt(thisMonthUsers, lastMonthUsers),
			Order:   aggregation.PercentageChangeInt(int64(len(thisMonthOrders)), int64(len(lastMonthOrders))),
			Product: aggregation.PercentageChangeInt(thisMonthProducts, lastMonthProducts),
		},
		Count: Count{
			Revenue: aggregation.Sum(allOrders, aggregation.FieldTotal).InexactFloat64(),
			Product: productCount,
			User:    userCount,
			Order:   int64(len(allOrders)),
		},
		Chart: StatsChart{
			Order:   aggregation.ChartData(statsChartMonths, now, sixMonthOrders, ""),
			Revenue: aggregation.ChartData(statsChartMonths, now, sixMonthOrders, aggregation.FieldTotal),
		},
		UserRatio: UserRatio{
			Male:   userCount - femaleCount,
			Female: femaleCount,
		},
		LatestTransactions: transactions,
	}, nil
}

func wrap(what string, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	return nil
}
