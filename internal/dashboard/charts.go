package dashboard

import (
	"context"
	"time"

	"github.com/shopadmin/shopadmin/internal/core/aggregation"
	"github.com/shopadmin/shopadmin/internal/core/cache"
	"github.com/shopadmin/shopadmin/internal/core/storage"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	barShortMonths = 6
	barLongMonths  = 12
	lineMonths     = 12
)

var marketingShare = decimal.RequireFromString("0.3")

// Age band limits in years.
const (
	adultAge = 20
	oldAge   = 40
)

// PieCharts returns the admin-pie-charts report.
func (s *Service) PieCharts(ctx context.Context) (PieCharts, error) {
	return cached(ctx, s, cache.AdminPieCharts, ReportPie, s.buildPieCharts)
}

func (s *Service) buildPieCharts(ctx context.Context, now time.Time) (PieCharts, error) {
	var (
		fulfillment               OrderFullfillment
		categories                []string
		productCount, outOfStock  int64
		orders                    []storage.Order
		users                     []storage.User
		adminCount, customerCount int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		fulfillment.Processing, err = s.repo.CountOrders(gctx, storage.OrderFilter{Status: storage.StatusProcessing})
		return wrap("count processing orders", err)
	})
	g.Go(func() (err error) {
		fulfillment.Shipped, err = s.repo.CountOrders(gctx, storage.OrderFilter{Status: storage.StatusShipped})
		return wrap("count shipped orders", err)
	})
	g.Go(func() (err error) {
		fulfillment.Delivered, err = s.repo.CountOrders(gctx, storage.OrderFilter{Status: storage.StatusDelivered})
		return wrap("count delivered orders", err)
	})
	g.Go(func() (err error) {
		categories, err = s.repo.DistinctCategories(gctx)
		return wrap("list categories", err)
	})
	g.Go(func() (err error) {
		productCount, err = s.repo.CountProducts(gctx, storage.ProductFilter{})
		return wrap("count products", err)
	})
	g.Go(func() (err error) {
		outOfStock, err = s.repo.CountProducts(gctx, storage.ProductFilter{OutOfStock: true})
		return wrap("count out of stock products", err)
	})
	g.Go(func() (err error) {
		orders, err = s.repo.FindOrders(gctx, storage.OrderFilter{})
		return wrap("find orders", err)
	})
	g.Go(func() (err error) {
		users, err = s.repo.FindUsers(gctx, storage.UserFilter{})
		return wrap("find users", err)
	})
	g.Go(func() (err error) {
		adminCount, err = s.repo.CountUsers(gctx, storage.UserFilter{Role: storage.RoleAdmin})
		return wrap("count admins", err)
	})
	g.Go(func() (err error) {
		customerCount, err = s.repo.CountUsers(gctx, storage.UserFilter{Role: storage.RoleUser})
		return wrap("count customers", err)
	})
	if err := g.Wait(); err != nil {
		return PieCharts{}, err
	}

	productCategories, err := Inventories(ctx, s.repo, categories, productCount)
	if err != nil {
		return PieCharts{}, err
	}

	return PieCharts{
		OrderFullfillment: fulfillment,
		ProductCategories: productCategories,
		StockAvailability: StockAvailability{
			InStock:    productCount - outOfStock,
			OutOfStock: outOfStock,
		},
		RevenueDistribution: revenueDistribution(orders),
		Customers: Customers{
			Admin:    adminCount,
			Customer: customerCount,
		},
		UserAge: userAges(users, now),
	}, nil
}

func revenueDistribution(orders []storage.Order) RevenueDistribution {
	gross := aggregation.Sum(orders, aggregation.FieldTotal)
	discount := aggregation.Sum(orders, aggregation.FieldDiscount)
	production := aggregation.Sum(orders, aggregation.FieldShippingCharges)
	burnt := aggregation.Sum(orders, aggregation.FieldTax)
	marketing := gross.Mul(marketingShare).Round(0)
	net := gross.Sub(production.Add(burnt).Add(marketing))

	return RevenueDistribution{
		NetMargin:      net.InexactFloat64(),
		Discount:       discount.InexactFloat64(),
		ProductionCost: production.InexactFloat64(),
		Burnt:          burnt.InexactFloat64(),
		MarketingCost:  marketing.InexactFloat64(),
	}
}

func userAges(users []storage.User, now time.Time) UserAge {
	var ages UserAge
	for _, u := range users {
		switch age := u.Age(now); {
		case age < adultAge:
			ages.Teen++
		case age < oldAge:
			ages.Adult++
		default:
			ages.Old++
		}
	}
	return ages
}

// BarCharts returns the admin-bar-charts report.
func (s *Service) BarCharts(ctx context.Context) (BarCharts, error) {
	return cached(ctx, s, cache.AdminBarCharts, ReportBar, s.buildBarCharts)
}

func (s *Service) buildBarCharts(ctx context.Context, now time.Time) (BarCharts, error) {
	var (
		products []storage.Product
		users    []storage.User
		orders   []storage.Order
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = s.repo.FindProducts(gctx, storage.ProductFilter{Created: trailing(now, barShortMonths)})
		return wrap("find trailing products", err)
	})
	g.Go(func() (err error) {
		users, err = s.repo.FindUsers(gctx, storage.UserFilter{Created: trailing(now, barShortMonths)})
		return wrap("find trailing users", err)
	})
	g.Go(func() (err error) {
		orders, err = s.repo.FindOrders(gctx, storage.OrderFilter{Created: trailing(now, barLongMonths)})
		return wrap("find trailing orders", err)
	})
	if err := g.Wait(); err != nil {
		return BarCharts{}, err
	}

	return BarCharts{
		Products: aggregation.ChartData(barShortMonths, now, products, ""),
		Users:    aggregation.ChartData(barShortMonths, now, users, ""),
		Orders:   aggregation.ChartData(barLongMonths, now, orders, ""),
	}, nil
}

// LineCharts returns the admin-line-charts report.
func (s *Service) LineCharts(ctx context.Context) (LineCharts, error) {
	return cached(ctx, s, cache.AdminLineCharts, ReportLine, s.buildLineCharts)
}

func (s *Service) buildLineCharts(ctx context.Context, now time.Time) (LineCharts, error) {
	window := trailing(now, lineMonths)

	var (
		products []storage.Product
		users    []storage.User
		orders   []storage.Order
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = s.repo.FindProducts(gctx, storage.ProductFilter{Created: window})
		return wrap("find trailing products", err)
	})
	g.Go(func() (err error) {
		users, err = s.repo.FindUsers(gctx, storage.UserFilter{Created: window})
		return wrap("find trailing users", err)
	})
	g.Go(func() (err error) {
		orders, err = s.repo.FindOrders(gctx, storage.OrderFilter{Created: window})
		return wrap("find trailing orders", err)
	})
	if err := g.Wait(); err != nil {
		return LineCharts{}, err
	}

	return LineCharts{
		Products: aggregation.ChartData(lineMonths, now, products, ""),
		Users:    aggregation.ChartData(lineMonths, now, users, ""),
		Discount: aggregation.ChartData(lineMonths, now, orders, aggregation.FieldDiscount),
		Revenue:  aggregation.ChartData(lineMonths, now, orders, aggregation.FieldTotal),
	}, nil
}
