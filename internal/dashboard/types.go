package dashboard

import "fmt"

// Stats is the admin-stats report.
type Stats struct {
	CategoryCount      map[string]int `json:"categoryCount"`
	ChangePercent      ChangePercent  `json:"changePercent"`
	Count              Count          `json:"count"`
	Chart              StatsChart     `json:"chart"`
	UserRatio          UserRatio      `json:"userRatio"`
	LatestTransactions []Transaction  `json:"latestTransactions"`
}

// ChangePercent holds month-over-month changes in percent.
type ChangePercent struct {
	Revenue float64 `json:"revenue"`
	User    float64 `json:"user"`
	Order   float64 `json:"order"`
	Product float64 `json:"product"`
}

// Count holds all-time totals.
type Count struct {
	Revenue float64 `json:"revenue"`
	Product int64   `json:"product"`
	User    int64   `json:"user"`
	Order   int64   `json:"order"`
}

// StatsChart holds the trailing six months of orders.
type StatsChart struct {
	Order   []float64 `json:"order"`
	Revenue []float64 `json:"revenue"`
}

type UserRatio struct {
	Male   int64 `json:"male"`
	Female int64 `json:"female"`
}

// Transaction is a condensed order shown on the dashboard.
type Transaction struct {
	ID       string  `json:"id"`
	Discount float64 `json:"discount"`
	Amount   float64 `json:"amount"`
	Quantity int     `json:"quantity"`
	Status   string  `json:"status"`
}

// PieCharts is the admin-pie-charts report.
type PieCharts struct {
	OrderFullfillment   OrderFullfillment   `json:"orderFullfillment"`
	ProductCategories   map[string]int      `json:"productCategories"`
	StockAvailability   StockAvailability   `json:"stockAvailability"`
	RevenueDistribution RevenueDistribution `json:"revenueDistribution"`
	Customers           Customers           `json:"customers"`
	UserAge             UserAge             `json:"userAge"`
}

// OrderFullfillment counts orders per status.
type OrderFullfillment struct {
	Processing int64 `json:"processing"`
	Shipped    int64 `json:"shipped"`
	Delivered  int64 `json:"delivered"`
}

type StockAvailability struct {
	InStock    int64 `json:"inStock"`
	OutOfStock int64 `json:"outOfStock"`
}

// RevenueDistribution splits gross income over its cost components.
type RevenueDistribution struct {
	NetMargin      float64 `json:"netMargin"`
	Discount       float64 `json:"discount"`
	ProductionCost float64 `json:"productionCost"`
	Burnt          float64 `json:"burnt"`
	MarketingCost  float64 `json:"marketingCost"`
}

type Customers struct {
	Admin    int64 `json:"admin"`
	Customer int64 `json:"customer"`
}

// UserAge buckets users into under 20, 20 to 39 and 40 plus.
type UserAge struct {
	Teen  int `json:"teen"`
	Adult int `json:"adult"`
	Old   int `json:"old"`
}

// BarCharts is the admin-bar-charts report.
type BarCharts struct {
	Products []float64 `json:"products"`
	Users    []float64 `json:"users"`
	Orders   []float64 `json:"orders"`
}

// LineCharts is the admin-line-charts report.
type LineCharts struct {
	Products []float64 `json:"products"`
	Users    []float64 `json:"users"`
	Discount []float64 `json:"discount"`
	Revenue  []float64 `json:"revenue"`
}

func checkLen(name string, series []float64, want int) error {
	if len(series) != want {
		return fmt.Errorf("%s has %d buckets, want %d", name, len(series), want)
	}
	return nil
}

// Validate checks a decoded Stats report.
func (s Stats) Validate() error {
	if s.CategoryCount == nil {
		return fmt.Errorf("categoryCount is missing")
	}
	if err := checkLen("chart.order", s.Chart.Order, statsChartMonths); err != nil {
		return err
	}
	return checkLen("chart.revenue", s.Chart.Revenue, statsChartMonths)
}

func (p PieCharts) Validate() error {
	if p.ProductCategories == nil {
		return fmt.Errorf("productCategories is missing")
	}
	return nil
}

func (b BarCharts) Validate() error {
	if err := checkLen("products", b.Products, barShortMonths); err != nil {
		return err
	}
	if err := checkLen("users", b.Users, barShortMonths); err != nil {
		return err
	}
	return checkLen("orders", b.Orders, barLongMonths)
}

func (l LineCharts) Validate() error {
	for _, s := range []struct {
		name   string
		series []float64
	}{
		{"products", l.Products},
		{"users", l.Users},
		{"discount", l.Discount},
		{"revenue", l.Revenue},
	} {
		if err := checkLen(s.name, s.series, lineMonths); err != nil {
			return err
		}
	}
	return nil
}
