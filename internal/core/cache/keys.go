package cache

// Kind identifies the family a cache key belongs to.
type Kind uint8

const (
	KindAdminStats Kind = iota + 1
	KindAdminPieCharts
	KindAdminBarCharts
	KindAdminLineCharts
	KindLatestProducts
	KindCategories
	KindAllProducts
	KindProduct
	KindAllOrders
	KindUserOrders
	KindOrder
)

// kindNames holds the wire name of each kind. Parameterized kinds are rendered as
// "<name>-<id>".
var kindNames = map[Kind]string{
	KindAdminStats:      "admin-stats",
	KindAdminPieCharts:  "admin-pie-charts",
	KindAdminBarCharts:  "admin-bar-charts",
	KindAdminLineCharts: "admin-line-charts",
	KindLatestProducts:  "latest-product",
	KindCategories:      "categories",
	KindAllProducts:     "all-products",
	KindProduct:         "product",
	KindAllOrders:       "all-orders",
	KindUserOrders:      "my-orders",
	KindOrder:           "order",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Key is a cache key. Keys can only be built from the constants and constructors in
// this file, so every key the cache ever sees is covered by the invalidation policy.
type Key struct {
	kind Kind
	id   string
}

var (
	AdminStats      = Key{kind: KindAdminStats}
	AdminPieCharts  = Key{kind: KindAdminPieCharts}
	AdminBarCharts  = Key{kind: KindAdminBarCharts}
	AdminLineCharts = Key{kind: KindAdminLineCharts}
	LatestProducts  = Key{kind: KindLatestProducts}
	Categories      = Key{kind: KindCategories}
	AllProducts     = Key{kind: KindAllProducts}
	AllOrders       = Key{kind: KindAllOrders}
)

// AdminReports lists the keys of the four dashboard reports.
var AdminReports = []Key{AdminStats, AdminPieCharts, AdminBarCharts, AdminLineCharts}

// ProductKey is the key of a single cached product.
func ProductKey(id string) Key { return Key{kind: KindProduct, id: id} }

// OrderKey is the key of a single cached order.
func OrderKey(id string) Key { return Key{kind: KindOrder, id: id} }

// UserOrdersKey is the key of the cached order list of one user.
func UserOrdersKey(userID string) Key { return Key{kind: KindUserOrders, id: userID} }

// Kind returns the key family.
func (k Key) Kind() Kind { return k.kind }

// String renders the key the way it is logged and exported in metrics,
// e.g. "admin-stats" or "product-42".
func (k Key) String() string {
	if k.id == "" {
		return k.kind.String()
	}
	return k.kind.String() + "-" + k.id
}
