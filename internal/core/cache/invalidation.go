package cache

import "log/slog"

// Invalidation is the flag set a mutation sends to the cache to name the derived
// entries that are now stale.
type Invalidation struct {
	// Product drops the product listings and every product in ProductIDs.
	Product bool
	// Order drops the global order list, the order list of UserID and OrderID.
	Order bool
	// Admin drops the four dashboard reports.
	Admin bool

	UserID     string
	OrderID    string
	ProductIDs []string
}

// Keys returns the exact set of keys the invalidation deletes.
func (inv Invalidation) Keys() []Key {
	var keys []Key

	if inv.Product {
		keys = append(keys, LatestProducts, Categories, AllProducts)
		for _, id := range inv.ProductIDs {
			if id != "" {
				keys = append(keys, ProductKey(id))
			}
		}
	}

	if inv.Order {
		keys = append(keys, AllOrders)
		if inv.UserID != "" {
			keys = append(keys, UserOrdersKey(inv.UserID))
		}
		if inv.OrderID != "" {
			keys = append(keys, OrderKey(inv.OrderID))
		}
	}

	if inv.Admin {
		keys = append(keys, AdminReports...)
	}

	return keys
}

// Invalidate deletes every key named by inv. Deletes are unconditional; keys that
// are not cached are skipped silently.
func (s *Store) Invalidate(inv Invalidation) {
	keys := inv.Keys()
	if len(keys) == 0 {
		return
	}

	s.mu.Lock()
	for _, key := range keys {
		delete(s.entries, key)
	}
	s.epoch++
	s.mu.Unlock()

	for _, key := range keys {
		s.observer.Invalidated(key.Kind())
	}

	slog.Debug("[Cache] Invalidated entries",
		"product", inv.Product,
		"order", inv.Order,
		"admin", inv.Admin,
		"keys", len(keys),
	)
}
