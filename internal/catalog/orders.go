package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopadmin/shopadmin/internal/core/cache"
	"github.com/shopadmin/shopadmin/internal/core/storage"
	"github.com/shopspring/decimal"
)

// OrderLine is one requested product of a new order.
type OrderLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// OrderInput places an order. Money fields are optional.
type OrderInput struct {
	UserID          string               `json:"user"`
	ShippingInfo    storage.ShippingInfo `json:"shippingInfo"`
	Items           []OrderLine          `json:"orderItems"`
	Subtotal        decimal.NullDecimal  `json:"subtotal"`
	Tax             decimal.NullDecimal  `json:"tax"`
	ShippingCharges decimal.NullDecimal  `json:"shippingCharges"`
	Discount        decimal.NullDecimal  `json:"discount"`
	Total           decimal.NullDecimal  `json:"total"`
}

func (in OrderInput) validate() error {
	if strings.TrimSpace(in.UserID) == "" {
		return invalidInputf("user is required")
	}
	si := in.ShippingInfo
	if si.Address == "" || si.City == "" || si.State == "" || si.Country == "" || si.PinCode == "" {
		return invalidInputf("shipping info is incomplete")
	}
	if len(in.Items) == 0 {
		return invalidInputf("at least one order item is required")
	}
	for _, line := range in.Items {
		if line.ProductID == "" || line.Quantity <= 0 {
			return invalidInputf("order items need a product id and a positive quantity")
		}
	}
	for _, f := range []struct {
		name  string
		value decimal.NullDecimal
	}{
		{"subtotal", in.Subtotal},
		{"tax", in.Tax},
		{"shippingCharges", in.ShippingCharges},
		{"discount", in.Discount},
		{"total", in.Total},
	} {
		if f.value.Valid && f.value.Decimal.IsNegative() {
			return invalidInputf("%s must be >= 0", f.name)
		}
	}
	return nil
}

// mergeLines sums the quantities of lines naming the same product, keeping the
// order in which products first appear.
func mergeLines(lines []OrderLine) []OrderLine {
	index := make(map[string]int, len(lines))
	out := make([]OrderLine, 0, len(lines))
	for _, line := range lines {
		if i, ok := index[line.ProductID]; ok {
			out[i].Quantity += line.Quantity
			continue
		}
		index[line.ProductID] = len(out)
		out = append(out, line)
	}
	return out
}

// NewOrder places an order and takes the ordered quantities out of stock.
func (s *Service) NewOrder(ctx context.Context, in OrderInput) (*storage.Order, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetUser(ctx, in.UserID); err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	lines := mergeLines(in.Items)
	products := make([]*storage.Product, len(lines))
	items := make([]storage.OrderItem, len(lines))
	productIDs := make([]string, len(lines))
	for i, line := range lines {
		p, err := s.repo.GetProduct(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("get product: %w", err)
		}
		if p.Stock < line.Quantity {
			return nil, invalidInputf("product %s has %d in stock, %d requested", p.ID, p.Stock, line.Quantity)
		}
		products[i] = p
		productIDs[i] = p.ID
		items[i] = storage.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Photo:     p.Photo,
			Price:     p.Price,
			Quantity:  line.Quantity,
		}
	}

	now := s.nowFn()
	o := &storage.Order{
		ID:              s.newID(),
		UserID:          in.UserID,
		ShippingInfo:    in.ShippingInfo,
		Items:           items,
		Subtotal:        in.Subtotal,
		Tax:             in.Tax,
		ShippingCharges: in.ShippingCharges,
		Discount:        in.Discount,
		Total:           in.Total,
		Status:          storage.StatusProcessing,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.CreateOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	// Stock is reduced after the order exists. A failure here leaves the order in
	// place and is reported, but the cache is still invalidated below.
	var stockErr error
	for i, p := range products {
		p.Stock -= lines[i].Quantity
		p.UpdatedAt = now
		if err := s.repo.UpdateProduct(ctx, p); err != nil {
			stockErr = fmt.Errorf("reduce stock of product %s: %w", p.ID, err)
			break
		}
	}

	s.cache.Invalidate(cache.Invalidation{
		Product:    true,
		Order:      true,
		Admin:      true,
		UserID:     o.UserID,
		ProductIDs: productIDs,
	})
	if stockErr != nil {
		return nil, stockErr
	}

	slog.Info("[Catalog] Order placed", "order_id", o.ID, "user_id", o.UserID, "items", len(o.Items))
	return o, nil
}

// ProcessOrder advances an order to its next status.
func (s *Service) ProcessOrder(ctx context.Context, id string) (*storage.Order, error) {
	o, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	o.Status = storage.NextStatus(o.Status)
	o.UpdatedAt = s.nowFn()
	if err := s.repo.UpdateOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}

	s.cache.Invalidate(cache.Invalidation{Order: true, Admin: true, UserID: o.UserID, OrderID: o.ID})
	slog.Info("[Catalog] Order processed", "order_id", o.ID, "status", o.Status)
	return o, nil
}

// DeleteOrder removes an order. Stock is not restored.
func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	o, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return fmt.Errorf("get order: %w", err)
	}
	if err := s.repo.DeleteOrder(ctx, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	s.cache.Invalidate(cache.Invalidation{Order: true, Admin: true, UserID: o.UserID, OrderID: o.ID})
	slog.Info("[Catalog] Order deleted", "order_id", o.ID)
	return nil
}

// MyOrders returns the orders of one user.
func (s *Service) MyOrders(ctx context.Context, userID string) ([]storage.Order, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, invalidInputf("user id is required")
	}
	return cachedRead(ctx, s, cache.UserOrdersKey(userID), func(ctx context.Context) ([]storage.Order, error) {
		return s.repo.FindOrders(ctx, storage.OrderFilter{UserID: userID})
	})
}

// AllOrders returns every order.
func (s *Service) AllOrders(ctx context.Context) ([]storage.Order, error) {
	return cachedRead(ctx, s, cache.AllOrders, func(ctx context.Context) ([]storage.Order, error) {
		return s.repo.FindOrders(ctx, storage.OrderFilter{})
	})
}

// GetOrder returns one order.
func (s *Service) GetOrder(ctx context.Context, id string) (*storage.Order, error) {
	return cachedRead(ctx, s, cache.OrderKey(id), func(ctx context.Context) (*storage.Order, error) {
		return s.repo.GetOrder(ctx, id)
	})
}
