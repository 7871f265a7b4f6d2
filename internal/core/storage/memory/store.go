package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/shopadmin/shopadmin/internal/core/storage"
)

// Store is an in-memory storage.Repository. Records are copied on the way in and
// out so callers never share state with the store.
type Store struct {
	mu       sync.RWMutex
	products map[string]storage.Product
	users    map[string]storage.User
	orders   map[string]storage.Order
}

var _ storage.Repository = (*Store)(nil)

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		products: make(map[string]storage.Product),
		users:    make(map[string]storage.User),
		orders:   make(map[string]storage.Order),
	}
}

// --- products ---

func (s *Store) FindProducts(_ context.Context, f storage.ProductFilter) ([]storage.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]storage.Product, 0)
	for _, p := range s.products {
		if matchProduct(p, f) {
			out = append(out, p)
		}
	}
	sortProductsByCreated(out)
	return out, nil
}

func (s *Store) CountProducts(_ context.Context, f storage.ProductFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, p := range s.products {
		if matchProduct(p, f) {
			n++
		}
	}
	return n, nil
}

func (s *Store) DistinctCategories(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range s.products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out, nil
}

func (s *Store) LatestProducts(_ context.Context, limit int) ([]storage.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]storage.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) SearchProducts(_ context.Context, q storage.ProductSearch) ([]storage.Product, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name := strings.ToLower(q.Name)
	matches := make([]storage.Product, 0)
	for _, p := range s.products {
		if name != "" && !strings.Contains(strings.ToLower(p.Name), name) {
			continue
		}
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if q.MaxPrice != nil && p.Price.InexactFloat64() > *q.MaxPrice {
			continue
		}
		matches = append(matches, p)
	}

	sortProductsByCreated(matches)
	switch q.Sort {
	case "asc":
		sort.SliceStable(matches, func(i, j int) bool { return matches[i].Price.LessThan(matches[j].Price) })
	case "desc":
		sort.SliceStable(matches, func(i, j int) bool { return matches[i].Price.GreaterThan(matches[j].Price) })
	}

	total := int64(len(matches))
	if q.Offset > 0 {
		if q.Offset >= len(matches) {
			return []storage.Product{}, total, nil
		}
		matches = matches[q.Offset:]
	}
	if q.Limit > 0 && len(matches) > q.Limit {
		matches = matches[:q.Limit]
	}
	return matches, total, nil
}

func (s *Store) GetProduct(_ context.Context, id string) (*storage.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, fmt.Errorf("product %q: %w", id, storage.ErrNotFound)
	}
	return &p, nil
}

func (s *Store) CreateProduct(_ context.Context, p *storage.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[p.ID]; exists {
		return fmt.Errorf("product %q already exists", p.ID)
	}
	s.products[p.ID] = *p
	return nil
}

func (s *Store) UpdateProduct(_ context.Context, p *storage.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[p.ID]; !exists {
		return fmt.Errorf("product %q: %w", p.ID, storage.ErrNotFound)
	}
	s.products[p.ID] = *p
	return nil
}

func (s *Store) DeleteProduct(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[id]; !exists {
		return fmt.Errorf("product %q: %w", id, storage.ErrNotFound)
	}
	delete(s.products, id)
	return nil
}

// --- users ---

func (s *Store) FindUsers(_ context.Context, f storage.UserFilter) ([]storage.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]storage.User, 0)
	for _, u := range s.users {
		if matchUser(u, f) {
			out = append(out, u)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) CountUsers(_ context.Context, f storage.UserFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, u := range s.users {
		if matchUser(u, f) {
			n++
		}
	}
	return n, nil
}

func (s *Store) GetUser(_ context.Context, id string) (*storage.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %q: %w", id, storage.ErrNotFound)
	}
	return &u, nil
}

func (s *Store) CreateUser(_ context.Context, u *storage.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[u.ID]; exists {
		return fmt.Errorf("user %q already exists", u.ID)
	}
	s.users[u.ID] = *u
	return nil
}

func (s *Store) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[id]; !exists {
		return fmt.Errorf("user %q: %w", id, storage.ErrNotFound)
	}
	delete(s.users, id)
	return nil
}

// --- orders ---

func (s *Store) FindOrders(_ context.Context, f storage.OrderFilter) ([]storage.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]storage.Order, 0)
	for _, o := range s.orders {
		if matchOrder(o, f) {
			out = append(out, copyOrder(o))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		if f.Newest {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (s *Store) CountOrders(_ context.Context, f storage.OrderFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, o := range s.orders {
		if matchOrder(o, f) {
			n++
		}
	}
	return n, nil
}

func (s *Store) GetOrder(_ context.Context, id string) (*storage.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %q: %w", id, storage.ErrNotFound)
	}
	out := copyOrder(o)
	return &out, nil
}

func (s *Store) CreateOrder(_ context.Context, o *storage.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orders[o.ID]; exists {
		return fmt.Errorf("order %q already exists", o.ID)
	}
	s.orders[o.ID] = copyOrder(*o)
	return nil
}

func (s *Store) UpdateOrder(_ context.Context, o *storage.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orders[o.ID]; !exists {
		return fmt.Errorf("order %q: %w", o.ID, storage.ErrNotFound)
	}
	s.orders[o.ID] = copyOrder(*o)
	return nil
}

func (s *Store) DeleteOrder(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orders[id]; !exists {
		return fmt.Errorf("order %q: %w", id, storage.ErrNotFound)
	}
	delete(s.orders, id)
	return nil
}

func matchProduct(p storage.Product, f storage.ProductFilter) bool {
	if !f.Created.Contains(p.CreatedAt) {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.OutOfStock && p.Stock != 0 {
		return false
	}
	return true
}

func matchUser(u storage.User, f storage.UserFilter) bool {
	if !f.Created.Contains(u.CreatedAt) {
		return false
	}
	if f.Gender != "" && u.Gender != f.Gender {
		return false
	}
	if f.Role != "" && u.Role != f.Role {
		return false
	}
	return true
}

func matchOrder(o storage.Order, f storage.OrderFilter) bool {
	if !f.Created.Contains(o.CreatedAt) {
		return false
	}
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	if f.UserID != "" && o.UserID != f.UserID {
		return false
	}
	return true
}

func sortProductsByCreated(products []storage.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		if products[i].CreatedAt.Equal(products[j].CreatedAt) {
			return products[i].ID < products[j].ID
		}
		return products[i].CreatedAt.Before(products[j].CreatedAt)
	})
}

func copyOrder(o storage.Order) storage.Order {
	if o.Items != nil {
		items := make([]storage.OrderItem, len(o.Items))
		copy(items, o.Items)
		o.Items = items
	}
	return o
}
