package memory

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/shopadmin/shopadmin/internal/core/storage"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// seedFile is the on-disk YAML shape of a fixture file.
// Money values are strings so they parse exactly.
type seedFile struct {
	Products []seedProduct `yaml:"products"`
	Users    []seedUser    `yaml:"users"`
	Orders   []seedOrder   `yaml:"orders"`
}

type seedProduct struct {
	ID        string    `yaml:"id"`
	Name      string    `yaml:"name"`
	Photo     string    `yaml:"photo"`
	Category  string    `yaml:"category"`
	Price     string    `yaml:"price"`
	Stock     int       `yaml:"stock"`
	CreatedAt time.Time `yaml:"created_at"`
}

type seedUser struct {
	ID        string    `yaml:"id"`
	Name      string    `yaml:"name"`
	Email     string    `yaml:"email"`
	Photo     string    `yaml:"photo"`
	Role      string    `yaml:"role"`
	Gender    string    `yaml:"gender"`
	DOB       time.Time `yaml:"dob"`
	CreatedAt time.Time `yaml:"created_at"`
}

type seedOrderItem struct {
	ProductID string `yaml:"product_id"`
	Name      string `yaml:"name"`
	Price     string `yaml:"price"`
	Quantity  int    `yaml:"quantity"`
}

type seedOrder struct {
	ID              string          `yaml:"id"`
	UserID          string          `yaml:"user_id"`
	Items           []seedOrderItem `yaml:"items"`
	Subtotal        *string         `yaml:"subtotal"`
	Tax             *string         `yaml:"tax"`
	ShippingCharges *string         `yaml:"shipping_charges"`
	Discount        *string         `yaml:"discount"`
	Total           *string         `yaml:"total"`
	Status          string          `yaml:"status"`
	CreatedAt       time.Time       `yaml:"created_at"`
}

// LoadSeedFile reads a YAML fixture file into the store.
func (s *Store) LoadSeedFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading seed file %s: %w", path, err)
	}
	if err := s.LoadSeed(data); err != nil {
		return fmt.Errorf("seed file %s: %w", path, err)
	}
	return nil
}

// LoadSeed parses YAML fixture data into the store. Existing records with the same
// id are replaced.
func (s *Store) LoadSeed(data []byte) error {
	var raw seedFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing seed: %w", err)
	}

	products := make([]storage.Product, 0, len(raw.Products))
	for _, p := range raw.Products {
		if p.ID == "" {
			return fmt.Errorf("product %q: id must not be empty", p.Name)
		}
		price, err := parseMoney(p.Price)
		if err != nil {
			return fmt.Errorf("product %q: price: %w", p.ID, err)
		}
		products = append(products, storage.Product{
			ID:        p.ID,
			Name:      p.Name,
			Photo:     p.Photo,
			Category:  strings.ToLower(p.Category),
			Price:     price,
			Stock:     p.Stock,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.CreatedAt,
		})
	}

	users := make([]storage.User, 0, len(raw.Users))
	for _, u := range raw.Users {
		if u.ID == "" {
			return fmt.Errorf("user %q: id must not be empty", u.Name)
		}
		role := u.Role
		if role == "" {
			role = storage.RoleUser
		}
		users = append(users, storage.User{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			Photo:     u.Photo,
			Role:      role,
			Gender:    u.Gender,
			DOB:       u.DOB,
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.CreatedAt,
		})
	}

	orders := make([]storage.Order, 0, len(raw.Orders))
	for _, o := range raw.Orders {
		if o.ID == "" {
			return fmt.Errorf("order for user %q: id must not be empty", o.UserID)
		}
		order := storage.Order{
			ID:        o.ID,
			UserID:    o.UserID,
			Status:    o.Status,
			CreatedAt: o.CreatedAt,
			UpdatedAt: o.CreatedAt,
		}
		if order.Status == "" {
			order.Status = storage.StatusProcessing
		}
		for _, it := range o.Items {
			price, err := parseMoney(it.Price)
			if err != nil {
				return fmt.Errorf("order %q: item price: %w", o.ID, err)
			}
			order.Items = append(order.Items, storage.OrderItem{
				ProductID: it.ProductID,
				Name:      it.Name,
				Price:     price,
				Quantity:  it.Quantity,
			})
		}
		fields := []struct {
			raw *string
			dst *decimal.NullDecimal
		}{
			{o.Subtotal, &order.Subtotal},
			{o.Tax, &order.Tax},
			{o.ShippingCharges, &order.ShippingCharges},
			{o.Discount, &order.Discount},
			{o.Total, &order.Total},
		}
		for _, f := range fields {
			if f.raw == nil {
				continue
			}
			v, err := decimal.NewFromString(*f.raw)
			if err != nil {
				return fmt.Errorf("order %q: %w", o.ID, err)
			}
			*f.dst = decimal.NewNullDecimal(v)
		}
		orders = append(orders, order)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range products {
		s.products[p.ID] = p
	}
	for _, u := range users {
		s.users[u.ID] = u
	}
	for _, o := range orders {
		s.orders[o.ID] = o
	}

	slog.Info("[Memory] Seed loaded",
		"products", len(products),
		"users", len(users),
		"orders", len(orders),
	)
	return nil
}

func parseMoney(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
