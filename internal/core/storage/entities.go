package storage

import (
	"time"

	"github.com/shopadmin/shopadmin/internal/core/aggregation"
	"github.com/shopspring/decimal"
)

// User roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User genders.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Order statuses, in processing order.
const (
	StatusProcessing = "Processing"
	StatusShipped    = "Shipped"
	StatusDelivered  = "Delivered"
)

// Product is a catalog entry. Category is always stored lower-cased.
type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Photo     string          `json:"photo"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (p Product) Timestamp() time.Time { return p.CreatedAt }

func (p Product) Numeric(field string) (decimal.Decimal, bool) {
	switch field {
	case aggregation.FieldPrice:
		return p.Price, true
	case aggregation.FieldStock:
		return decimal.NewFromInt(int64(p.Stock)), true
	}
	return decimal.Zero, false
}

// User is a shop account.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Photo     string    `json:"photo"`
	Role      string    `json:"role"`
	Gender    string    `json:"gender"`
	DOB       time.Time `json:"dob"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u User) Timestamp() time.Time { return u.CreatedAt }

func (u User) Numeric(string) (decimal.Decimal, bool) { return decimal.Zero, false }

// Age returns the user's age in whole years on the given day.
func (u User) Age(today time.Time) int {
	dob := u.DOB.In(today.Location())
	age := today.Year() - dob.Year()
	if today.Month() < dob.Month() || (today.Month() == dob.Month() && today.Day() < dob.Day()) {
		age--
	}
	return age
}

// ShippingInfo is the delivery address of an order.
type ShippingInfo struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	PinCode string `json:"pinCode"`
}

// OrderItem is one product line of an order.
type OrderItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Photo     string          `json:"photo"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Order is a placed order. Money fields are nullable: an absent value counts as
// zero in every aggregate.
type Order struct {
	ID              string              `json:"id"`
	UserID          string              `json:"user"`
	ShippingInfo    ShippingInfo        `json:"shippingInfo"`
	Items           []OrderItem         `json:"orderItems"`
	Subtotal        decimal.NullDecimal `json:"subtotal"`
	Tax             decimal.NullDecimal `json:"tax"`
	ShippingCharges decimal.NullDecimal `json:"shippingCharges"`
	Discount        decimal.NullDecimal `json:"discount"`
	Total           decimal.NullDecimal `json:"total"`
	Status          string              `json:"status"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

func (o Order) Timestamp() time.Time { return o.CreatedAt }

func (o Order) Numeric(field string) (decimal.Decimal, bool) {
	var v decimal.NullDecimal
	switch field {
	case aggregation.FieldTotal:
		v = o.Total
	case aggregation.FieldSubtotal:
		v = o.Subtotal
	case aggregation.FieldDiscount:
		v = o.Discount
	case aggregation.FieldTax:
		v = o.Tax
	case aggregation.FieldShippingCharges:
		v = o.ShippingCharges
	default:
		return decimal.Zero, false
	}
	return v.Decimal, v.Valid
}

// NextStatus returns the status an order advances to when processed.
// Delivered orders stay delivered.
func NextStatus(status string) string {
	switch status {
	case StatusProcessing:
		return StatusShipped
	case StatusShipped:
		return StatusDelivered
	default:
		return StatusDelivered
	}
}
