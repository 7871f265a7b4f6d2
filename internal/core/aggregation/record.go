package aggregation

import (
	"time"

	"github.com/shopspring/decimal"
)

// Numeric field names understood by Record.Numeric.
const (
	FieldTotal           = "total"
	FieldSubtotal        = "subtotal"
	FieldDiscount        = "discount"
	FieldTax             = "tax"
	FieldShippingCharges = "shipping_charges"
	FieldPrice           = "price"
	FieldStock           = "stock"
)

// Record is a raw timestamped entity that can be folded into reports.
type Record interface {
	// Timestamp is the creation time of the record.
	Timestamp() time.Time
	// Numeric returns the named numeric field. ok is false when the record has
	// no such field or the value is absent.
	Numeric(field string) (value decimal.Decimal, ok bool)
}
