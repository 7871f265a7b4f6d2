package aggregation

import "github.com/shopspring/decimal"

// FieldValue returns the named numeric field of r.
// Returns decimal.Zero if the field name is empty, unknown, or the value is absent.
func FieldValue(r Record, field string) decimal.Decimal {
	if field == "" {
		return decimal.Zero
	}
	v, ok := r.Numeric(field)
	if !ok {
		return decimal.Zero
	}
	return v
}

// Sum adds up field over records, counting absent values as zero.
func Sum[R Record](records []R, field string) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(FieldValue(r, field))
	}
	return total
}
