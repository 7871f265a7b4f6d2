package aggregation

import (
	"github.com/shopspring/decimal"
)

// Supported bucket operators.
const (
	OpCount = "count"
	OpSum   = "sum"
)

// Aggregator folds one record value into a bucket.
type Aggregator interface {
	Apply(current, incoming decimal.Decimal) decimal.Decimal
}

// Operators is the registry of all supported bucket operators.
var Operators = map[string]Aggregator{
	OpCount: countAgg{},
	OpSum:   sumAgg{},
}

// OperatorFor picks count when no field is named and sum otherwise.
func OperatorFor(field string) string {
	if field == "" {
		return OpCount
	}
	return OpSum
}

// countAgg increments by 1 per record. The incoming value is ignored.
type countAgg struct{}

func (countAgg) Apply(cur, _ decimal.Decimal) decimal.Decimal { return cur.Add(decimal.NewFromInt(1)) }

// sumAgg accumulates the sum of incoming values.
type sumAgg struct{}

func (sumAgg) Apply(cur, inc decimal.Decimal) decimal.Decimal { return cur.Add(inc) }
