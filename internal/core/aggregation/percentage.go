package aggregation

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// PercentageChange returns the relative change from previous to current in percent,
// rounded to 2 decimal places. A zero baseline yields current*100.
func PercentageChange(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		return current.Mul(hundred).Round(2).InexactFloat64()
	}
	return current.Sub(previous).Div(previous).Mul(hundred).Round(2).InexactFloat64()
}

// PercentageChangeInt is PercentageChange for counts.
func PercentageChangeInt(current, previous int64) float64 {
	return PercentageChange(decimal.NewFromInt(current), decimal.NewFromInt(previous))
}
