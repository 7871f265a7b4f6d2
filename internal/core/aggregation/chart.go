package aggregation

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthStart returns midnight on the first day of the month offset months away
// from t, in t's location. MonthStart(t, 0) is the start of t's own month.
func MonthStart(t time.Time, offset int) time.Time {
	return time.Date(t.Year(), t.Month()+time.Month(offset), 1, 0, 0, 0, 0, t.Location())
}

// MonthsAgo returns how many calendar months lie between t and today.
// Negative when t is in a later month than today.
func MonthsAgo(today, t time.Time) int {
	t = t.In(today.Location())
	return (today.Year()-t.Year())*12 + int(today.Month()) - int(t.Month())
}

// ChartData folds records into length trailing monthly buckets, oldest first.
// The last bucket is today's month. With an empty field every record counts as 1;
// otherwise the field is summed with absent values treated as 0. Records outside
// the window are ignored.
func ChartData[R Record](length int, today time.Time, records []R, field string) []float64 {
	if length <= 0 {
		return []float64{}
	}

	agg := Operators[OperatorFor(field)]
	buckets := make([]decimal.Decimal, length)
	for i := range buckets {
		buckets[i] = decimal.Zero
	}

	for _, r := range records {
		ago := MonthsAgo(today, r.Timestamp())
		if ago < 0 || ago >= length {
			continue
		}
		idx := length - 1 - ago
		buckets[idx] = agg.Apply(buckets[idx], FieldValue(r, field))
	}

	out := make([]float64, length)
	for i, b := range buckets {
		out[i] = b.InexactFloat64()
	}
	return out
}
