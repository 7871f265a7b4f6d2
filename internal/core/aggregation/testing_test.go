package aggregation

import (
	"time"

	"github.com/shopspring/decimal"
)

// testRecord is a minimal Record used across the package tests.
type testRecord struct {
	at     time.Time
	fields map[string]decimal.Decimal
}

func (r testRecord) Timestamp() time.Time { return r.at }

func (r testRecord) Numeric(field string) (decimal.Decimal, bool) {
	v, ok := r.fields[field]
	return v, ok
}

func at(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func rec(t time.Time, kv ...interface{}) testRecord {
	r := testRecord{at: t, fields: map[string]decimal.Decimal{}}
	for i := 0; i+1 < len(kv); i += 2 {
		r.fields[kv[i].(string)] = decimal.RequireFromString(kv[i+1].(string))
	}
	return r
}
