package aggregation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestOperators_Apply(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		current  decimal.Decimal
		incoming decimal.Decimal
		want     decimal.Decimal
	}{
		{
			name:     "count ignores incoming",
			op:       OpCount,
			current:  decimal.NewFromInt(9),
			incoming: decimal.NewFromInt(456),
			want:     decimal.NewFromInt(10),
		},
		{
			name:     "sum",
			op:       OpSum,
			current:  decimal.NewFromInt(9),
			incoming: decimal.RequireFromString("4.25"),
			want:     decimal.RequireFromString("13.25"),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			agg, ok := Operators[tc.op]
			require.True(t, ok)
			require.True(t, tc.want.Equal(agg.Apply(tc.current, tc.incoming)))
		})
	}
}

func TestOperatorFor(t *testing.T) {
	require.Equal(t, OpCount, OperatorFor(""))
	require.Equal(t, OpSum, OperatorFor(FieldTotal))
	for _, field := range []string{"", FieldTotal, FieldDiscount, FieldPrice} {
		_, ok := Operators[OperatorFor(field)]
		require.True(t, ok, field)
	}
}
