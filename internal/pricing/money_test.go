package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shieldline/warranty-service/internal/pricing"
)

func i64(v int64) *int64 { return &v }

func TestCostCents_DealerCostWins(t *testing.T) {
	got := pricing.CostCents(i64(500), i64(900))
	require.NotNil(t, got)
	assert.Equal(t, int64(500), *got)
}

func TestCostCents_FallsBackToBasePrice(t *testing.T) {
	got := pricing.CostCents(nil, i64(900))
	require.NotNil(t, got)
	assert.Equal(t, int64(900), *got)
}

func TestCostCents_NothingDefined(t *testing.T) {
	assert.Nil(t, pricing.CostCents(nil, nil))
}

func TestRetailCents(t *testing.T) {
	tests := []struct {
		name      string
		cost      int64
		markupPct float64
		want      int64
	}{
		{"zero markup is identity", 50000, 0, 50000},
		{"twenty percent", 50000, 20, 60000},
		{"rounds half away from zero", 105, 50, 158}, // 157.5 -> 158
		{"fractional markup", 9999, 12.5, 11249},     // 11248.875 -> 11249
		{"zero cost", 0, 35, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pricing.RetailCents(&tt.cost, tt.markupPct)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestRetailCents_NilCost(t *testing.T) {
	assert.Nil(t, pricing.RetailCents(nil, 20))
}

func TestRetailCents_MonotonicInMarkup(t *testing.T) {
	cost := int64(73501)
	prev := int64(-1)
	for pct := 0.0; pct <= 50; pct += 2.5 {
		got := pricing.RetailCents(&cost, pct)
		require.NotNil(t, got)
		assert.GreaterOrEqual(t, *got, prev, "markup %.1f", pct)
		prev = *got
	}
}

func TestTaxCents(t *testing.T) {
	assert.Equal(t, int64(1300), pricing.TaxCents(10000, 13))
	assert.Equal(t, int64(13), pricing.TaxCents(99, 13)) // 12.87 -> 13
	assert.Equal(t, int64(0), pricing.TaxCents(0, 13))
	assert.Equal(t, int64(0), pricing.TaxCents(10000, 0))
}
