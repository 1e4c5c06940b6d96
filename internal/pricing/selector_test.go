package pricing_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shieldline/warranty-service/internal/model"
	"github.com/shieldline/warranty-service/internal/pricing"
)

func row(termMonths, termKm *int64, deductible int64) model.ProductPricing {
	return model.ProductPricing{
		ID:              uuid.New(),
		TermMonths:      termMonths,
		TermKm:          termKm,
		DeductibleCents: deductible,
	}
}

func TestDefaultRow_Empty(t *testing.T) {
	assert.Nil(t, pricing.DefaultRow(nil))
	assert.Nil(t, pricing.DefaultRow([]model.ProductPricing{}))
}

func TestDefaultRow_LowestTermWins(t *testing.T) {
	rows := []model.ProductPricing{
		row(i64(36), i64(60000), 10000),
		row(i64(24), i64(40000), 5000),
	}
	got := pricing.DefaultRow(rows)
	require.NotNil(t, got)
	assert.Equal(t, rows[1].ID, got.ID)
}

func TestDefaultRow_UnlimitedSortsLast(t *testing.T) {
	rows := []model.ProductPricing{
		row(nil, i64(40000), 0),
		row(i64(60), nil, 0),
		row(i64(48), i64(80000), 0),
	}
	got := pricing.DefaultRow(rows)
	require.NotNil(t, got)
	assert.Equal(t, rows[2].ID, got.ID)
}

func TestDefaultRow_TermKmBreaksMonthTies(t *testing.T) {
	rows := []model.ProductPricing{
		row(i64(36), i64(60000), 0),
		row(i64(36), i64(40000), 0),
	}
	got := pricing.DefaultRow(rows)
	require.NotNil(t, got)
	assert.Equal(t, rows[1].ID, got.ID)
}

func TestDefaultRow_DeductibleBreaksRemainingTies(t *testing.T) {
	rows := []model.ProductPricing{
		row(i64(36), i64(60000), 10000),
		row(i64(36), i64(60000), 5000),
	}
	got := pricing.DefaultRow(rows)
	require.NotNil(t, got)
	assert.Equal(t, rows[1].ID, got.ID)
}

func TestDefaultRow_FullTiesKeepInputOrder(t *testing.T) {
	rows := []model.ProductPricing{
		row(i64(36), i64(60000), 5000),
		row(i64(36), i64(60000), 5000),
	}
	got := pricing.DefaultRow(rows)
	require.NotNil(t, got)
	assert.Equal(t, rows[0].ID, got.ID)
}
