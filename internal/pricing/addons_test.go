package pricing_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shieldline/warranty-service/internal/model"
	"github.com/shieldline/warranty-service/internal/pricing"
)

func addon(name string, base int64, active, allRows bool, rowIDs ...uuid.UUID) model.ProductAddon {
	return model.ProductAddon{
		ID:                      uuid.New(),
		Name:                    name,
		PricingType:             model.AddonPricingFixed,
		BasePriceCents:          base,
		Active:                  active,
		AppliesToAllPricing:     allRows,
		ApplicablePricingRowIDs: rowIDs,
	}
}

func TestApplicableAddons(t *testing.T) {
	rowID := uuid.New()
	otherRow := uuid.New()

	all := addon("tire", 5000, true, true)
	listed := addon("rust", 8000, true, false, rowID)
	wrongRow := addon("glass", 3000, true, false, otherRow)
	inactive := addon("key", 2000, false, true)

	got := pricing.ApplicableAddons([]model.ProductAddon{all, listed, wrongRow, inactive}, rowID)
	require.Len(t, got, 2)
	assert.Equal(t, "tire", got[0].Name)
	assert.Equal(t, "rust", got[1].Name)
}

func TestBuildAddonSnapshot_FreezesMarkedUpPrices(t *testing.T) {
	a := addon("tire", 5000, true, true)
	b := addon("rust", 8000, true, true)
	applicable := []model.ProductAddon{a, b}

	snapshot, retail, cost := pricing.BuildAddonSnapshot(
		[]uuid.UUID{a.ID, b.ID}, applicable, 20)

	require.Len(t, snapshot, 2)
	assert.Equal(t, int64(6000), snapshot[0].ChosenPriceCents)
	assert.Equal(t, int64(9600), snapshot[1].ChosenPriceCents)
	assert.Equal(t, int64(5000), snapshot[0].BasePriceCents)
	assert.Equal(t, int64(15600), retail)
	assert.Equal(t, int64(13000), cost)
}

func TestBuildAddonSnapshot_IgnoresUnknownSelections(t *testing.T) {
	a := addon("tire", 5000, true, true)
	snapshot, retail, cost := pricing.BuildAddonSnapshot(
		[]uuid.UUID{uuid.New()}, []model.ProductAddon{a}, 20)

	assert.Empty(t, snapshot)
	assert.Zero(t, retail)
	assert.Zero(t, cost)
}

func TestBuildAddonSnapshot_ZeroMarkupKeepsCost(t *testing.T) {
	a := addon("tire", 5000, true, true)
	snapshot, retail, cost := pricing.BuildAddonSnapshot(
		[]uuid.UUID{a.ID}, []model.ProductAddon{a}, 0)

	require.Len(t, snapshot, 1)
	assert.Equal(t, int64(5000), snapshot[0].ChosenPriceCents)
	assert.Equal(t, int64(5000), retail)
	assert.Equal(t, int64(5000), cost)
}
