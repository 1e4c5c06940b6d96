package pricing

import (
	"github.com/google/uuid"

	"github.com/shieldline/warranty-service/internal/model"
)

// ApplicableAddons filters active add-ons down to those applicable to the
// selected pricing row: either the add-on applies to all rows or the row id
// is on its allowlist.
func ApplicableAddons(addons []model.ProductAddon, pricingRowID uuid.UUID) []model.ProductAddon {
	out := make([]model.ProductAddon, 0, len(addons))
	for _, a := range addons {
		if !a.Active {
			continue
		}
		if a.AppliesToAllPricing || containsID(a.ApplicablePricingRowIDs, pricingRowID) {
			out = append(out, a)
		}
	}
	return out
}

// BuildAddonSnapshot freezes the selected add-ons into the contract's price
// snapshot at the dealer's markup. The chosen price is the marked-up cost,
// falling back to the raw cost when no markup applies. Returns the snapshot
// plus the retail and cost totals in cents.
func BuildAddonSnapshot(selected []uuid.UUID, applicable []model.ProductAddon, markupPct float64) ([]model.AddonSnapshotEntry, int64, int64) {
	snapshot := make([]model.AddonSnapshotEntry, 0, len(selected))
	var totalRetail, totalCost int64

	for _, a := range applicable {
		if !containsID(selected, a.ID) {
			continue
		}
		cost := CostCents(nil, &a.BasePriceCents)
		chosen := a.BasePriceCents
		if retail := RetailCents(cost, markupPct); retail != nil {
			chosen = *retail
		}
		snapshot = append(snapshot, model.AddonSnapshotEntry{
			AddonID:          a.ID,
			Name:             a.Name,
			Description:      a.Description,
			PricingType:      a.PricingType,
			BasePriceCents:   a.BasePriceCents,
			MinPriceCents:    a.MinPriceCents,
			MaxPriceCents:    a.MaxPriceCents,
			ChosenPriceCents: chosen,
		})
		totalRetail += chosen
		totalCost += a.BasePriceCents
	}
	return snapshot, totalRetail, totalCost
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
