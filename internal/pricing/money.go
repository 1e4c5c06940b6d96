// Package pricing holds the pure rule functions behind the marketplace:
// money and markup arithmetic, vehicle eligibility predicates, default
// pricing-row selection, and add-on snapshot building. Every function takes
// its full working set as arguments and returns new values; nothing here
// touches storage.
package pricing

import "github.com/shopspring/decimal"

// CostCents returns the provider cost basis for a product, pricing row or
// add-on: the dealer cost when present, otherwise the base price, otherwise
// nil.
func CostCents(dealerCostCents, basePriceCents *int64) *int64 {
	if dealerCostCents != nil {
		v := *dealerCostCents
		return &v
	}
	if basePriceCents != nil {
		v := *basePriceCents
		return &v
	}
	return nil
}

// RetailCents applies the dealer markup percentage to a cost. Rounding is
// half away from zero and happens exactly once, on the final cents value;
// fractional cents are never carried between calls.
func RetailCents(costCents *int64, markupPct float64) *int64 {
	if costCents == nil {
		return nil
	}
	factor := decimal.NewFromFloat(markupPct).
		Div(decimal.NewFromInt(100)).
		Add(decimal.NewFromInt(1))
	v := decimal.NewFromInt(*costCents).Mul(factor).Round(0).IntPart()
	return &v
}

// TaxCents computes tax on an integer-cents subtotal at a percentage rate,
// rounded half away from zero.
func TaxCents(subtotalCents int64, ratePct float64) int64 {
	return decimal.NewFromInt(subtotalCents).
		Mul(decimal.NewFromFloat(ratePct)).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}
