package pricing

import (
	"math"

	"github.com/shieldline/warranty-service/internal/model"
)

// DefaultRow picks the default pricing row from an eligible set: ascending on
// (termMonths, termKm, deductibleCents) with nil terms treated as unlimited
// and sorting last. Ties keep input order. Returns nil for an empty set.
//
// Callers only invoke this for DRAFT contracts with a product chosen and no
// row chosen yet; a dealer's explicit choice is never overridden.
func DefaultRow(rows []model.ProductPricing) *model.ProductPricing {
	if len(rows) == 0 {
		return nil
	}
	best := 0
	for i := 1; i < len(rows); i++ {
		if rowLess(rows[i], rows[best]) {
			best = i
		}
	}
	row := rows[best]
	return &row
}

func rowLess(a, b model.ProductPricing) bool {
	if am, bm := orUnlimited(a.TermMonths), orUnlimited(b.TermMonths); am != bm {
		return am < bm
	}
	if ak, bk := orUnlimited(a.TermKm), orUnlimited(b.TermKm); ak != bk {
		return ak < bk
	}
	return a.DeductibleCents < b.DeductibleCents
}

func orUnlimited(v *int64) int64 {
	if v == nil {
		return math.MaxInt64
	}
	return *v
}
