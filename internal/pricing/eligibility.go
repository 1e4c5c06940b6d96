package pricing

import (
	"strconv"
	"strings"

	"github.com/shieldline/warranty-service/internal/model"
)

// ProductEligible reports whether a product may be sold for the given decoded
// vehicle and odometer reading. Predicates combine by AND; an absent limit
// always passes, an unparsable vehicle value fails a defined limit because
// eligibility cannot be proven.
func ProductEligible(p model.Product, v model.Vehicle, odometerKm *int64, currentYear int) bool {
	if !ageEligible(p.EligibilityMaxVehicleAgeYears, v.Year, currentYear) {
		return false
	}
	if !mileageEligible(p.EligibilityMaxMileageKm, odometerKm) {
		return false
	}
	if !listMatch(p.EligibleMakes, v.Make) {
		return false
	}
	if !listMatch(p.EligibleModels, v.Model) {
		return false
	}
	if !trimMatch(p.EligibleTrims, v.Trim) {
		return false
	}
	return true
}

// PricingRowEligible checks the row-level predicates: the odometer mileage
// band and the optional vehicle class. Product-level predicates are checked
// separately by ProductEligible.
func PricingRowEligible(row model.ProductPricing, v model.Vehicle, odometerKm *int64) bool {
	if row.VehicleMileageMinKm != nil {
		if odometerKm == nil || *odometerKm < *row.VehicleMileageMinKm {
			return false
		}
	}
	if row.VehicleMileageMaxKm != nil {
		if odometerKm == nil || *odometerKm > *row.VehicleMileageMaxKm {
			return false
		}
	}
	if row.VehicleClass != nil {
		if norm(*row.VehicleClass) != norm(v.BodyClass) {
			return false
		}
	}
	return true
}

// EligibleRows filters pricing rows for a vehicle, preserving input order.
func EligibleRows(rows []model.ProductPricing, v model.Vehicle, odometerKm *int64) []model.ProductPricing {
	out := make([]model.ProductPricing, 0, len(rows))
	for _, row := range rows {
		if PricingRowEligible(row, v, odometerKm) {
			out = append(out, row)
		}
	}
	return out
}

func ageEligible(maxAgeYears *int64, yearRaw string, currentYear int) bool {
	if maxAgeYears == nil {
		return true
	}
	year, err := strconv.Atoi(strings.TrimSpace(yearRaw))
	if err != nil {
		return false
	}
	return int64(currentYear-year) <= *maxAgeYears
}

func mileageEligible(maxKm *int64, odometerKm *int64) bool {
	if maxKm == nil {
		return true
	}
	if odometerKm == nil {
		return false
	}
	return *odometerKm <= *maxKm
}

// listMatch: an empty allowlist places no restriction; otherwise the vehicle
// value must match one entry case-insensitively after whitespace
// normalization.
func listMatch(allow []string, value string) bool {
	if len(allow) == 0 {
		return true
	}
	want := norm(value)
	for _, entry := range allow {
		if norm(entry) == want {
			return true
		}
	}
	return false
}

// trimMatch tolerates partial trim strings: an allowlist entry matches when
// it is a substring of the vehicle trim or vice versa.
func trimMatch(allow []string, value string) bool {
	if len(allow) == 0 {
		return true
	}
	have := norm(value)
	for _, entry := range allow {
		want := norm(entry)
		if strings.Contains(have, want) || strings.Contains(want, have) {
			return true
		}
	}
	return false
}

func norm(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
