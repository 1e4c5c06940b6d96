package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shieldline/warranty-service/internal/model"
	"github.com/shieldline/warranty-service/internal/pricing"
)

const currentYear = 2026

func vehicle(year, mk, mdl, trim string) model.Vehicle {
	return model.Vehicle{Year: year, Make: mk, Model: mdl, Trim: trim}
}

func TestProductEligible_VehicleAge(t *testing.T) {
	p := model.Product{EligibilityMaxVehicleAgeYears: i64(10)}

	assert.True(t, pricing.ProductEligible(p, vehicle("2016", "", "", ""), nil, currentYear),
		"age exactly at the limit passes")
	assert.False(t, pricing.ProductEligible(p, vehicle("2015", "", "", ""), nil, currentYear),
		"one year over the limit fails")
	assert.False(t, pricing.ProductEligible(p, vehicle("unknown", "", "", ""), nil, currentYear),
		"unparsable year cannot prove eligibility")

	unlimited := model.Product{}
	assert.True(t, pricing.ProductEligible(unlimited, vehicle("1980", "", "", ""), nil, currentYear),
		"no age limit always passes")
}

func TestProductEligible_Mileage(t *testing.T) {
	p := model.Product{EligibilityMaxMileageKm: i64(120000)}

	assert.True(t, pricing.ProductEligible(p, vehicle("", "", "", ""), i64(120000), currentYear))
	assert.False(t, pricing.ProductEligible(p, vehicle("", "", "", ""), i64(120001), currentYear))
	assert.False(t, pricing.ProductEligible(p, vehicle("", "", "", ""), nil, currentYear),
		"missing odometer fails a defined limit")
}

func TestProductEligible_MakeAllowlist(t *testing.T) {
	open := model.Product{}
	assert.True(t, pricing.ProductEligible(open, vehicle("", "Honda", "", ""), nil, currentYear),
		"empty allowlist places no restriction")

	toyotaOnly := model.Product{EligibleMakes: []string{"Toyota"}}
	assert.True(t, pricing.ProductEligible(toyotaOnly, vehicle("", "toyota", "", ""), nil, currentYear),
		"match is case-insensitive")
	assert.True(t, pricing.ProductEligible(toyotaOnly, vehicle("", "  Toyota ", "", ""), nil, currentYear),
		"match is whitespace-normalized")
	assert.False(t, pricing.ProductEligible(toyotaOnly, vehicle("", "Honda", "", ""), nil, currentYear))
}

func TestProductEligible_TrimSubstringBothWays(t *testing.T) {
	p := model.Product{EligibleTrims: []string{"XLE Premium"}}

	assert.True(t, pricing.ProductEligible(p, vehicle("", "", "", "XLE"), nil, currentYear),
		"vehicle trim may be a substring of the allowlist entry")
	assert.True(t, pricing.ProductEligible(p, vehicle("", "", "", "XLE Premium AWD"), nil, currentYear),
		"allowlist entry may be a substring of the vehicle trim")
	assert.False(t, pricing.ProductEligible(p, vehicle("", "", "", "SE"), nil, currentYear))
}

func TestProductEligible_PredicatesCombineByAnd(t *testing.T) {
	p := model.Product{
		EligibilityMaxVehicleAgeYears: i64(10),
		EligibleMakes:                 []string{"Toyota"},
	}
	assert.True(t, pricing.ProductEligible(p, vehicle("2020", "Toyota", "", ""), nil, currentYear))
	assert.False(t, pricing.ProductEligible(p, vehicle("2020", "Honda", "", ""), nil, currentYear))
	assert.False(t, pricing.ProductEligible(p, vehicle("2010", "Toyota", "", ""), nil, currentYear))
}

func TestPricingRowEligible_MileageBand(t *testing.T) {
	row := model.ProductPricing{
		VehicleMileageMinKm: i64(50000),
		VehicleMileageMaxKm: i64(100000),
	}

	assert.True(t, pricing.PricingRowEligible(row, model.Vehicle{}, i64(75000)))
	assert.True(t, pricing.PricingRowEligible(row, model.Vehicle{}, i64(50000)))
	assert.True(t, pricing.PricingRowEligible(row, model.Vehicle{}, i64(100000)))
	assert.False(t, pricing.PricingRowEligible(row, model.Vehicle{}, i64(49999)))
	assert.False(t, pricing.PricingRowEligible(row, model.Vehicle{}, i64(100001)))
	assert.False(t, pricing.PricingRowEligible(row, model.Vehicle{}, nil),
		"missing odometer fails a defined band")
}

func TestPricingRowEligible_VehicleClass(t *testing.T) {
	class := "SUV"
	row := model.ProductPricing{VehicleClass: &class}

	assert.True(t, pricing.PricingRowEligible(row, model.Vehicle{BodyClass: "suv"}, nil))
	assert.False(t, pricing.PricingRowEligible(row, model.Vehicle{BodyClass: "Sedan"}, nil))

	open := model.ProductPricing{}
	assert.True(t, pricing.PricingRowEligible(open, model.Vehicle{BodyClass: "Sedan"}, nil))
}

func TestEligibleRows_PreservesOrder(t *testing.T) {
	class := "Sedan"
	rows := []model.ProductPricing{
		{DeductibleCents: 1, VehicleClass: &class},
		{DeductibleCents: 2},
		{DeductibleCents: 3},
	}
	got := pricing.EligibleRows(rows, model.Vehicle{BodyClass: "SUV"}, nil)
	assert.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].DeductibleCents)
	assert.Equal(t, int64(3), got[1].DeductibleCents)
}
