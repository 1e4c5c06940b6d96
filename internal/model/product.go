package model

import (
	"time"

	"github.com/google/uuid"
)

type AddonPricingType string

const (
	AddonPricingFixed    AddonPricingType = "FIXED"
	AddonPricingPerTerm  AddonPricingType = "PER_TERM"
	AddonPricingPerClaim AddonPricingType = "PER_CLAIM"
)

// Product is a provider-owned catalog entry. Mutation requires the acting
// principal to match ProviderID; the Published flag gates marketplace
// visibility for dealers.
type Product struct {
	ID         uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	ProviderID uuid.UUID `json:"providerId" gorm:"type:uuid"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Coverage   string    `json:"coverage,omitempty"`
	Exclusions string    `json:"exclusions,omitempty"`

	TermMonths      *int64 `json:"termMonths,omitempty"`
	TermKm          *int64 `json:"termKm,omitempty"`
	DeductibleCents *int64 `json:"deductibleCents,omitempty"`
	BasePriceCents  *int64 `json:"basePriceCents,omitempty"`
	DealerCostCents *int64 `json:"dealerCostCents,omitempty"`

	EligibilityMaxVehicleAgeYears *int64   `json:"eligibilityMaxVehicleAgeYears,omitempty"`
	EligibilityMaxMileageKm       *int64   `json:"eligibilityMaxMileageKm,omitempty"`
	EligibleMakes                 []string `json:"eligibleMakes,omitempty" gorm:"serializer:json"`
	EligibleModels                []string `json:"eligibleModels,omitempty" gorm:"serializer:json"`
	EligibleTrims                 []string `json:"eligibleTrims,omitempty" gorm:"serializer:json"`

	Published bool      `json:"published"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Product) TableName() string { return "products" }

// ProductPricing is one selectable term/mileage/deductible/price combination
// under a product. A nil term means unlimited. Once referenced by a sold
// contract the row's values live on in the contract's frozen snapshot.
type ProductPricing struct {
	ID              uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	ProductID       uuid.UUID `json:"productId" gorm:"type:uuid"`
	TermMonths      *int64    `json:"termMonths,omitempty"`
	TermKm          *int64    `json:"termKm,omitempty"`
	DeductibleCents int64     `json:"deductibleCents"`
	BasePriceCents  int64     `json:"basePriceCents"`
	DealerCostCents *int64    `json:"dealerCostCents,omitempty"`

	VehicleMileageMinKm *int64  `json:"vehicleMileageMinKm,omitempty"`
	VehicleMileageMaxKm *int64  `json:"vehicleMileageMaxKm,omitempty"`
	VehicleClass        *string `json:"vehicleClass,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

func (ProductPricing) TableName() string { return "product_pricing" }

// ProductAddon is an optional extra under a product. It applies either to all
// pricing rows or to an explicit allowlist of row ids.
type ProductAddon struct {
	ID          uuid.UUID        `json:"id" gorm:"primaryKey;type:uuid"`
	ProductID   uuid.UUID        `json:"productId" gorm:"type:uuid"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	PricingType AddonPricingType `json:"pricingType"`

	BasePriceCents int64  `json:"basePriceCents"`
	MinPriceCents  *int64 `json:"minPriceCents,omitempty"`
	MaxPriceCents  *int64 `json:"maxPriceCents,omitempty"`

	Active                  bool        `json:"active"`
	AppliesToAllPricing     bool        `json:"appliesToAllPricing"`
	ApplicablePricingRowIDs []uuid.UUID `json:"applicablePricingRowIds,omitempty" gorm:"serializer:json"`

	CreatedAt time.Time `json:"createdAt"`
}

func (ProductAddon) TableName() string { return "product_addons" }
