package model

import (
	"crypto/sha256"
	"encoding/base32"
	"time"

	"github.com/google/uuid"
)

type ContractStatus string

const (
	ContractStatusDraft    ContractStatus = "DRAFT"
	ContractStatusSold     ContractStatus = "SOLD"
	ContractStatusRemitted ContractStatus = "REMITTED"
	ContractStatusPaid     ContractStatus = "PAID"
)

// NextStatus returns the single legal successor of a contract status.
// The progression is linear and never regresses; PAID is terminal and
// returns the empty string.
func NextStatus(s ContractStatus) ContractStatus {
	switch s {
	case ContractStatusDraft:
		return ContractStatusSold
	case ContractStatusSold:
		return ContractStatusRemitted
	case ContractStatusRemitted:
		return ContractStatusPaid
	default:
		return ""
	}
}

// AddonSnapshotEntry is one add-on frozen onto a contract at the moment the
// dealer selected it. Never recomputed from live catalog data afterwards.
type AddonSnapshotEntry struct {
	AddonID          uuid.UUID        `json:"addonId"`
	Name             string           `json:"name"`
	Description      string           `json:"description,omitempty"`
	PricingType      AddonPricingType `json:"pricingType"`
	BasePriceCents   int64            `json:"basePriceCents"`
	MinPriceCents    *int64           `json:"minPriceCents,omitempty"`
	MaxPriceCents    *int64           `json:"maxPriceCents,omitempty"`
	ChosenPriceCents int64            `json:"chosenPriceCents"`
}

type Contract struct {
	ID             uuid.UUID      `json:"id" gorm:"primaryKey;type:uuid"`
	WarrantyID     string         `json:"warrantyId"`
	ContractNumber string         `json:"contractNumber"`
	DealershipID   uuid.UUID      `json:"dealershipId" gorm:"type:uuid"`
	Status         ContractStatus `json:"status"`

	CreatedByUserID  uuid.UUID  `json:"createdByUserId" gorm:"type:uuid"`
	CreatedByEmail   string     `json:"createdByEmail"`
	SoldByUserID     *uuid.UUID `json:"soldByUserId,omitempty" gorm:"type:uuid"`
	SoldByEmail      *string    `json:"soldByEmail,omitempty"`
	SoldAt           *time.Time `json:"soldAt,omitempty"`
	RemittedByUserID *uuid.UUID `json:"remittedByUserId,omitempty" gorm:"type:uuid"`
	RemittedByEmail  *string    `json:"remittedByEmail,omitempty"`
	RemittedAt       *time.Time `json:"remittedAt,omitempty"`
	PaidByUserID     *uuid.UUID `json:"paidByUserId,omitempty" gorm:"type:uuid"`
	PaidByEmail      *string    `json:"paidByEmail,omitempty"`
	PaidAt           *time.Time `json:"paidAt,omitempty"`

	// Vehicle snapshot: copied in at decode time, not referenced live.
	Vehicle    Vehicle `json:"vehicle" gorm:"embedded;embeddedPrefix:vehicle_"`
	OdometerKm *int64  `json:"odometerKm,omitempty"`

	// Commercial snapshot: the chosen pricing row frozen at selection time.
	ProductID              *uuid.UUID           `json:"productId,omitempty" gorm:"type:uuid"`
	ProductPricingID       *uuid.UUID           `json:"productPricingId,omitempty" gorm:"type:uuid"`
	PricingTermMonths      *int64               `json:"pricingTermMonths,omitempty"`
	PricingTermKm          *int64               `json:"pricingTermKm,omitempty"`
	PricingDeductibleCents *int64               `json:"pricingDeductibleCents,omitempty"`
	PricingBasePriceCents  *int64               `json:"pricingBasePriceCents,omitempty"`
	PricingDealerCostCents *int64               `json:"pricingDealerCostCents,omitempty"`
	AddonSnapshot          []AddonSnapshotEntry `json:"addonSnapshot,omitempty" gorm:"serializer:json"`
	AddonTotalRetailCents  int64                `json:"addonTotalRetailCents"`
	AddonTotalCostCents    int64                `json:"addonTotalCostCents"`

	CustomerName     string `json:"customerName"`
	CustomerEmail    string `json:"customerEmail,omitempty"`
	CustomerPhone    string `json:"customerPhone,omitempty"`
	CustomerAddress  string `json:"customerAddress,omitempty"`
	CustomerCity     string `json:"customerCity,omitempty"`
	CustomerProvince string `json:"customerProvince,omitempty"`
	CustomerPostal   string `json:"customerPostal,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Contract) TableName() string { return "contracts" }

// DeriveWarrantyID maps a contract id to its display identifier. The mapping
// is deterministic and one-way; the warranty id is never stored in a way that
// could drift from the contract id.
func DeriveWarrantyID(id uuid.UUID) string {
	sum := sha256.Sum256(id[:])
	code := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(sum[:5])
	return "W-" + code
}
