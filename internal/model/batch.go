package model

import (
	"time"

	"github.com/google/uuid"
)

type BatchStatus string

const (
	BatchStatusOpen   BatchStatus = "OPEN"
	BatchStatusClosed BatchStatus = "CLOSED"
)

type RemittanceStatus string

const (
	RemittanceStatusDraft     RemittanceStatus = "DRAFT"
	RemittanceStatusSubmitted RemittanceStatus = "SUBMITTED"
	RemittanceStatusApproved  RemittanceStatus = "APPROVED"
	RemittanceStatusRejected  RemittanceStatus = "REJECTED"
	RemittanceStatusPaid      RemittanceStatus = "PAID"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "UNPAID"
	PaymentStatusPaid   PaymentStatus = "PAID"
)

type PaymentMethod string

const (
	PaymentMethodEFT    PaymentMethod = "EFT"
	PaymentMethodCheque PaymentMethod = "CHEQUE"
)

// Batch groups sold contracts for settlement between a dealership and a
// provider. Ad hoc batches start OPEN; remittance batches are created CLOSED
// with their contract set and totals already computed.
type Batch struct {
	ID           uuid.UUID   `json:"id" gorm:"primaryKey;type:uuid"`
	DealershipID uuid.UUID   `json:"dealershipId" gorm:"type:uuid"`
	Name         string      `json:"name"`
	Status       BatchStatus `json:"status"`

	// Authoritative only when set; otherwise derived, see
	// EffectiveRemittanceStatus.
	RemittanceStatus *RemittanceStatus `json:"remittanceStatus,omitempty"`
	RejectionReason  *string           `json:"rejectionReason,omitempty"`

	ContractIDs   []uuid.UUID `json:"contractIds" gorm:"serializer:json"`
	SubtotalCents int64       `json:"subtotalCents"`
	TaxRatePct    float64     `json:"taxRatePct"`
	TaxCents      int64       `json:"taxCents"`
	TotalCents    int64       `json:"totalCents"`

	PaymentStatus    PaymentStatus  `json:"paymentStatus"`
	PaymentMethod    *PaymentMethod `json:"paymentMethod,omitempty"`
	PaymentReference *string        `json:"paymentReference,omitempty"`
	PaymentDate      *time.Time     `json:"paymentDate,omitempty"`
	PaidByUserID     *uuid.UUID     `json:"paidByUserId,omitempty" gorm:"type:uuid"`
	PaidByEmail      *string        `json:"paidByEmail,omitempty"`
	PaidAt           *time.Time     `json:"paidAt,omitempty"`

	CreatedByUserID uuid.UUID `json:"createdByUserId" gorm:"type:uuid"`
	CreatedByEmail  string    `json:"createdByEmail"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (Batch) TableName() string { return "batches" }

// EffectiveRemittanceStatus is the one canonical derivation of the workflow
// status. A stored value wins; otherwise PAID follows the payment status,
// SUBMITTED follows a closed batch, and everything else is DRAFT.
func (b Batch) EffectiveRemittanceStatus() RemittanceStatus {
	if b.RemittanceStatus != nil {
		return *b.RemittanceStatus
	}
	if b.PaymentStatus == PaymentStatusPaid {
		return RemittanceStatusPaid
	}
	if b.Status == BatchStatusClosed {
		return RemittanceStatusSubmitted
	}
	return RemittanceStatusDraft
}
