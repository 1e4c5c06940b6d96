package model

import (
	"time"

	"github.com/google/uuid"
)

// Document is upload metadata only; file bytes live in external object
// storage under StorageKey.
type Document struct {
	ID               uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	ContractID       uuid.UUID `json:"contractId" gorm:"type:uuid"`
	DealershipID     uuid.UUID `json:"dealershipId" gorm:"type:uuid"`
	Name             string    `json:"name"`
	ContentType      string    `json:"contentType"`
	StorageKey       string    `json:"storageKey"`
	SizeBytes        int64     `json:"sizeBytes"`
	UploadedByUserID uuid.UUID `json:"uploadedByUserId" gorm:"type:uuid"`
	CreatedAt        time.Time `json:"createdAt"`
}

func (Document) TableName() string { return "documents" }
