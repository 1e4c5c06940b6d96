package model

import (
	"time"

	"github.com/google/uuid"
)

// Dealership holds dealer-scoped configuration, most importantly the markup
// percentage applied on top of provider cost to produce retail prices.
type Dealership struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Name      string    `json:"name"`
	MarkupPct float64   `json:"markupPct"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	Province  string    `json:"province,omitempty"`
	Postal    string    `json:"postal,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Dealership) TableName() string { return "dealerships" }

type Employee struct {
	ID           uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	DealershipID uuid.UUID `json:"dealershipId" gorm:"type:uuid"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName"`
	Role         string    `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Employee) TableName() string { return "employees" }
