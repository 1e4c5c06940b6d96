package model

import "github.com/google/uuid"

type Role string

const (
	RoleDealer   Role = "DEALER"
	RoleProvider Role = "PROVIDER"
	RoleAdmin    Role = "ADMIN"
)

// Principal is the authenticated actor extracted from the access token.
type Principal struct {
	UserID       uuid.UUID
	Email        string
	Role         Role
	DealershipID *uuid.UUID
	ProviderID   *uuid.UUID
}

func (p Principal) IsDealer() bool   { return p.Role == RoleDealer }
func (p Principal) IsProvider() bool { return p.Role == RoleProvider }
func (p Principal) IsAdmin() bool    { return p.Role == RoleAdmin }

// OwnsDealership reports whether the principal acts for the given dealership.
// Admins own everything.
func (p Principal) OwnsDealership(id uuid.UUID) bool {
	if p.IsAdmin() {
		return true
	}
	return p.DealershipID != nil && *p.DealershipID == id
}

// OwnsProvider reports whether the principal acts for the given provider.
func (p Principal) OwnsProvider(id uuid.UUID) bool {
	if p.IsAdmin() {
		return true
	}
	return p.ProviderID != nil && *p.ProviderID == id
}
