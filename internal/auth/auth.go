package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/shieldline/warranty-service/internal/model"
)

type Claims struct {
	jwt.RegisteredClaims
	Email        string `json:"email"`
	Role         string `json:"role"`
	DealershipID string `json:"dealership_id,omitempty"`
	ProviderID   string `json:"provider_id,omitempty"`
}

// Parser validates HMAC-signed access tokens and extracts the principal.
type Parser struct {
	secret []byte
}

func NewParser(secret string) *Parser {
	return &Parser{secret: []byte(secret)}
}

func (p *Parser) Parse(tokenString string) (model.Principal, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		return model.Principal{}, err
	}
	if !token.Valid {
		return model.Principal{}, fmt.Errorf("invalid token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.Principal{}, fmt.Errorf("invalid subject: %w", err)
	}

	principal := model.Principal{
		UserID: userID,
		Email:  claims.Email,
		Role:   model.Role(claims.Role),
	}
	if claims.DealershipID != "" {
		id, err := uuid.Parse(claims.DealershipID)
		if err != nil {
			return model.Principal{}, fmt.Errorf("invalid dealership_id: %w", err)
		}
		principal.DealershipID = &id
	}
	if claims.ProviderID != "" {
		id, err := uuid.Parse(claims.ProviderID)
		if err != nil {
			return model.Principal{}, fmt.Errorf("invalid provider_id: %w", err)
		}
		principal.ProviderID = &id
	}

	switch principal.Role {
	case model.RoleDealer, model.RoleProvider, model.RoleAdmin:
	default:
		return model.Principal{}, fmt.Errorf("unknown role %q", claims.Role)
	}
	return principal, nil
}
