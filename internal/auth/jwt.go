package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Role represents what a token holder may do on the worker.
type Role string

const (
	RoleOperator  Role = "operator"
	RolePublisher Role = "publisher"
)

// Claims represents the claims stored in a worker token.
type Claims struct {
	jwt.RegisteredClaims
	Role Role `json:"role"`
}

// NewClaims creates a new Claims instance
func NewClaims(issuer, subject string, role Role, expiresAt time.Time) *Claims {
	now := time.Now()
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
		Role: role,
	}
}
