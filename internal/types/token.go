package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents the verified identity of a request
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
}
