package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims are the JWT claims accepted from the identity provider.
// Subject carries the user ID; everything else is advisory.
type AccessClaims struct {
	Role  string `json:"role,omitempty"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}
