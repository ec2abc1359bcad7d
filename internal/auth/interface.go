package auth

import "stash/internal/domain/models"

// JWTVerifier validates bearer tokens presented to the API. The middleware
// only depends on this interface, so tests can substitute a static verifier.
type JWTVerifier interface {
	// VerifyToken validates a JWT string and returns its claims.
	// Returns an error if the token is invalid, expired, or unsigned.
	VerifyToken(tokenString string) (*models.AccessClaims, error)

	// Close releases any resources held by the verifier.
	Close() error
}
