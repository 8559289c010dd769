package auth

import "filesfeed/internal/domain/models"

// JWTVerifier validates bearer tokens and returns their claims.
// The auth middleware only needs the subject, which becomes the state owner.
type JWTVerifier interface {
	// VerifyToken returns domain.ErrUnauthorized for any invalid token
	VerifyToken(tokenString string) (*models.SupabaseClaims, error)

	// Close releases any resources held by the verifier
	Close() error
}
