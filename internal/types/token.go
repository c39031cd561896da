package types

import "github.com/google/uuid"

// TokenClaims holds the identity extracted from a validated bearer token.
type TokenClaims struct {
	UserID uuid.UUID
}
