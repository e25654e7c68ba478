// Package token implements signed, claims-bearing access and refresh tokens.
//
// The codec layer (encode/decode with signature, issuer and expiry checks)
// is kept separate from the semantic layer (token kind checks) so the same
// claims shape serves both token classes. Validation failures collapse to
// ErrInvalidToken before leaving this package's callers; only logs carry
// the distinction.
package token

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kbukum/vibeapi/internal/users"
)

// Kind discriminates access tokens from refresh tokens. An access token is
// never accepted where a refresh token is required, and vice versa.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// Claims is the payload carried by every issued token.
// RegisteredClaims contributes sub, exp, iat and iss.
type Claims struct {
	jwt.RegisteredClaims
	Email     string     `json:"email"`
	Role      users.Role `json:"role"`
	TokenType Kind       `json:"token_type"`
}

// UserID parses the subject claim as a user ID.
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// Pair bundles the access and refresh token issued together. Both tokens
// share subject, email, role and issued-at; only kind and expiry differ.
type Pair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}
