package auth

import (
	"github.com/kbukum/vibeapi/internal/auth/token"
	"github.com/kbukum/vibeapi/internal/users"
)

// RegisterRequest is the payload for user registration. Role is optional and
// defaults to "user".
type RegisterRequest struct {
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=8"`
	Name     string      `json:"name" validate:"required,min=2,max=100"`
	Role     *users.Role `json:"role,omitempty" validate:"omitempty,oneof=user admin moderator"`
}

// LoginRequest is the payload for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries the refresh token to exchange for a new pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Response is returned by register, login and refresh: a fresh token pair
// plus the public view of the user.
type Response struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	TokenType    string         `json:"token_type"`
	ExpiresIn    int64          `json:"expires_in"`
	User         users.Response `json:"user"`
}

func newResponse(pair *token.Pair, user *users.User) *Response {
	return &Response{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    pair.ExpiresIn,
		User:         user.ToResponse(),
	}
}
