// Package auth orchestrates registration, login and token refresh on top of
// the password hasher, the token service and the user store.
package auth

import (
	"context"
	"errors"

	"github.com/kbukum/vibeapi/internal/auth/password"
	"github.com/kbukum/vibeapi/internal/auth/token"
	apperrors "github.com/kbukum/vibeapi/internal/errors"
	"github.com/kbukum/vibeapi/internal/logger"
	"github.com/kbukum/vibeapi/internal/users"
)

// Notifier receives authentication events for realtime delivery. Optional;
// a nil notifier disables event publishing.
type Notifier interface {
	UserLoggedIn(userID, email string)
}

// Service implements the authentication operations. It holds no per-request
// state; every call derives everything from its inputs and the store.
type Service struct {
	store    UserStore
	hasher   password.Hasher
	tokens   *token.Service
	notifier Notifier
	log      *logger.Logger
}

// NewService wires the auth service.
func NewService(store UserStore, hasher password.Hasher, tokens *token.Service, log *logger.Logger) *Service {
	return &Service{
		store:  store,
		hasher: hasher,
		tokens: tokens,
		log:    log.WithComponent("auth"),
	}
}

// WithNotifier attaches a notifier for authentication events.
func (s *Service) WithNotifier(n Notifier) *Service {
	s.notifier = n
	return s
}

// Register creates a new user and issues an initial token pair.
// A duplicate email yields Conflict. The role defaults to "user".
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Response, error) {
	if _, err := s.store.FindByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.Conflict("A user with this email already exists.")
	} else if !errors.Is(err, users.ErrNotFound) {
		return nil, apperrors.DatabaseError(err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	role := users.RoleUser
	if req.Role != nil {
		role = *req.Role
	}

	user, err := s.store.Insert(ctx, req.Email, hash, req.Name, role)
	if err != nil {
		if errors.Is(err, users.ErrDuplicateEmail) {
			return nil, apperrors.Conflict("A user with this email already exists.")
		}
		return nil, apperrors.DatabaseError(err)
	}

	pair, err := s.tokens.IssuePair(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	s.log.Info("User registered", map[string]interface{}{
		"user_id": user.ID.String(),
		"role":    string(user.Role),
	})

	return newResponse(pair, user), nil
}

// Login verifies credentials and issues a token pair. Unknown email and
// wrong password produce the same caller-visible failure so account
// existence never leaks. The last-login touch is best-effort.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*Response, error) {
	user, err := s.store.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, apperrors.AuthenticationFailed()
		}
		return nil, apperrors.DatabaseError(err)
	}

	ok, err := s.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		// A malformed stored hash means data corruption, not user error.
		// Log loudly but answer with the same generic failure.
		s.log.Error("Stored credential hash is malformed", map[string]interface{}{
			"user_id": user.ID.String(),
			"error":   err.Error(),
		})
		return nil, apperrors.AuthenticationFailed()
	}
	if !ok {
		return nil, apperrors.AuthenticationFailed()
	}

	if err := s.store.TouchLastLogin(ctx, user.ID); err != nil {
		// Must never fail the login.
		s.log.Warn("Failed to record last login", map[string]interface{}{
			"user_id": user.ID.String(),
			"error":   err.Error(),
		})
	}

	pair, err := s.tokens.IssuePair(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if s.notifier != nil {
		s.notifier.UserLoggedIn(user.ID.String(), user.Email)
	}

	return newResponse(pair, user), nil
}

// Refresh exchanges a valid refresh token for a fresh pair. The identity is
// re-fetched so the new tokens carry the user's current role rather than
// whatever role the refresh token was minted with.
func (s *Service) Refresh(ctx context.Context, req RefreshRequest) (*Response, error) {
	claims, err := s.tokens.ValidateRefresh(req.RefreshToken)
	if err != nil {
		if errors.Is(err, token.ErrWrongTokenType) {
			s.log.Debug("Access token presented at refresh endpoint")
		}
		return nil, apperrors.InvalidToken()
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, apperrors.InvalidToken()
	}

	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, apperrors.AuthenticationFailed()
		}
		return nil, apperrors.DatabaseError(err)
	}

	pair, err := s.tokens.IssuePair(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return newResponse(pair, user), nil
}
