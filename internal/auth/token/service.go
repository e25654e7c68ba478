package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kbukum/vibeapi/internal/users"
)

var (
	// ErrInvalidToken covers malformed tokens, signature mismatches,
	// issuer mismatches and expiry. Callers must not expose which.
	ErrInvalidToken = errors.New("token: invalid token")

	// ErrWrongTokenType is returned when a token of the other kind is
	// presented. Kept distinct from ErrInvalidToken for internal logging;
	// externally both map to the same generic rejection.
	ErrWrongTokenType = errors.New("token: wrong token type")
)

// Service issues and validates signed tokens under a fixed policy.
// It holds no mutable state and is safe for concurrent use.
type Service struct {
	cfg Config
}

// NewService creates a token service. The config is validated once here and
// never mutated again.
func NewService(cfg Config) (*Service, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("token: %w", err)
	}
	return &Service{cfg: cfg}, nil
}

// AccessTTL returns the configured access token lifetime.
func (s *Service) AccessTTL() time.Duration { return s.cfg.AccessTTL }

// IssueAccess mints an access token for the given identity.
func (s *Service) IssueAccess(userID uuid.UUID, email string, role users.Role) (string, error) {
	return s.issue(userID, email, role, KindAccess, time.Now(), s.cfg.AccessTTL)
}

// IssueRefresh mints a refresh token for the given identity.
func (s *Service) IssueRefresh(userID uuid.UUID, email string, role users.Role) (string, error) {
	return s.issue(userID, email, role, KindRefresh, time.Now(), s.cfg.RefreshTTL)
}

// IssuePair mints an access/refresh pair sharing a single issued-at
// timestamp so the two tokens are time-correlated.
func (s *Service) IssuePair(userID uuid.UUID, email string, role users.Role) (*Pair, error) {
	now := time.Now()

	access, err := s.issue(userID, email, role, KindAccess, now, s.cfg.AccessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.issue(userID, email, role, KindRefresh, now, s.cfg.RefreshTTL)
	if err != nil {
		return nil, err
	}

	return &Pair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.cfg.AccessTTL.Seconds()),
	}, nil
}

func (s *Service) issue(userID uuid.UUID, email string, role users.Role, kind Kind, now time.Time, ttl time.Duration) (string, error) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email:     email,
		Role:      role,
		TokenType: kind,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// ValidateAccess decodes tokenString and requires it to be an access token.
func (s *Service) ValidateAccess(tokenString string) (*Claims, error) {
	return s.validate(tokenString, KindAccess)
}

// ValidateRefresh decodes tokenString and requires it to be a refresh token.
func (s *Service) ValidateRefresh(tokenString string) (*Claims, error) {
	return s.validate(tokenString, KindRefresh)
}

// validate decodes the token (signature, issuer, expiry) and then checks the
// declared kind. The kind check happens after decoding so the codec layer
// stays generic over both token classes.
func (s *Service) validate(tokenString string, expected Kind) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != expected {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}

func (s *Service) keyFunc(t *jwt.Token) (interface{}, error) {
	if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("token: unexpected signing method: %s", t.Method.Alg())
	}
	return []byte(s.cfg.Secret), nil
}
