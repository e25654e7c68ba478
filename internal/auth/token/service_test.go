package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/vibeapi/internal/users"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testService(t *testing.T, cfg Config) *Service {
	t.Helper()
	if cfg.Secret == "" {
		cfg.Secret = testSecret
	}
	svc, err := NewService(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc
}

func TestNewService_SecretTooShort(t *testing.T) {
	_, err := NewService(Config{Secret: "short"})
	if err == nil {
		t.Fatal("expected error for short secret")
	}
}

func TestService_IssueAccess_RoundTrip(t *testing.T) {
	svc := testService(t, Config{})
	userID := uuid.New()

	raw, err := svc.IssueAccess(userID, "alice@example.com", users.RoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := svc.ValidateAccess(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if claims.Subject != userID.String() {
		t.Errorf("expected subject %s, got %s", userID, claims.Subject)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("expected email alice@example.com, got %s", claims.Email)
	}
	if claims.Role != users.RoleAdmin {
		t.Errorf("expected role admin, got %s", claims.Role)
	}
	if claims.TokenType != KindAccess {
		t.Errorf("expected token_type access, got %s", claims.TokenType)
	}
	if claims.Issuer != "vibe-api" {
		t.Errorf("expected issuer vibe-api, got %s", claims.Issuer)
	}

	got, err := claims.UserID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != userID {
		t.Errorf("expected UserID %s, got %s", userID, got)
	}
}

func TestService_Validate_KindSegregation(t *testing.T) {
	svc := testService(t, Config{})
	userID := uuid.New()

	access, err := svc.IssueAccess(userID, "a@example.com", users.RoleUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	refresh, err := svc.IssueRefresh(userID, "a@example.com", users.RoleUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A refresh token must not pass access validation, and vice versa.
	if _, err := svc.ValidateAccess(refresh); !errors.Is(err, ErrWrongTokenType) {
		t.Errorf("expected ErrWrongTokenType, got: %v", err)
	}
	if _, err := svc.ValidateRefresh(access); !errors.Is(err, ErrWrongTokenType) {
		t.Errorf("expected ErrWrongTokenType, got: %v", err)
	}
}

func TestService_Validate_Expired(t *testing.T) {
	svc := testService(t, Config{AccessTTL: -time.Minute})

	raw, err := svc.IssueAccess(uuid.New(), "a@example.com", users.RoleUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.ValidateAccess(raw); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got: %v", err)
	}
}

func TestService_Validate_TamperedSignature(t *testing.T) {
	svc := testService(t, Config{})

	raw, err := svc.IssueAccess(uuid.New(), "a@example.com", users.RoleUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Flip a character in the signature segment.
	parts := strings.Split(raw, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := svc.ValidateAccess(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for tampered token, got: %v", err)
	}
}

func TestService_Validate_WrongSecret(t *testing.T) {
	issuer := testService(t, Config{})
	other := testService(t, Config{Secret: "ffffffffffffffffffffffffffffffff"})

	raw, err := issuer.IssueAccess(uuid.New(), "a@example.com", users.RoleUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := other.ValidateAccess(raw); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong secret, got: %v", err)
	}
}

func TestService_Validate_WrongIssuer(t *testing.T) {
	minter := testService(t, Config{Issuer: "some-other-service"})
	validator := testService(t, Config{})

	raw, err := minter.IssueAccess(uuid.New(), "a@example.com", users.RoleUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := validator.ValidateAccess(raw); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong issuer, got: %v", err)
	}
}

func TestService_Validate_Garbage(t *testing.T) {
	svc := testService(t, Config{})

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.ValidateAccess(raw); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken for %q, got: %v", raw, err)
		}
	}
}

func TestService_IssuePair(t *testing.T) {
	svc := testService(t, Config{AccessTTL: time.Hour})
	userID := uuid.New()

	pair, err := svc.IssuePair(userID, "a@example.com", users.RoleModerator)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pair.TokenType != "Bearer" {
		t.Errorf("expected token_type Bearer, got %s", pair.TokenType)
	}
	if pair.ExpiresIn != 3600 {
		t.Errorf("expected expires_in 3600, got %d", pair.ExpiresIn)
	}

	access, err := svc.ValidateAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	refresh, err := svc.ValidateRefresh(pair.RefreshToken)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Both tokens share identity and issued-at.
	if access.Subject != refresh.Subject {
		t.Error("expected pair to share subject")
	}
	if !access.IssuedAt.Time.Equal(refresh.IssuedAt.Time) {
		t.Error("expected pair to share issued-at")
	}
	if access.Role != refresh.Role {
		t.Error("expected pair to share role")
	}
}
