package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kbukum/vibeapi/internal/auth/authctx"
	"github.com/kbukum/vibeapi/internal/auth/token"
	apperrors "github.com/kbukum/vibeapi/internal/errors"
	"github.com/kbukum/vibeapi/internal/logger"
	"github.com/kbukum/vibeapi/internal/users"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTokenService(t *testing.T) *token.Service {
	t.Helper()
	svc, err := token.NewService(token.Config{
		Secret: "0123456789abcdef0123456789abcdef",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc
}

// authTestRouter mounts an echo route behind the authentication gate that
// reports the claims it observed.
func authTestRouter(t *testing.T, tokens *token.Service) *gin.Engine {
	t.Helper()
	engine := gin.New()
	engine.GET("/whoami",
		Authentication(tokens, logger.NewDefault("test")),
		func(c *gin.Context) {
			claims, err := authctx.GetOrError[*token.Claims](c.Request.Context())
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "no claims"})
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"sub":  claims.Subject,
				"role": string(claims.Role),
			})
		})
	return engine
}

func doRequest(engine *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) apperrors.ErrorCode {
	t.Helper()
	var body apperrors.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unexpected error decoding body %q: %v", rec.Body.String(), err)
	}
	return body.Error.Code
}

func TestAuthentication_MissingHeader(t *testing.T) {
	engine := authTestRouter(t, newTokenService(t))

	rec := doRequest(engine, "")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if code := decodeErrorCode(t, rec); code != apperrors.ErrCodeUnauthorized {
		t.Errorf("expected UNAUTHORIZED, got %s", code)
	}
}

func TestAuthentication_WrongScheme(t *testing.T) {
	tokens := newTokenService(t)
	engine := authTestRouter(t, tokens)

	raw, err := tokens.IssueAccess(uuid.New(), "a@example.com", users.RoleUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A valid token under the wrong scheme never reaches the validator.
	for _, header := range []string{"Basic " + raw, "bearer " + raw, raw} {
		rec := doRequest(engine, header)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %d", header, rec.Code)
		}
		if code := decodeErrorCode(t, rec); code != apperrors.ErrCodeUnauthorized {
			t.Errorf("header %q: expected UNAUTHORIZED, got %s", header, code)
		}
	}
}

func TestAuthentication_InvalidToken(t *testing.T) {
	engine := authTestRouter(t, newTokenService(t))

	rec := doRequest(engine, "Bearer not-a-real-token")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if code := decodeErrorCode(t, rec); code != apperrors.ErrCodeInvalidToken {
		t.Errorf("expected INVALID_TOKEN, got %s", code)
	}
}

func TestAuthentication_RefreshTokenRejected(t *testing.T) {
	tokens := newTokenService(t)
	engine := authTestRouter(t, tokens)

	refresh, err := tokens.IssueRefresh(uuid.New(), "a@example.com", users.RoleUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec := doRequest(engine, "Bearer "+refresh)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	// Wrong kind collapses to the same generic rejection as any bad token.
	if code := decodeErrorCode(t, rec); code != apperrors.ErrCodeInvalidToken {
		t.Errorf("expected INVALID_TOKEN, got %s", code)
	}
}

func TestAuthentication_ValidToken(t *testing.T) {
	tokens := newTokenService(t)
	engine := authTestRouter(t, tokens)

	userID := uuid.New()
	raw, err := tokens.IssueAccess(userID, "a@example.com", users.RoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec := doRequest(engine, "Bearer "+raw)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body["sub"] != userID.String() {
		t.Errorf("expected sub %s, got %s", userID, body["sub"])
	}
	if body["role"] != "admin" {
		t.Errorf("expected role admin, got %s", body["role"])
	}
}

func TestExtractBearer(t *testing.T) {
	cases := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"Bearer  abc", " abc", true}, // single split keeps the rest verbatim
		{"", "", false},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"Basic abc", "", false},
	}

	for _, tc := range cases {
		got, ok := extractBearer(tc.header)
		if ok != tc.ok {
			t.Errorf("header %q: expected ok=%v, got %v", tc.header, tc.ok, ok)
			continue
		}
		if ok && got != tc.token {
			t.Errorf("header %q: expected token %q, got %q", tc.header, tc.token, got)
		}
	}
}
