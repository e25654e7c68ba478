// Package middleware provides the request pipeline stages: authentication,
// role guarding, request IDs, panic recovery, logging and CORS.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/vibeapi/internal/auth/authctx"
	"github.com/kbukum/vibeapi/internal/auth/token"
	apperrors "github.com/kbukum/vibeapi/internal/errors"
	"github.com/kbukum/vibeapi/internal/logger"
)

const bearerScheme = "Bearer"

// Authentication returns the per-request authentication gate. It extracts
// the bearer token, validates it as an access token, and on success attaches
// the claims to the request context for downstream stages. On any failure
// the pipeline short-circuits with a 401 before reaching the handler.
//
// The gate is stateless across requests; claims are reconstructed from the
// token bytes every time.
func Authentication(tokens *token.Service, log *logger.Logger) gin.HandlerFunc {
	log = log.WithComponent("auth-middleware")

	return func(c *gin.Context) {
		raw, ok := extractBearer(c.GetHeader("Authorization"))
		if !ok {
			abort(c, apperrors.Unauthorized())
			return
		}

		claims, err := tokens.ValidateAccess(raw)
		if err != nil {
			// The rejection reason stays in the logs; the response is
			// deliberately uninformative.
			log.Debug("Token rejected", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			abort(c, apperrors.InvalidToken())
			return
		}

		c.Request = c.Request.WithContext(authctx.Set(c.Request.Context(), claims))
		c.Next()
	}
}

// extractBearer pulls the token out of an "Authorization: Bearer <token>"
// header. Missing header or a different scheme both fail.
func extractBearer(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != bearerScheme || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// abort stops the pipeline with the given application error.
func abort(c *gin.Context, err *apperrors.AppError) {
	c.AbortWithStatusJSON(err.HTTPStatus, err.ToResponse())
}
