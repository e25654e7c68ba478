package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/vibeapi/internal/auth/authctx"
	"github.com/kbukum/vibeapi/internal/auth/token"
	apperrors "github.com/kbukum/vibeapi/internal/errors"
	"github.com/kbukum/vibeapi/internal/logger"
	"github.com/kbukum/vibeapi/internal/users"
)

// RequireRole returns a guard that admits requests whose claims carry one of
// the allowed roles. Membership is flat set membership — admin does not
// imply moderator unless both are listed.
//
// The guard must run after Authentication. If no claims are present the
// route pipeline is miswired; that case is logged at error level and
// answered with 401, distinct internally from an ordinary role denial.
func RequireRole(log *logger.Logger, allowed ...users.Role) gin.HandlerFunc {
	log = log.WithComponent("role-guard")

	return func(c *gin.Context) {
		claims, err := authctx.GetOrError[*token.Claims](c.Request.Context())
		if err != nil {
			log.Error("Role guard ran without authentication context", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			abort(c, apperrors.NoAuthContext())
			return
		}

		for _, role := range allowed {
			if claims.Role == role {
				c.Next()
				return
			}
		}

		abort(c, apperrors.Forbidden(rolesString(allowed), string(claims.Role)))
	}
}

func rolesString(roles []users.Role) string {
	s := ""
	for i, r := range roles {
		if i > 0 {
			s += ","
		}
		s += string(r)
	}
	return s
}
