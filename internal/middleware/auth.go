package middleware

import (
	"net/http"
	"simhealth/internal/config"
	appErrors "simhealth/pkg/errors"
	"simhealth/pkg/utils"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	UIDKey  = "uid"
	RoleKey = "role"
)

// AuthMiddleware verifies the bearer token and stores the caller identity.
// Whether the caller is a doctor is decided by the use cases, not by the
// token's role claim.
func AuthMiddleware(cfg *config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, appErrors.ErrMissingToken.Message)
			c.Abort()
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, appErrors.ErrMissingToken.Message)
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(token, cfg.Secret, cfg.Issuer)
		if err != nil {
			RequestLogger(c).Debug("Rejected bearer token", zap.Error(err))
			utils.ErrorResponse(c, http.StatusUnauthorized, appErrors.ErrInvalidToken.Message)
			c.Abort()
			return
		}

		c.Set(UIDKey, claims.UserID)
		c.Set(RoleKey, claims.Role)

		c.Next()
	}
}

// CallerUID returns the authenticated uid, or "" on unauthenticated routes.
func CallerUID(c *gin.Context) string {
	return c.GetString(UIDKey)
}

func CallerRole(c *gin.Context) string {
	return c.GetString(RoleKey)
}
