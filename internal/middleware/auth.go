package middleware

import (
	"errors"
	"net/http"
	"strings"

	"bookstore-management/internal/config"
	"bookstore-management/internal/logger"
	appErrors "bookstore-management/pkg/errors"
	"bookstore-management/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ContextUserID = "userID"
	ContextName   = "name"
	ContextEmail  = "email"
	ContextClaims = "claims"
)

// AuthMiddleware is the access gate. A missing or malformed bearer header
// answers 401; a token that fails verification answers 403.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(token, cfg.JWT.Secret)
		if err != nil {
			reason := "invalid"
			if errors.Is(err, appErrors.ErrTokenExpired) {
				reason = "expired"
			}
			logger.WithRequestID(GetRequestID(c)).Warn("Rejected bearer token",
				zap.String("reason", reason),
				zap.String("path", c.Request.URL.Path),
				zap.String("event", "token_rejected"),
			)
			utils.ErrorResponse(c, http.StatusForbidden, "Forbidden")
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextName, claims.Name)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextClaims, claims)

		c.Next()
	}
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", appErrors.ErrTokenMissing
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", appErrors.ErrTokenMissing
	}
	return strings.TrimSpace(parts[1]), nil
}

// GetUserID returns the authenticated user's id, if the gate ran.
func GetUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
