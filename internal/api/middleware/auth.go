package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/isuraem/shopify-best-sellers-app/internal/config"
)

// AdminAuthMiddleware authenticates requests using the admin API key. The key
// is compared against a bcrypt hash from configuration. An empty hash
// disables auth entirely, which is only acceptable in development.
func AdminAuthMiddleware(cfg config.APIConfig, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.AdminKeyHash == "" {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		// Extract Bearer token
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		apiKey := strings.TrimSpace(parts[1])
		if apiKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing API key"})
			c.Abort()
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(cfg.AdminKeyHash), []byte(apiKey)); err != nil {
			logger.Warn("Failed to authenticate admin request", zap.String("path", c.Request.URL.Path))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
			c.Abort()
			return
		}

		c.Next()
	}
}
