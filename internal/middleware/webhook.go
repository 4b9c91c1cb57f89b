package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ClinicaVitaBR/crm-followup/internal/audit"
	"github.com/ClinicaVitaBR/crm-followup/internal/config"
)

// WebhookAuthMiddleware protects the intake endpoint with the static token
// shared with the capture channel.
func WebhookAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.WebhookToken == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "webhook_token_not_configured"})
			return
		}

		token := c.GetHeader("Authorization")
		token = strings.TrimPrefix(token, "Bearer ")

		if subtle.ConstantTimeCompare([]byte(token), []byte(cfg.WebhookToken)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid_webhook_token"})
			return
		}

		ctx := audit.WithActor(c.Request.Context(), audit.Actor{
			Name:      "webhook",
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
