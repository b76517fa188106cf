package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ukfreewill/will-service/pkg/logger"
)

// Recovery is the top-level crash boundary: any panic escaping a handler is
// logged and replaced with a generic recovery payload telling the client to
// reload. No partial session state is preserved for the failed request.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, err any) {
		logger.Errorf("critical application error: %v", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":  "We encountered an unexpected issue. This has been logged for our engineering team.",
			"action": "reload",
		})
	})
}
