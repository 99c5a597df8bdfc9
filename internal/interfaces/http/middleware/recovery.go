package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carelink/internal/shared/logger"
	"carelink/internal/shared/utils"
)

// Recovery turns panics into 500 responses instead of dropped
// connections.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("panic recovered",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"error", recovered)

		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error occurred")
		c.Abort()
	})
}
