package middleware

import (
	"log/slog"
	"net/http"

	"smart-bulb-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Recovery turns a handler panic into the standard 500 error envelope.
func Recovery(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error("panic recovered in HTTP handler",
					"error", err,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"request_id", GetRequestID(c),
				)
				utils.AbortWithError(c, http.StatusInternalServerError, "Internal server error")
			}
		}()
		c.Next()
	}
}
