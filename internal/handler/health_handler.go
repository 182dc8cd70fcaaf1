package handler

import (
	"context"
	"net/http"
	"time"

	"smart-bulb-backend/internal/logging"
	"smart-bulb-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const healthPingTimeout = 2 * time.Second

// Pinger is satisfied by *database.DB.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db      Pinger
	backend string
}

func NewHealthHandler(db Pinger, backend string) *HealthHandler {
	return &HealthHandler{db: db, backend: backend}
}

// Health reports service liveness and database reachability
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   utils.StatusError,
			"message":  "Database unreachable",
			"service":  logging.ServiceName,
			"backend":  h.backend,
			"database": false,
		})
		return
	}

	utils.SuccessResponse(c, gin.H{
		"health":   "healthy",
		"service":  logging.ServiceName,
		"backend":  h.backend,
		"database": true,
	})
}
