package handler

import (
	"errors"
	"net/http"

	"smart-bulb-backend/internal/metrics"
	"smart-bulb-backend/internal/service"
	"smart-bulb-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const msgInvalidBody = "Invalid request body"

// statusForKind maps a service error kind to its HTTP status.
func statusForKind(kind service.Kind) int {
	switch kind {
	case service.KindInvalidInput:
		return http.StatusBadRequest
	case service.KindUnauthorized:
		return http.StatusUnauthorized
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error envelope for err. Only service messages
// reach the caller; anything else is reported generically.
func respondError(c *gin.Context, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		utils.ErrorResponse(c, statusForKind(svcErr.Kind), svcErr.Message)
		return
	}
	utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
}

// observe counts the outcome of one operation. m may be nil.
func observe(m *metrics.Metrics, operation string, err error) {
	if m == nil {
		return
	}
	outcome := utils.StatusSuccess
	if err != nil {
		outcome = string(service.KindOf(err))
	}
	m.ObserveOutcome(operation, outcome)
}
