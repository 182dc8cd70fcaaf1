package handler

import (
	"net/http"

	"smart-bulb-backend/internal/metrics"
	"smart-bulb-backend/internal/service"
	"smart-bulb-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type VerificationHandler struct {
	verificationService *service.VerificationService
	metrics             *metrics.Metrics
}

func NewVerificationHandler(verificationService *service.VerificationService, m *metrics.Metrics) *VerificationHandler {
	return &VerificationHandler{
		verificationService: verificationService,
		metrics:             m,
	}
}

type SendCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// SendCode mails a caller-generated verification code and echoes it back
func (h *VerificationHandler) SendCode(c *gin.Context) {
	var req SendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	code, err := h.verificationService.SendCode(c.Request.Context(), req.Email, req.Code)
	observe(h.metrics, "send_code", err)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"code": code})
}
