package handler

import (
	"net/http"

	"smart-bulb-backend/internal/metrics"
	"smart-bulb-backend/internal/service"
	"smart-bulb-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	accountService *service.AccountService
	metrics        *metrics.Metrics
}

func NewAccountHandler(accountService *service.AccountService, m *metrics.Metrics) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		metrics:        m,
	}
}

type EmailRequest struct {
	Email string `json:"email"`
}

type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CheckEmail reports whether an email is free to register
func (h *AccountHandler) CheckEmail(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	available, err := h.accountService.CheckEmail(c.Request.Context(), req.Email)
	observe(h.metrics, "check_email", err)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"available": available})
}

// Register creates a new account
func (h *AccountHandler) Register(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	err := h.accountService.Register(c.Request.Context(), req.Email, req.Password)
	observe(h.metrics, "register", err)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "User registered successfully")
}

// Login checks an email/password pair
func (h *AccountHandler) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	err := h.accountService.Login(c.Request.Context(), req.Email, req.Password)
	observe(h.metrics, "login", err)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Login successful")
}

// ResetPassword replaces the password of an existing account
func (h *AccountHandler) ResetPassword(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	err := h.accountService.ResetPassword(c.Request.Context(), req.Email, req.Password)
	observe(h.metrics, "reset_password", err)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Password reset successful")
}
