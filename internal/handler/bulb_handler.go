package handler

import (
	"net/http"

	"smart-bulb-backend/internal/metrics"
	"smart-bulb-backend/internal/service"
	"smart-bulb-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type BulbHandler struct {
	bulbService *service.BulbService
	metrics     *metrics.Metrics
}

func NewBulbHandler(bulbService *service.BulbService, m *metrics.Metrics) *BulbHandler {
	return &BulbHandler{
		bulbService: bulbService,
		metrics:     m,
	}
}

type AddBulbRequest struct {
	Email       string `json:"email"`
	BulbID      string `json:"bulb_id"`
	BulbName    string `json:"bulb_name"`
	RoomName    string `json:"room_name"`
	IsSimulated *bool  `json:"is_simulated"`
}

type ListBulbsRequest struct {
	Email         string `json:"email"`
	SimulatorMode *bool  `json:"simulator_mode"`
}

type UpdateBulbRequest struct {
	Email    string  `json:"email"`
	BulbID   string  `json:"bulb_id"`
	BulbName *string `json:"bulb_name"`
	RoomName *string `json:"room_name"`
}

type BulbKeyRequest struct {
	Email  string `json:"email"`
	BulbID string `json:"bulb_id"`
}

// AddBulb registers a bulb for an account
func (h *BulbHandler) AddBulb(c *gin.Context) {
	var req AddBulbRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	err := h.bulbService.AddBulb(c.Request.Context(), service.AddBulbInput{
		Email:       req.Email,
		BulbID:      req.BulbID,
		BulbName:    req.BulbName,
		RoomName:    req.RoomName,
		IsSimulated: req.IsSimulated,
	})
	observe(h.metrics, "add_bulb", err)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Bulb added successfully")
}

// GetBulbs lists the bulbs of one mode
func (h *BulbHandler) GetBulbs(c *gin.Context) {
	var req ListBulbsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	bulbs, err := h.bulbService.ListBulbs(c.Request.Context(), req.Email, req.SimulatorMode)
	observe(h.metrics, "get_bulbs", err)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"bulbs": bulbs})
}

// UpdateBulb changes the name and/or room of a bulb
func (h *BulbHandler) UpdateBulb(c *gin.Context) {
	var req UpdateBulbRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	err := h.bulbService.UpdateBulb(c.Request.Context(), req.Email, req.BulbID, req.BulbName, req.RoomName)
	observe(h.metrics, "update_bulb", err)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Bulb updated successfully")
}

// DeleteBulb removes a bulb registration
func (h *BulbHandler) DeleteBulb(c *gin.Context) {
	var req BulbKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	err := h.bulbService.DeleteBulb(c.Request.Context(), req.Email, req.BulbID)
	observe(h.metrics, "delete_bulb", err)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Bulb deleted successfully")
}
