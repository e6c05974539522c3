package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/retailops/pricing-api/internal/models"
	"github.com/retailops/pricing-api/internal/service"
	"github.com/retailops/pricing-api/internal/utils"
)

// TierHandler handles pricing tier management endpoints.
type TierHandler struct {
	tierService *service.TierService
}

// NewTierHandler constructs a TierHandler.
func NewTierHandler(tierService *service.TierService) *TierHandler {
	return &TierHandler{tierService: tierService}
}

// ListTiers handles GET /v1/admin/tiers
func (h *TierHandler) ListTiers(c *gin.Context) {
	tiers, err := h.tierService.ListTiers()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve tiers")
		return
	}

	utils.Success(c, 200, "Tiers retrieved", gin.H{"tiers": tiers})
}

// GetTier handles GET /v1/admin/tiers/:id
func (h *TierHandler) GetTier(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Tier ID must be a number")
		return
	}

	tier, err := h.tierService.GetTier(id)
	if err != nil {
		utils.Error(c, 404, "TIER_NOT_FOUND", "Tier not found")
		return
	}

	utils.Success(c, 200, "Tier retrieved", tier)
}

// CreateTier handles POST /v1/admin/tiers
func (h *TierHandler) CreateTier(c *gin.Context) {
	var tier models.PricingTier
	if err := c.ShouldBindJSON(&tier); err != nil {
		utils.Error(c, 400, "MISSING_FIELD", "Invalid request body")
		return
	}
	if tier.Name == "" {
		utils.Error(c, 400, "MISSING_FIELD", "name is required")
		return
	}

	if err := h.tierService.CreateTier(c.Request.Context(), &tier); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create tier")
		return
	}

	utils.Success(c, 201, "Tier created", tier)
}

// UpdateTier handles PUT /v1/admin/tiers/:id
func (h *TierHandler) UpdateTier(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Tier ID must be a number")
		return
	}

	var tier models.PricingTier
	if err := c.ShouldBindJSON(&tier); err != nil {
		utils.Error(c, 400, "MISSING_FIELD", "Invalid request body")
		return
	}
	tier.ID = id

	if err := h.tierService.UpdateTier(c.Request.Context(), &tier); err != nil {
		if err == utils.ErrTierNotFound {
			utils.Error(c, 404, "TIER_NOT_FOUND", "Tier not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update tier")
		return
	}

	utils.Success(c, 200, "Tier updated", tier)
}

// SetTierStatus handles PATCH /v1/admin/tiers/:id/status
func (h *TierHandler) SetTierStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Tier ID must be a number")
		return
	}

	var req struct {
		IsActive *bool `json:"isActive" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "MISSING_FIELD", "isActive is required")
		return
	}

	if err := h.tierService.SetTierStatus(c.Request.Context(), id, *req.IsActive); err != nil {
		if err == utils.ErrTierNotFound {
			utils.Error(c, 404, "TIER_NOT_FOUND", "Tier not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update tier status")
		return
	}

	utils.Success(c, 200, "Tier status updated", gin.H{"id": id, "isActive": *req.IsActive})
}

// DeleteTier handles DELETE /v1/admin/tiers/:id
func (h *TierHandler) DeleteTier(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Tier ID must be a number")
		return
	}

	if err := h.tierService.DeleteTier(c.Request.Context(), id); err != nil {
		if err == utils.ErrTierNotFound {
			utils.Error(c, 404, "TIER_NOT_FOUND", "Tier not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete tier")
		return
	}

	utils.Success(c, 200, "Tier deleted", gin.H{"id": id})
}
