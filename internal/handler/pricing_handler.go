package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/retailops/pricing-api/internal/models"
	"github.com/retailops/pricing-api/internal/service"
	"github.com/retailops/pricing-api/internal/utils"
)

// PricingHandler handles quote HTTP endpoints.
type PricingHandler struct {
	pricingService *service.PricingService
}

// NewPricingHandler constructs a PricingHandler.
func NewPricingHandler(pricingService *service.PricingService) *PricingHandler {
	return &PricingHandler{pricingService: pricingService}
}

const maxBatchSize = 50

// CreateQuote handles POST /v1/pricing/quote
func (h *PricingHandler) CreateQuote(c *gin.Context) {
	var req service.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "MISSING_FIELD", "Invalid request body")
		return
	}

	result, err := h.pricingService.Quote(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	utils.Success(c, 200, "Quote computed", result)
}

// CreateQuoteBatch handles POST /v1/pricing/quote/batch
func (h *PricingHandler) CreateQuoteBatch(c *gin.Context) {
	var req struct {
		Items []service.QuoteRequest `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "MISSING_FIELD", "Invalid request body")
		return
	}
	if len(req.Items) == 0 || len(req.Items) > maxBatchSize {
		utils.Error(c, 400, "INVALID_BATCH_SIZE", "Batch must contain between 1 and 50 items")
		return
	}

	results := h.pricingService.QuoteBatch(c.Request.Context(), req.Items)

	utils.Success(c, 200, "Batch computed", gin.H{"items": results})
}

// GetApplicableTiers handles GET /v1/pricing/tiers/applicable
func (h *PricingHandler) GetApplicableTiers(c *gin.Context) {
	customerType := models.CustomerType(c.Query("customerType"))
	category := c.Query("category")

	tiers := h.pricingService.ListApplicableTiers(customerType, category)

	utils.Success(c, 200, "Applicable tiers retrieved", gin.H{"tiers": tiers})
}

func (h *PricingHandler) handleError(c *gin.Context, err error) {
	switch err {
	case utils.ErrProductNotFound:
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", "SKU code not found")
	case utils.ErrCustomerNotFound:
		utils.Error(c, 404, "CUSTOMER_NOT_FOUND", "Customer code not found")
	case utils.ErrInvalidQuantity:
		utils.Error(c, 400, "INVALID_QUANTITY", "Quantity must be at least 1")
	case utils.ErrInvalidChannel:
		utils.Error(c, 400, "INVALID_CHANNEL", "Channel must be 'retail', 'wholesale', 'vip', or 'export'")
	case utils.ErrExportRestricted:
		utils.Error(c, 400, "EXPORT_RESTRICTED", "Product is not available on the export channel")
	default:
		utils.Error(c, 500, "INTERNAL_ERROR", "Internal server error")
	}
}
