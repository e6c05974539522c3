package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/retailops/pricing-api/internal/models"
	"github.com/retailops/pricing-api/internal/repository"
	"github.com/retailops/pricing-api/internal/service"
	"github.com/retailops/pricing-api/internal/utils"
)

// ProductHandler handles product catalog endpoints.
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// GetProducts handles GET /v1/products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := &repository.ProductFilter{
		Category: c.Query("category"),
		Brand:    c.Query("brand"),
		Search:   c.Query("search"),
		Page:     page,
		Limit:    limit,
	}
	if raw := c.Query("isActive"); raw != "" {
		active := raw == "true"
		filter.IsActive = &active
	}

	products, total, err := h.productService.GetProducts(filter)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve products")
		return
	}

	utils.SuccessWithPagination(c, 200, "Products retrieved", gin.H{"products": products}, filter.Page, filter.Limit, total)
}

// GetProduct handles GET /v1/products/:skuCode
func (h *ProductHandler) GetProduct(c *gin.Context) {
	skuCode := c.Param("skuCode")

	product, err := h.productService.GetProductBySKUCode(skuCode)
	if err != nil {
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
		return
	}

	utils.Success(c, 200, "Product retrieved", product)
}

// GetCategories handles GET /v1/products/categories
func (h *ProductHandler) GetCategories(c *gin.Context) {
	categories, err := h.productService.GetCategories()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve categories")
		return
	}

	utils.Success(c, 200, "Categories retrieved", gin.H{"categories": categories})
}

// GetBrands handles GET /v1/products/brands
func (h *ProductHandler) GetBrands(c *gin.Context) {
	brands, err := h.productService.GetBrands(c.Query("category"))
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve brands")
		return
	}

	utils.Success(c, 200, "Brands retrieved", gin.H{"brands": brands})
}

// CreateProduct handles POST /v1/admin/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		utils.Error(c, 400, "MISSING_FIELD", "Invalid request body")
		return
	}
	if product.SKUCode == "" || product.Name == "" {
		utils.Error(c, 400, "MISSING_FIELD", "skuCode and name are required")
		return
	}

	if err := h.productService.CreateProduct(&product); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create product")
		return
	}

	utils.Success(c, 201, "Product created", product)
}

// UpdateProduct handles PUT /v1/admin/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Product ID must be a number")
		return
	}

	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		utils.Error(c, 400, "MISSING_FIELD", "Invalid request body")
		return
	}
	product.ID = id

	if err := h.productService.UpdateProduct(&product); err != nil {
		if err == utils.ErrProductNotFound {
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update product")
		return
	}

	utils.Success(c, 200, "Product updated", product)
}

// DeleteProduct handles DELETE /v1/admin/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Product ID must be a number")
		return
	}

	if err := h.productService.DeleteProduct(id); err != nil {
		if err == utils.ErrProductNotFound {
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete product")
		return
	}

	utils.Success(c, 200, "Product deleted", gin.H{"id": id})
}
