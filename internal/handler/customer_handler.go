package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/retailops/pricing-api/internal/models"
	"github.com/retailops/pricing-api/internal/service"
	"github.com/retailops/pricing-api/internal/utils"
)

// CustomerHandler handles customer account endpoints.
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler constructs a CustomerHandler.
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// GetCustomers handles GET /v1/customers
func (h *CustomerHandler) GetCustomers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	customers, total, err := h.customerService.GetCustomers(c.Query("customerType"), page, limit)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve customers")
		return
	}

	utils.SuccessWithPagination(c, 200, "Customers retrieved", gin.H{"customers": customers}, page, limit, total)
}

// GetCustomer handles GET /v1/customers/:code
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	code := c.Param("code")

	customer, err := h.customerService.GetCustomerByCode(code)
	if err != nil {
		utils.Error(c, 404, "CUSTOMER_NOT_FOUND", "Customer not found")
		return
	}

	utils.Success(c, 200, "Customer retrieved", customer)
}

// CreateCustomer handles POST /v1/admin/customers
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		utils.Error(c, 400, "MISSING_FIELD", "Invalid request body")
		return
	}
	if customer.Code == "" || customer.Name == "" {
		utils.Error(c, 400, "MISSING_FIELD", "code and name are required")
		return
	}

	if err := h.customerService.CreateCustomer(&customer); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create customer")
		return
	}

	utils.Success(c, 201, "Customer created", customer)
}

// UpdateCustomer handles PUT /v1/admin/customers/:id
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Customer ID must be a number")
		return
	}

	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		utils.Error(c, 400, "MISSING_FIELD", "Invalid request body")
		return
	}
	customer.ID = id

	if err := h.customerService.UpdateCustomer(&customer); err != nil {
		if err == utils.ErrCustomerNotFound {
			utils.Error(c, 404, "CUSTOMER_NOT_FOUND", "Customer not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update customer")
		return
	}

	utils.Success(c, 200, "Customer updated", customer)
}

// DeleteCustomer handles DELETE /v1/admin/customers/:id
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Customer ID must be a number")
		return
	}

	if err := h.customerService.DeleteCustomer(id); err != nil {
		if err == utils.ErrCustomerNotFound {
			utils.Error(c, 404, "CUSTOMER_NOT_FOUND", "Customer not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete customer")
		return
	}

	utils.Success(c, 200, "Customer deleted", gin.H{"id": id})
}
