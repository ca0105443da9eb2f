// internal/handlers/customer/customer.go
package customer

import (
	"net/http"
	"strconv"

	"crm-service/internal/domain/customer"
	"crm-service/internal/pkg/response"
	service "crm-service/internal/service/customer"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	MsgCustomerNotFound = "Customer not found"
	MsgInvalidID        = "Invalid customer ID"
	MsgInvalidBody      = "Invalid request body"
	MsgInvalidQuery     = "Invalid query parameters"
)

type CustomerHandler struct {
	customerService *service.CustomerService
	logger          *zap.Logger
}

func NewCustomerHandler(customerService *service.CustomerService, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		logger:          logger,
	}
}

// CreateCustomer creates a customer, optionally with a first address
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req customer.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, MsgInvalidBody, err)
		return
	}

	result, err := h.customerService.CreateCustomer(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, h.logger, err, MsgCustomerNotFound)
		return
	}

	response.Success(c, http.StatusCreated, "Customer created successfully", gin.H{"customer": result})
}

// ListCustomers returns a page of customers
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	var filters customer.CustomerListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.BadRequest(c, MsgInvalidQuery, err)
		return
	}

	result, err := h.customerService.ListCustomers(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, h.logger, err, MsgCustomerNotFound)
		return
	}

	response.Success(c, http.StatusOK, "Customers fetched successfully", result)
}

// SearchByLocation finds customers by city, state, pin code or address line
func (h *CustomerHandler) SearchByLocation(c *gin.Context) {
	var filters customer.LocationSearchFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.BadRequest(c, MsgInvalidQuery, err)
		return
	}

	result, err := h.customerService.SearchByLocation(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, h.logger, err, MsgCustomerNotFound)
		return
	}

	response.Success(c, http.StatusOK, "Search results fetched successfully", result)
}

// GetCustomer returns a customer with its addresses
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, h.logger, err, MsgCustomerNotFound)
		return
	}

	response.Success(c, http.StatusOK, "Customer details fetched successfully", result)
}

// UpdateCustomer replaces a customer's details
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req customer.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, MsgInvalidBody, err)
		return
	}

	result, err := h.customerService.UpdateCustomer(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, h.logger, err, MsgCustomerNotFound)
		return
	}

	response.Success(c, http.StatusOK, "Customer updated successfully", gin.H{"customer": result})
}

// DeleteCustomer removes a customer and its addresses
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), id); err != nil {
		response.FromError(c, h.logger, err, MsgCustomerNotFound)
		return
	}

	response.Success(c, http.StatusOK, "Customer deleted successfully", nil)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		response.BadRequest(c, MsgInvalidID, nil)
		return 0, false
	}
	return id, true
}
