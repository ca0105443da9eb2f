// internal/handlers/address/address.go
package address

import (
	"net/http"
	"strconv"

	"crm-service/internal/domain/address"
	"crm-service/internal/pkg/response"
	service "crm-service/internal/service/address"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	MsgAddressNotFound  = "Address not found"
	MsgCustomerNotFound = "Customer not found"
	MsgInvalidID        = "Invalid address ID"
	MsgInvalidCustomer  = "Invalid customer ID"
	MsgInvalidBody      = "Invalid request body"
)

type AddressHandler struct {
	addressService *service.AddressService
	logger         *zap.Logger
}

func NewAddressHandler(addressService *service.AddressService, logger *zap.Logger) *AddressHandler {
	return &AddressHandler{
		addressService: addressService,
		logger:         logger,
	}
}

// CreateAddress adds an address to an existing customer
func (h *AddressHandler) CreateAddress(c *gin.Context) {
	var req address.CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, MsgInvalidBody, err)
		return
	}

	result, err := h.addressService.CreateAddress(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, h.logger, err, MsgCustomerNotFound)
		return
	}

	response.Success(c, http.StatusCreated, "Address created successfully", gin.H{"address": result})
}

// GetAddress returns a single address
func (h *AddressHandler) GetAddress(c *gin.Context) {
	id, ok := parseID(c, "id", MsgInvalidID)
	if !ok {
		return
	}

	result, err := h.addressService.GetAddress(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, h.logger, err, MsgAddressNotFound)
		return
	}

	response.Success(c, http.StatusOK, "Address fetched successfully", result)
}

// ListByCustomer returns a customer's addresses, primary first
func (h *AddressHandler) ListByCustomer(c *gin.Context) {
	customerID, ok := parseID(c, "customerId", MsgInvalidCustomer)
	if !ok {
		return
	}

	result, err := h.addressService.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		response.FromError(c, h.logger, err, MsgCustomerNotFound)
		return
	}

	response.Success(c, http.StatusOK, "Addresses fetched successfully", address.AddressListResponse{Addresses: result})
}

// ListCustomersWithMultipleAddresses returns customers owning more than one address
func (h *AddressHandler) ListCustomersWithMultipleAddresses(c *gin.Context) {
	result, err := h.addressService.ListCustomersWithMultipleAddresses(c.Request.Context())
	if err != nil {
		response.FromError(c, h.logger, err, MsgCustomerNotFound)
		return
	}

	response.Success(c, http.StatusOK, "Customers with multiple addresses fetched successfully", gin.H{"customers": result})
}

// UpdateAddress replaces an address's details
func (h *AddressHandler) UpdateAddress(c *gin.Context) {
	id, ok := parseID(c, "id", MsgInvalidID)
	if !ok {
		return
	}

	var req address.UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, MsgInvalidBody, err)
		return
	}

	result, err := h.addressService.UpdateAddress(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, h.logger, err, MsgAddressNotFound)
		return
	}

	response.Success(c, http.StatusOK, "Address updated successfully", gin.H{"address": result})
}

// DeleteAddress removes an address
func (h *AddressHandler) DeleteAddress(c *gin.Context) {
	id, ok := parseID(c, "id", MsgInvalidID)
	if !ok {
		return
	}

	if err := h.addressService.DeleteAddress(c.Request.Context(), id); err != nil {
		response.FromError(c, h.logger, err, MsgAddressNotFound)
		return
	}

	response.Success(c, http.StatusOK, "Address deleted successfully", nil)
}

func parseID(c *gin.Context, param, msg string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id < 1 {
		response.BadRequest(c, msg, nil)
		return 0, false
	}
	return id, true
}
