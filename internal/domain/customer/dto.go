// internal/domain/customer/dto.go
package customer

import (
	"strings"

	"crm-service/internal/domain/address"
)

type CreateCustomerRequest struct {
	FirstName   string                        `json:"first_name"`
	LastName    string                        `json:"last_name"`
	PhoneNumber string                        `json:"phone_number"`
	Email       string                        `json:"email"`
	Address     *address.CreateAddressRequest `json:"address,omitempty"`
}

type UpdateCustomerRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
}

// ToCustomer builds the record to persist. A blank email is stored as NULL.
func (r *CreateCustomerRequest) ToCustomer() *Customer {
	return &Customer{
		FirstName:   strings.TrimSpace(r.FirstName),
		LastName:    strings.TrimSpace(r.LastName),
		PhoneNumber: r.PhoneNumber,
		Email:       NullableEmail(r.Email),
	}
}

func (r *UpdateCustomerRequest) ToCustomer() *Customer {
	return &Customer{
		FirstName:   strings.TrimSpace(r.FirstName),
		LastName:    strings.TrimSpace(r.LastName),
		PhoneNumber: r.PhoneNumber,
		Email:       NullableEmail(r.Email),
	}
}

func NullableEmail(email string) *string {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	return &email
}

type CustomerListFilters struct {
	Search string `form:"search"` // first name, last name or phone
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

type LocationSearchFilters struct {
	Search string `form:"search"` // city, state, pin code or address line
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

type CustomerListResponse struct {
	Customers  []ListItem `json:"customers"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"total_pages"`
}

type LocationSearchResponse struct {
	Customers  []LocationMatch `json:"customers"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}
