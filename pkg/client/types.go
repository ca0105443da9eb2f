package client

import "time"

// Customer is a customer record as returned by the API.
type Customer struct {
	ID          int64     `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PhoneNumber string    `json:"phone_number"`
	Email       *string   `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Address struct {
	ID          int64     `json:"id"`
	CustomerID  int64     `json:"customer_id"`
	AddressLine string    `json:"address_line"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	PinCode     string    `json:"pin_code"`
	IsPrimary   bool      `json:"is_primary"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CustomerSummary is a customer with the number of addresses it owns.
type CustomerSummary struct {
	Customer
	AddressCount int64 `json:"address_count"`
}

// LocationMatch is a location search hit. City, State and PinCode come from
// one matching address; AddressCount counts all matching addresses.
type LocationMatch struct {
	Customer
	City         string `json:"city"`
	State        string `json:"state"`
	PinCode      string `json:"pin_code"`
	AddressCount int64  `json:"address_count"`
}

type CustomerDetail struct {
	Customer
	Addresses []Address `json:"addresses"`
}

type CustomerPage struct {
	Customers  []CustomerSummary `json:"customers"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

type LocationPage struct {
	Customers  []LocationMatch `json:"customers"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

type CityStat struct {
	City          string `json:"city"`
	CustomerCount int64  `json:"customer_count"`
}

type DashboardSummary struct {
	TotalCustomers     int64      `json:"total_customers"`
	ThisMonthCustomers int64      `json:"this_month_customers"`
	LocationStats      []CityStat `json:"location_stats"`
	MultipleAddresses  int64      `json:"multiple_addresses"`
	RecentCustomers    []Customer `json:"recent_customers"`
	LastUpdated        time.Time  `json:"last_updated"`
}

// ListOptions filters and pages list and search calls. Zero values use the
// server defaults.
type ListOptions struct {
	Search string
	Page   int
	Limit  int
}

// CreateCustomerRequest creates a customer. A non-nil Address is stored as
// the customer's primary address in the same transaction.
type CreateCustomerRequest struct {
	FirstName   string                `json:"first_name"`
	LastName    string                `json:"last_name"`
	PhoneNumber string                `json:"phone_number"`
	Email       string                `json:"email,omitempty"`
	Address     *CreateAddressRequest `json:"address,omitempty"`
}

type UpdateCustomerRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email,omitempty"`
}

// CreateAddressRequest adds an address. CustomerID is ignored when the
// request is embedded in CreateCustomerRequest.
type CreateAddressRequest struct {
	CustomerID  int64  `json:"customer_id,omitempty"`
	AddressLine string `json:"address_line"`
	City        string `json:"city"`
	State       string `json:"state"`
	PinCode     string `json:"pin_code"`
	IsPrimary   bool   `json:"is_primary"`
}

type UpdateAddressRequest struct {
	AddressLine string `json:"address_line"`
	City        string `json:"city"`
	State       string `json:"state"`
	PinCode     string `json:"pin_code"`
	IsPrimary   bool   `json:"is_primary"`
}
