// internal/domain/customer/entity.go
package customer

import (
	"time"

	"crm-service/internal/domain/address"
)

type Customer struct {
	ID          int64     `json:"id" db:"id"`
	FirstName   string    `json:"first_name" db:"first_name"`
	LastName    string    `json:"last_name" db:"last_name"`
	PhoneNumber string    `json:"phone_number" db:"phone_number"`
	Email       *string   `json:"email" db:"email"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ListItem is a customer annotated with how many addresses it owns.
type ListItem struct {
	Customer
	AddressCount int64 `json:"address_count" db:"address_count"`
}

// LocationMatch is a location search hit. City, State and PinCode come from
// one representative matching address; AddressCount counts all matching ones.
type LocationMatch struct {
	Customer
	City         string `json:"city" db:"city"`
	State        string `json:"state" db:"state"`
	PinCode      string `json:"pin_code" db:"pin_code"`
	AddressCount int64  `json:"address_count" db:"address_count"`
}

// Detail is a customer together with all of its addresses.
type Detail struct {
	Customer
	Addresses []address.Address `json:"addresses"`
}

type CityStat struct {
	City          string `json:"city" db:"city"`
	CustomerCount int64  `json:"customer_count" db:"customer_count"`
}
