// internal/domain/address/dto.go
package address

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

type CreateAddressRequest struct {
	CustomerID  int64  `json:"customer_id"`
	AddressLine string `json:"address_line"`
	City        string `json:"city"`
	State       string `json:"state"`
	PinCode     string `json:"pin_code"`
	IsPrimary   Flag   `json:"is_primary"`
}

type UpdateAddressRequest struct {
	AddressLine string `json:"address_line"`
	City        string `json:"city"`
	State       string `json:"state"`
	PinCode     string `json:"pin_code"`
	IsPrimary   Flag   `json:"is_primary"`
}

func (r *CreateAddressRequest) ToAddress(customerID int64) *Address {
	return &Address{
		CustomerID:  customerID,
		AddressLine: strings.TrimSpace(r.AddressLine),
		City:        strings.TrimSpace(r.City),
		State:       strings.TrimSpace(r.State),
		PinCode:     r.PinCode,
		IsPrimary:   bool(r.IsPrimary),
	}
}

func (r *UpdateAddressRequest) ToAddress() *Address {
	return &Address{
		AddressLine: strings.TrimSpace(r.AddressLine),
		City:        strings.TrimSpace(r.City),
		State:       strings.TrimSpace(r.State),
		PinCode:     r.PinCode,
		IsPrimary:   bool(r.IsPrimary),
	}
}

type AddressListResponse struct {
	Addresses []Address `json:"addresses"`
}

// Flag is a boolean that also accepts 0/1 and "0"/"1" on input.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "true", "1", `"1"`, `"true"`:
		*f = true
		return nil
	case "false", "0", `"0"`, `"false"`, "null", `""`:
		*f = false
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("invalid is_primary value %s", data)
	}
	*f = Flag(b)
	return nil
}
