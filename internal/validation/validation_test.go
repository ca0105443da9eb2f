package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validCustomer() CustomerInput {
	return CustomerInput{
		FirstName:   "Asha",
		LastName:    "Rao",
		PhoneNumber: "9876543210",
		Email:       "asha@x.com",
	}
}

func validAddress() AddressInput {
	return AddressInput{
		AddressLine: "12 MG Road",
		City:        "Pune",
		State:       "Maharashtra",
		PinCode:     "411001",
	}
}

func TestCustomer(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CustomerInput)
		want   []string
	}{
		{"valid", func(*CustomerInput) {}, nil},
		{"email omitted", func(in *CustomerInput) { in.Email = "" }, nil},
		{"short first name after trim", func(in *CustomerInput) { in.FirstName = " A " },
			[]string{"First name must be at least 2 characters long"}},
		{"missing last name", func(in *CustomerInput) { in.LastName = "" },
			[]string{"Last name must be at least 2 characters long"}},
		{"phone starting with 5", func(in *CustomerInput) { in.PhoneNumber = "5876543210" },
			[]string{"Phone number must be a valid 10-digit Indian mobile number"}},
		{"phone too short", func(in *CustomerInput) { in.PhoneNumber = "987654321" },
			[]string{"Phone number must be a valid 10-digit Indian mobile number"}},
		{"bad email", func(in *CustomerInput) { in.Email = "asha@x" },
			[]string{"Please enter a valid email address"}},
		{"blank email is still checked", func(in *CustomerInput) { in.Email = "  " },
			[]string{"Please enter a valid email address"}},
		{"everything wrong keeps field order", func(in *CustomerInput) {
			*in = CustomerInput{FirstName: "A", LastName: "B", PhoneNumber: "123", Email: "nope"}
		}, []string{
			"First name must be at least 2 characters long",
			"Last name must be at least 2 characters long",
			"Phone number must be a valid 10-digit Indian mobile number",
			"Please enter a valid email address",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validCustomer()
			tt.mutate(&in)
			got := Customer(in)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddress(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AddressInput)
		want   []string
	}{
		{"valid", func(*AddressInput) {}, nil},
		{"short line", func(in *AddressInput) { in.AddressLine = "  12  " },
			[]string{"Address line must be at least 5 characters long"}},
		{"missing city", func(in *AddressInput) { in.City = "" },
			[]string{"City must be at least 2 characters long"}},
		{"short state", func(in *AddressInput) { in.State = "M" },
			[]string{"State must be at least 2 characters long"}},
		{"pin with letters", func(in *AddressInput) { in.PinCode = "41100A" },
			[]string{"Pin code must be a valid 6-digit number"}},
		{"pin too long", func(in *AddressInput) { in.PinCode = "4110011" },
			[]string{"Pin code must be a valid 6-digit number"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validAddress()
			tt.mutate(&in)
			got := Address(in)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
