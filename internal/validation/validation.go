// internal/validation/validation.go
package validation

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var (
	mobilePattern = regexp.MustCompile(`^[6-9]\d{9}$`)
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	pinPattern    = regexp.MustCompile(`^\d{6}$`)
)

// CustomerInput carries the customer fields subject to validation.
type CustomerInput struct {
	FirstName   string `validate:"trimmin=2"`
	LastName    string `validate:"trimmin=2"`
	PhoneNumber string `validate:"inmobile"`
	Email       string `validate:"omitempty,simpleemail"`
}

// AddressInput carries the address fields subject to validation.
type AddressInput struct {
	AddressLine string `validate:"trimmin=5"`
	City        string `validate:"trimmin=2"`
	State       string `validate:"trimmin=2"`
	PinCode     string `validate:"pincode"`
}

var messages = map[string]string{
	"FirstName":   "First name must be at least 2 characters long",
	"LastName":    "Last name must be at least 2 characters long",
	"PhoneNumber": "Phone number must be a valid 10-digit Indian mobile number",
	"Email":       "Please enter a valid email address",
	"AddressLine": "Address line must be at least 5 characters long",
	"City":        "City must be at least 2 characters long",
	"State":       "State must be at least 2 characters long",
	"PinCode":     "Pin code must be a valid 6-digit number",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	mustRegister(v, "trimmin", trimmedMinLength)
	mustRegister(v, "inmobile", matches(mobilePattern))
	mustRegister(v, "simpleemail", matches(emailPattern))
	mustRegister(v, "pincode", matches(pinPattern))
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("validation: register " + tag + ": " + err.Error())
	}
}

func trimmedMinLength(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= n
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// Customer returns one message per invalid field, in field order.
// An empty result means the input is valid.
func Customer(in CustomerInput) []string {
	return check(in)
}

// Address returns one message per invalid field, in field order.
func Address(in AddressInput) []string {
	return check(in)
}

func check(in interface{}) []string {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}

	out := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg, ok := messages[fe.StructField()]
		if !ok {
			msg = fe.Error()
		}
		out = append(out, msg)
	}
	return out
}
