package validators

import (
	"errors"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/Hbollas/LashTechBooking/internal/httperr"
)

// US-style number: (555) 123-4567, 555.123.4567, 5551234567.
var phonePattern = regexp.MustCompile(`^\(?\d{3}\)?[-. ]?\d{3}[-. ]?\d{4}$`)

// Customer is the contact data captured with a booking.
type Customer struct {
	Name  string `validate:"required,max=120"`
	Email string `validate:"required,email,max=256"`
	Phone string `validate:"omitempty,phone"`
}

var (
	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return IsPhone(fl.Field().String())
		})
	})
	return v
}

func IsPhone(s string) bool {
	return phonePattern.MatchString(strings.TrimSpace(s))
}

// Normalize trims the fields and lower-cases the e-mail address.
func (c Customer) Normalize() Customer {
	return Customer{
		Name:  strings.TrimSpace(c.Name),
		Email: strings.ToLower(strings.TrimSpace(c.Email)),
		Phone: strings.TrimSpace(c.Phone),
	}
}

// ValidateCustomer returns a validation error naming the first bad field.
func ValidateCustomer(c Customer) error {
	err := instance().Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return httperr.Validation("invalid_customer", "Invalid customer details.")
	}

	fe := fieldErrs[0]
	switch fe.Field() {
	case "Name":
		if fe.Tag() == "required" {
			return httperr.Validation("missing_customer_name", "Name is required.")
		}
		return httperr.Validation("invalid_customer_name", "Name is too long.")
	case "Email":
		if fe.Tag() == "required" {
			return httperr.Validation("missing_customer_email", "Email is required.")
		}
		return httperr.Validation("invalid_customer_email", "Email address is not valid.")
	case "Phone":
		return httperr.Validation("invalid_customer_phone", "Phone number is not valid.")
	}
	return httperr.Validation("invalid_customer", "Invalid customer details.")
}
