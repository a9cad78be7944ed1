// Package validate holds the field validators shared by the API, the chat
// flow and the pre-order client. The regexes are the contract: local mobile
// numbers, Sri Lankan NICs (legacy and modern form) and a permissive email
// shape.
package validate

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	phoneRegex  = regexp.MustCompile(`^07\d{8}$`)
	oldNICRegex = regexp.MustCompile(`^\d{9}[vVxX]$`)
	newNICRegex = regexp.MustCompile(`^\d{12}$`)
	emailRegex  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// User-facing format messages, kept word-for-word with what the site shows.
var (
	ErrPhoneFormat = errors.New("Phone number must be 10 digits and start with 07 (e.g., 07XXXXXXXX)")
	ErrNICFormat   = errors.New("Invalid NIC format (e.g., 123456789V or 199912345678)")
	ErrEmailFormat = errors.New("Please enter a valid email address")
)

// Phone checks the local mobile-number shape: leading 07 plus 8 digits.
func Phone(s string) error {
	if !phoneRegex.MatchString(s) {
		return ErrPhoneFormat
	}
	return nil
}

// NIC accepts the legacy 9-digits-plus-letter form (V/X, case-insensitive)
// or the modern 12-digit form.
func NIC(s string) error {
	if !oldNICRegex.MatchString(s) && !newNICRegex.MatchString(s) {
		return ErrNICFormat
	}
	return nil
}

// Email checks the permissive local@domain.tld shape.
func Email(s string) error {
	if !emailRegex.MatchString(s) {
		return ErrEmailFormat
	}
	return nil
}

// New returns a validator instance with the domain tags registered, for use
// as binding tags ("lkphone", "nic") in request structs.
func New() *validator.Validate {
	v := validator.New()
	Register(v)
	return v
}

var global = New()

// Struct validates a tagged struct and maps the first violation to the
// user-facing message the site shows for that field.
func Struct(s any) error {
	err := global.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	ve := verrs[0]
	switch ve.Tag() {
	case "lkphone":
		return ErrPhoneFormat
	case "nic":
		return ErrNICFormat
	case "emailshape":
		return ErrEmailFormat
	case "required":
		return fmt.Errorf("%s is required", ve.Field())
	case "min", "gte", "gt":
		return fmt.Errorf("%s must be at least %s", ve.Field(), ve.Param())
	}
	return fmt.Errorf("%s is invalid", ve.Field())
}

// Register adds the domain tags to an existing validator engine, such as the
// one gin's binding layer exposes.
func Register(v *validator.Validate) {
	_ = v.RegisterValidation("lkphone", func(fl validator.FieldLevel) bool {
		return phoneRegex.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("nic", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return oldNICRegex.MatchString(s) || newNICRegex.MatchString(s)
	})
	_ = v.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
		return emailRegex.MatchString(fl.Field().String())
	})
}
