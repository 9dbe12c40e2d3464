// Package validation wraps a single go-playground/validator instance with
// the site's custom rules and turns its errors into the field/message
// array returned by every form endpoint.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// FieldError is one entry of the "errors" array in a 400 response.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var (
	zipRe  = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	htmlRe = regexp.MustCompile(`<[^>]*>`)
)

// Phone numbers must carry between MinPhoneDigits and MaxPhoneDigits
// digits once punctuation is ignored.
const (
	MinPhoneDigits = 10
	MaxPhoneDigits = 15
)

// Validator is safe for concurrent use; it caches struct metadata
// between calls.
type Validator struct {
	v *validator.Validate
}

// New builds a Validator with the phone, zipcode and nohtml tags and
// JSON field names in error reports.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return ValidPhone(fl.Field().String())
	})
	_ = v.RegisterValidation("zipcode", func(fl validator.FieldLevel) bool {
		return zipRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("nohtml", func(fl validator.FieldLevel) bool {
		return !htmlRe.MatchString(fl.Field().String())
	})

	return &Validator{v: v}
}

// Struct validates s. It returns nil when s is valid, the list of field
// problems when it is not, and an error when s cannot be validated at all.
func (v *Validator) Struct(s any) ([]FieldError, error) {
	err := v.v.Struct(s)
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}
	return FieldErrors(verrs), nil
}

// FieldErrors converts validator errors into plain-English messages, one
// per failing field.
func FieldErrors(errs validator.ValidationErrors) []FieldError {
	out := make([]FieldError, 0, len(errs))
	for _, e := range errs {
		out = append(out, FieldError{Field: e.Field(), Message: message(e)})
	}
	return out
}

func message(e validator.FieldError) string {
	switch e.ActualTag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "email":
		return "Please enter a valid email address"
	case "phone":
		return fmt.Sprintf("Phone number must contain %d to %d digits", MinPhoneDigits, MaxPhoneDigits)
	case "zipcode":
		return "Please enter a valid 5-digit ZIP code"
	case "nohtml":
		return fmt.Sprintf("%s must not contain HTML", e.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", e.Field(), strings.ReplaceAll(e.Param(), " ", ", "))
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param())
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param())
		}
		return fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", e.Field(), e.Param())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}

// ValidZip reports whether s is a 5-digit or ZIP+4 US postal code.
func ValidZip(s string) bool {
	return zipRe.MatchString(s)
}

// ValidPhone reports whether s holds an acceptable number of digits.
func ValidPhone(s string) bool {
	n := 0
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			n++
		case strings.ContainsRune(" +-().", r):
		default:
			return false
		}
	}
	return n >= MinPhoneDigits && n <= MaxPhoneDigits
}
