package web

import (
	"math"
	"time"

	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field   string
	Message string
}

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// money fields carry at most 2 decimal places
	_ = v.RegisterValidation("dec2", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return math.Abs(f-(math.Round(f*100)/100)) < 1e-9
	})
	// calendar date in YYYY-MM-DD form
	_ = v.RegisterValidation("dateonly", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// ToFieldErrors maps validator.ValidationErrors to readable per-field messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "email":
			out = append(out, FieldError{Field: field, Message: "must be a valid email address"})
		case "iso4217":
			out = append(out, FieldError{Field: field, Message: "must be a 3-letter currency code"})
		case "dec2":
			out = append(out, FieldError{Field: field, Message: "must have at most 2 decimal places"})
		case "dateonly":
			out = append(out, FieldError{Field: field, Message: "must be a date in YYYY-MM-DD form"})
		case "gt":
			out = append(out, FieldError{Field: field, Message: "must be greater than " + e.Param()})
		case "gte":
			out = append(out, FieldError{Field: field, Message: "must be greater than or equal to " + e.Param()})
		case "lte":
			out = append(out, FieldError{Field: field, Message: "must be less than or equal to " + e.Param()})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}

func fieldErrorMap(list []FieldError) map[string]string {
	m := make(map[string]string, len(list))
	for _, fe := range list {
		if _, dup := m[fe.Field]; !dup {
			m[fe.Field] = fe.Message
		}
	}
	return m
}
