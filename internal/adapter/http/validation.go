package http

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

var (
	reMobile10  = regexp.MustCompile(`^[0-9]{10}$`)
	rePANShape  = regexp.MustCompile(`^[A-Za-z]{5}[0-9]{4}[A-Za-z]$`)
	reAadhaar12 = regexp.MustCompile(`^[0-9]{12}$`)
)

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// 10-digit mobile number (already digit-stripped by the client, but the
	// intake usecase strips again before storage)
	_ = v.RegisterValidation("mobile10", func(fl validator.FieldLevel) bool {
		return reMobile10.MatchString(fl.Field().String())
	})
	// PAN shape, case-insensitive; intake uppercases before storage
	_ = v.RegisterValidation("pan", func(fl validator.FieldLevel) bool {
		return rePANShape.MatchString(fl.Field().String())
	})
	// 12-digit Aadhaar
	_ = v.RegisterValidation("aadhaar12", func(fl validator.FieldLevel) bool {
		return reAadhaar12.MatchString(fl.Field().String())
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
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
		case "mobile10":
			out = append(out, FieldError{Field: field, Message: "must be a 10-digit mobile number"})
		case "pan":
			out = append(out, FieldError{Field: field, Message: "must be a valid PAN (e.g. ABCDE1234F)"})
		case "aadhaar12":
			out = append(out, FieldError{Field: field, Message: "must be a 12-digit Aadhaar number"})
		case "email":
			out = append(out, FieldError{Field: field, Message: "must be a valid email address"})
		case "gt":
			out = append(out, FieldError{Field: field, Message: "must be greater than " + e.Param()})
		case "gte":
			out = append(out, FieldError{Field: field, Message: "must be greater than or equal to " + e.Param()})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}
