package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidateNotBlank rejects strings that are empty after trimming, which the
// builtin required tag accepts (e.g. a name of " ").
func ValidateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// RegisterResumeValidators registers all resume-related custom validators
func RegisterResumeValidators(v *validator.Validate) {
	v.RegisterValidation("notblank", ValidateNotBlank)
}
