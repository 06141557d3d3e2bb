package employee

import (
	"regexp"

	"hrms-lite/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
)

var simpleEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var createValidator = func() *validator.Validate {
	v := apperror.NewValidator()
	_ = v.RegisterValidation("simple_email", func(fl validator.FieldLevel) bool {
		return simpleEmailPattern.MatchString(fl.Field().String())
	})
	return v
}()

var createMessages = map[string]string{
	"employee_id.required": "Employee ID is required",
	"employee_id.max":      "Employee ID must be at most 50 characters",
	"full_name.required":   "Full name is required",
	"full_name.min":        "Name must be at least 2 characters",
	"full_name.max":        "Name must be at most 100 characters",
	"email.required":       "Email is required",
	"email.simple_email":   "Invalid email format",
	"email.max":            "Email must be at most 255 characters",
	"department.required":  "Department is required",
	"department.max":       "Department must be at most 100 characters",
}

// ValidateCreateRequest returns one message per offending field, keyed by the
// JSON field name. An empty map means the request is acceptable.
func ValidateCreateRequest(req CreateEmployeeRequest) map[string]string {
	err := createValidator.Struct(req.Normalize())
	if err == nil {
		return map[string]string{}
	}
	return apperror.FieldErrors(err, createMessages)
}
