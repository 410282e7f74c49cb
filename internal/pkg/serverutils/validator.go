// FILE: internal/pkg/serverutils/validator.go
package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation on a parsed request body and
// folds the violations into one readable message for the 400 response.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var problems []string
	for _, fieldErr := range validationErrors {
		switch fieldErr.Tag() {
		case "required":
			problems = append(problems, fmt.Sprintf("%s is required", fieldErr.Field()))
		case "min":
			problems = append(problems, fmt.Sprintf("%s must be at least %s", fieldErr.Field(), fieldErr.Param()))
		case "max":
			problems = append(problems, fmt.Sprintf("%s must be at most %s", fieldErr.Field(), fieldErr.Param()))
		case "oneof":
			problems = append(problems, fmt.Sprintf("%s must be one of: %s", fieldErr.Field(), fieldErr.Param()))
		case "uuid":
			problems = append(problems, fmt.Sprintf("%s must be a valid uuid", fieldErr.Field()))
		default:
			problems = append(problems, fmt.Sprintf("%s is invalid (%s)", fieldErr.Field(), fieldErr.Tag()))
		}
	}
	return fmt.Errorf("%s", strings.Join(problems, "; "))
}
