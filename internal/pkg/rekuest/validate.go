package rekuest

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/componentry/backend/internal/pkg/cerr"
)

var Validate = validator.New()

// ValidStruct validates s against its `validate` tags and converts any
// violations into an INVALID_REQUEST error suitable for the HTTP error handler.
func ValidStruct(s interface{}) error {
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return cerr.ErrInvalidReq
	}

	violations := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		violations = append(violations, fmt.Sprintf("%s: failed on '%s'", fe.Field(), fe.Tag()))
	}
	return cerr.NewInvalidViolations(violations)
}
