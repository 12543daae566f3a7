package deck

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validateRequest checks the payload tags and converts failures into a
// ValidationError describing the first problem.
func validateRequest(req Request) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Selected: len(req.IDs), Reason: err.Error()}
	}
	return &ValidationError{Selected: len(req.IDs), Reason: describe(verrs[0])}
}

func describe(fe validator.FieldError) string {
	switch fe.Field() + "." + fe.Tag() {
	case "IDs.min":
		return fmt.Sprintf("select at least %s words", fe.Param())
	case "IDs.unique":
		return "words must not repeat"
	case "Name.required":
		return "name is required"
	case "Name.max":
		return fmt.Sprintf("name must be at most %s characters", fe.Param())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
