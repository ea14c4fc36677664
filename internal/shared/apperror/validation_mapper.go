package apperror

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

func messageFor(e validator.FieldError) string {
	field := formatFieldName(e.Field())
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "url":
		return field + " must be a valid URL"
	case "max":
		return field + " may not be longer than " + e.Param() + " characters"
	default:
		return field + " is invalid"
	}
}

// MapValidationError turns validator errors into an INVALID_INPUT AppError
// with a field -> message map, so forms can render every violation inline.
func MapValidationError(err error) error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		fields := make(map[string]string, len(errs))
		for _, e := range errs {
			if _, seen := fields[e.Field()]; !seen {
				fields[e.Field()] = messageFor(e)
			}
		}
		return Validation(fields)
	}

	return ErrInvalidInput
}
