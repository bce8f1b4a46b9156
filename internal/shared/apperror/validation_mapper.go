package apperror

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var fieldCaser = cases.Title(language.English)

// MapValidationError turns a gin binding failure into a client-facing
// AppError. Only the first failed field is reported; clients fix one
// field at a time anyway.
func MapValidationError(err error) error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return New(CodeInvalidInput, "Invalid input", http.StatusBadRequest)
	}

	first := errs[0]
	field := fieldCaser.String(strings.ReplaceAll(first.Field(), "_", " "))

	if first.Tag() == "required" {
		return RequiredField(field)
	}
	return InvalidField(field)
}
