package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// bindingErrorMessage turns a gin binding failure into a client-facing
// message. Struct-tag validation failures are reported per field; anything
// else (malformed JSON, wrong types) passes through as-is.
func bindingErrorMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fmt.Sprintf("field %q failed on the %q rule", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
