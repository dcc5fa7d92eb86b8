// file: internals/helpers/validation.go
package helper

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationErrorsToMap mengubah validator.ValidationErrors → map field → pesan tag.
// Dipakai bersama JsonValidationError untuk shape error yang seragam.
func ValidationErrorsToMap(err error) map[string][]string {
	out := map[string][]string{}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_"] = []string{err.Error()}
		return out
	}
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())
		out[field] = append(out[field], fe.Tag())
	}
	return out
}
