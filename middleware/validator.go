package middleware

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct checks `validate` tags on request payloads inside handlers.
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}
