// Package validation wraps go-playground/validator with friendly,
// field-level error messages suitable for re-rendering a form.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator checks tagged structs and reports per-field messages.
type Validator struct {
	v *validator.Validate
}

// New creates a validator configured for form inputs.
func New() *Validator {
	v := validator.New()

	// Use form tag names in error messages so they match template fields.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("form")
		if name == "" {
			return strings.ToLower(fld.Name)
		}
		return name
	})

	return &Validator{v: v}
}

// Validate checks a struct and returns a field→message map, or nil when
// every rule passes. Callers re-render the form with the map; nothing is
// persisted on failure.
func (val *Validator) Validate(s any) map[string]string {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"form": err.Error()}
	}

	fields := make(map[string]string, len(verrs))
	for _, e := range verrs {
		fields[e.Field()] = friendlyMessage(e)
	}
	return fields
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "min":
		return fmt.Sprintf("is too short (minimum %s characters)", e.Param())
	default:
		return "is invalid"
	}
}
