// Package validation checks request DTOs with go-playground/validator and
// reports every failed field as an errs.ValidationError.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"foodgram-go/internal/domain/errs"
	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
	"go.uber.org/multierr"
)

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slug.IsSlug(fl.Field().String())
	})

	return &Validator{validate: v}
}

// Struct returns nil or the failed fields combined with multierr.
func (v *Validator) Struct(value interface{}) error {
	err := v.validate.Struct(value)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	var combined error
	for _, fieldErr := range validationErrors {
		combined = multierr.Append(combined, &errs.ValidationError{
			Field:   fieldPath(fieldErr.Namespace()),
			Message: message(fieldErr.Tag(), fieldErr.Param()),
		})
	}
	return combined
}

// fieldPath drops the struct name from a namespace like "createRecipeRequest.ingredients[0].amount".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func message(tag, param string) string {
	switch tag {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", param)
	case "max":
		return fmt.Sprintf("must be at most %s", param)
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", param)
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", param)
	case "gt":
		return fmt.Sprintf("must be greater than %s", param)
	case "email":
		return "must be a valid email address"
	case "hexcolor":
		return "must be a #RRGGBB color"
	case "slug":
		return "must contain only lowercase letters, digits and hyphens"
	case "unique":
		return "must not contain duplicates"
	default:
		return "is invalid"
	}
}
