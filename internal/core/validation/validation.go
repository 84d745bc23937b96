// Package validation wraps go-playground/validator behind a single entry
// point invoked by the services before every write. It is deliberately
// independent of the storage layer so input rules and index constraints can
// be tested on their own.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/openshelf/book-catalog/internal/core/domain"
)

type Validator struct {
	v *validator.Validate
}

// New builds a Validator with the custom bookyear rule registered.
func New() *Validator {
	v := validator.New()

	// bookyear: publication years may lie at most PublishedYearHorizon years
	// in the future. The lower bound is a plain min tag.
	_ = v.RegisterValidation("bookyear", func(fl validator.FieldLevel) bool {
		return int(fl.Field().Int()) <= domain.MaxPublishedYear(time.Now())
	})

	return &Validator{v: v}
}

// Struct validates s against its validate tags. On failure it returns a
// *domain.ValidationError joining one readable message per violated rule.
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return domain.NewValidationError(err.Error())
	}

	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldError(fe))
	}
	return domain.NewValidationError(strings.Join(msgs, "; "))
}

// fieldError converts a single rule violation into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "alphanum":
		return field + " can only contain letters and numbers"
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "bookyear":
		return fmt.Sprintf("%s cannot be more than %d years in the future", field, domain.PublishedYearHorizon)
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
